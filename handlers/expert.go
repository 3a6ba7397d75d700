package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	expertRepo "expertbook/database/repository/expert"
	expertSvc "expertbook/services/expert"
	"expertbook/utils"
)

// ExpertHandler serves the expert catalogue endpoints.
type ExpertHandler struct {
	Service expertSvc.Service
	Logger  *zap.Logger
}

// NewExpertHandler constructs an ExpertHandler.
func NewExpertHandler(svc expertSvc.Service, logger *zap.Logger) *ExpertHandler {
	return &ExpertHandler{Service: svc, Logger: logger}
}

// ListExpertsHandler handles GET /api/experts.
func (h *ExpertHandler) ListExpertsHandler(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}

	result, err := h.Service.List(c.Request.Context(), expertSvc.ListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.Logger.Error("failed to list experts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetExpertByIDHandler handles GET /api/experts/:id.
func (h *ExpertHandler) GetExpertByIDHandler(c *gin.Context) {
	expert, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, expertRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Expert not found", "")
			return
		}
		h.Logger.Error("failed to fetch expert", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, expert)
}
