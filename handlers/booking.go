package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingSvc "expertbook/services/booking"
	expertSvc "expertbook/services/expert"
	"expertbook/utils"
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	Service bookingSvc.Service
	Experts expertSvc.Service
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc bookingSvc.Service, experts expertSvc.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Experts: experts, Logger: logger}
}

type createBookingInput struct {
	ExpertID  string `json:"expertId" binding:"required"`
	UserName  string `json:"userName" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required,email"`
	UserPhone string `json:"userPhone" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Service.Create(c.Request.Context(), bookingSvc.CreateInput{
		ExpertID:  input.ExpertID,
		UserName:  input.UserName,
		UserEmail: input.UserEmail,
		UserPhone: input.UserPhone,
		Date:      input.Date,
		Time:      input.Time,
		Notes:     input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingSvc.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusBadRequest, "Slot already booked or does not exist.", "")
		case errors.Is(err, bookingSvc.ErrSlotTaken):
			utils.JSONError(c, http.StatusBadRequest, "This slot was just taken by another user.", "")
		default:
			h.Logger.Error("booking creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	// Listing pages cache slot availability; drop them so browsers see the
	// slot disappear on the next fetch rather than after the TTL.
	h.Experts.InvalidateListingCache(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"message": "Booking successful", "booking": booking})
}

// GetBookingsByEmailHandler handles GET /api/bookings?email=.
func (h *BookingHandler) GetBookingsByEmailHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "email query parameter is required", "")
		return
	}

	bookings, err := h.Service.ListByEmail(c.Request.Context(), email)
	if err != nil {
		h.Logger.Error("booking lookup failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type updateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatusHandler handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, bookingSvc.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, "invalid status", input.Status)
		case errors.Is(err, bookingSvc.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
		default:
			h.Logger.Error("booking status update failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}
