package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	expertRepo "expertbook/database/repository/expert"
	"expertbook/handlers"
	"expertbook/models"
	expertSvc "expertbook/services/expert"
)

type stubExpertService struct {
	listResult *expertSvc.ListResult
	listErr    error
	expert     *models.Expert
	getErr     error

	lastParams expertSvc.ListParams
}

func (s *stubExpertService) List(ctx context.Context, p expertSvc.ListParams) (*expertSvc.ListResult, error) {
	s.lastParams = p
	return s.listResult, s.listErr
}

func (s *stubExpertService) GetByID(ctx context.Context, id string) (*models.Expert, error) {
	return s.expert, s.getErr
}

func (s *stubExpertService) InvalidateListingCache(ctx context.Context) {}

func expertRouter(svc *stubExpertService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewExpertHandler(svc, zap.NewNop())
	r.GET("/api/experts", h.ListExpertsHandler)
	r.GET("/api/experts/:id", h.GetExpertByIDHandler)
	return r
}

func TestListExpertsHandler(t *testing.T) {
	svc := &stubExpertService{listResult: &expertSvc.ListResult{
		Experts:     []models.Expert{{ID: "exp-1", Name: "Marcus Chen"}},
		TotalPages:  4,
		CurrentPage: 2,
	}}
	router := expertRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/experts?page=2&limit=2&category=Technology&search=chen", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, expertSvc.ListParams{Category: "Technology", Search: "chen", Page: 2, Limit: 2}, svc.lastParams)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "experts")
	require.Contains(t, body, "totalPages")
	require.Contains(t, body, "currentPage")
}

func TestListExpertsHandlerDefaults(t *testing.T) {
	svc := &stubExpertService{listResult: &expertSvc.ListResult{}}
	router := expertRouter(svc)

	for _, url := range []string{"/api/experts", "/api/experts?page=abc&limit=-3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.EqualValues(t, 1, svc.lastParams.Page, "url %s", url)
		require.EqualValues(t, 10, svc.lastParams.Limit, "url %s", url)
	}
}

func TestGetExpertByIDHandler(t *testing.T) {
	svc := &stubExpertService{expert: &models.Expert{
		ID:   "exp-1",
		Name: "Priya Sharma",
		Slots: []models.Slot{
			{Date: "2026-02-21", Time: "02:00 PM", IsBooked: true},
		},
	}}
	router := expertRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/experts/exp-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Expert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "exp-1", got.ID)
	require.Len(t, got.Slots, 1)
	require.True(t, got.Slots[0].IsBooked)
}

func TestGetExpertByIDHandlerNotFound(t *testing.T) {
	svc := &stubExpertService{getErr: expertRepo.ErrNotFound}
	router := expertRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/experts/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Expert not found")
}
