package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-backend/internal/apperr"
	"complaint-backend/internal/middleware"
	"complaint-backend/internal/models"
	"complaint-backend/internal/service"
)

type stubComplaintService struct {
	submitResult *service.SubmitResult
	submitErr    error
	listed       []*models.Complaint
	lastKeyword  string
	lastCaller   string
}

func (s *stubComplaintService) Submit(_ context.Context, applicant string, _ *models.Complaint) (*service.SubmitResult, error) {
	s.lastCaller = applicant
	return s.submitResult, s.submitErr
}

func (s *stubComplaintService) List(_ context.Context, applicant, keyword string) ([]*models.Complaint, error) {
	s.lastCaller = applicant
	s.lastKeyword = keyword
	return s.listed, nil
}

func (s *stubComplaintService) Recent(_ context.Context, applicant string) ([]*models.Complaint, error) {
	s.lastCaller = applicant
	if len(s.listed) > 3 {
		return s.listed[:3], nil
	}
	return s.listed, nil
}

// fakePrincipal injects the context keys the JWT middleware would set.
func fakePrincipal(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxEmail, email)
	}
}

func newComplaintRouter(svc service.ComplaintService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewComplaintHandler(svc, logrus.New())
	r := gin.New()
	api := r.Group("/api", fakePrincipal("42", "u@example.com"))
	api.GET("/home", h.Home)
	api.POST("/complaints", h.Submit)
	api.GET("/complaints", h.List)
	api.GET("/complaints/recent", h.Recent)
	return r
}

func TestHomeReturnsPrincipal(t *testing.T) {
	r := newComplaintRouter(&stubComplaintService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/home", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp["id"])
	assert.Equal(t, "u@example.com", resp["name"])
}

func TestSubmitReturnsIDAndCandidates(t *testing.T) {
	svc := &stubComplaintService{submitResult: &service.SubmitResult{
		ComplaintID: 101,
		Similar: []models.SimilarityCandidate{
			{ComplaintID: 7, SimScore: 0.9, Title: "Pothole near station"},
		},
	}}
	r := newComplaintRouter(svc)

	body, _ := json.Marshal(gin.H{"title": "Pothole", "body": "big hole", "district": "Gangnam"})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "42", svc.lastCaller)

	var resp service.SubmitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(101), resp.ComplaintID)
	require.Len(t, resp.Similar, 1)
	assert.Equal(t, "Pothole near station", resp.Similar[0].Title)
}

func TestSubmitUpstreamFailureMapsTo502(t *testing.T) {
	svc := &stubComplaintService{submitErr: apperr.ErrUpstreamNormalization}
	r := newComplaintRouter(svc)

	body, _ := json.Marshal(gin.H{"title": "t", "body": "b", "district": "d"})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadGateway, resp.Status)
}

func TestListPassesKeywordThrough(t *testing.T) {
	svc := &stubComplaintService{listed: []*models.Complaint{}}
	r := newComplaintRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/complaints?keyword=pothole", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pothole", svc.lastKeyword)
	assert.Equal(t, "42", svc.lastCaller)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestRecentEndpoint(t *testing.T) {
	svc := &stubComplaintService{listed: []*models.Complaint{
		{ID: 4, Title: "d"}, {ID: 3, Title: "c"}, {ID: 2, Title: "b"}, {ID: 1, Title: "a"},
	}}
	r := newComplaintRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/complaints/recent", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 3)
}
