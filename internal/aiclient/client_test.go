package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-backend/internal/apperr"
	"complaint-backend/internal/models"
)

func TestAnalyzeSendsExpectedPayload(t *testing.T) {
	var got AnalyzeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.NormalizationResult{
			NormalizedText: "pothole on main street in gangnam",
			Embedding:      []float64{0.5, 0.25},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Analyze(context.Background(), "Pothole!", "There is a pothole on Main Street", "Gangnam")
	require.NoError(t, err)

	assert.Equal(t, "Pothole!", got.Title)
	assert.Equal(t, "There is a pothole on Main Street", got.Body)
	assert.Equal(t, "Gangnam", got.District)
	assert.Equal(t, []float64{0.5, 0.25}, result.Embedding)
	assert.Equal(t, "pothole on main street in gangnam", result.NormalizedText)
}

func TestAnalyzeNon2xxIsUpstreamFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"detail":"bad district"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetry(3, time.Millisecond))
	_, err := client.Analyze(context.Background(), "t", "b", "d")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstreamNormalization)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), server.URL+"/analyze")
	// 4xx is not retryable.
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestAnalyzeRetriesOn5xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "temporarily down", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(models.NormalizationResult{Embedding: []float64{1}})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetry(2, time.Millisecond))
	result, err := client.Analyze(context.Background(), "t", "b", "d")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, result.Embedding)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestAnalyzeRetriesExhausted(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRetry(1, time.Millisecond))
	_, err := client.Analyze(context.Background(), "t", "b", "d")
	assert.ErrorIs(t, err, apperr.ErrUpstreamNormalization)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFindSimilarKeepsUpstreamOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/similar", r.URL.Path)

		var req SimilarRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []float64{0.1, 0.9}, req.Embedding)

		json.NewEncoder(w).Encode(map[string]any{
			"results": []models.SimilarityCandidate{
				{ComplaintID: 12, SimScore: 0.97, Title: "Pothole near crossing"},
				{ComplaintID: 4, SimScore: 0.72, Title: "Cracked pavement"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	candidates, err := client.FindSimilar(context.Background(), []float64{0.1, 0.9})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(12), candidates[0].ComplaintID)
	assert.Equal(t, 0.72, candidates[1].SimScore)
}

func TestFindSimilarEmptyEmbeddingIsCallerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FindSimilar(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Zero(t, atomic.LoadInt32(&calls), "no request may leave the process for an empty vector")
}

func TestAnalyzeUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // reachable URL, refused connection

	client := NewClient(server.URL)
	_, err := client.Analyze(context.Background(), "t", "b", "d")
	assert.ErrorIs(t, err, apperr.ErrUpstreamNormalization)
}
