package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/pkg/errcode"
	"github.com/xxxsen/pkf/test/testutil"
)

func TestGraphRebuildAndSummary(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	userID := testutil.NewID(t)

	contents := []string{
		"Spaced repetition and active recall both strengthen long-term memory. Spaced repetition spreads practice over time.",
		"Active recall forces retrieval from memory instead of rereading. Combined with spaced repetition it beats passive review.",
	}
	for _, content := range contents {
		payload, _ := json.Marshal(map[string]string{"content": content})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-Id", userID)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/graph/rebuild", nil)
	req.Header.Set("X-User-Id", userID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var rebuilt struct {
		Code int                      `json:"code"`
		Data model.UserKnowledgeGraph `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rebuilt))
	require.Equal(t, 0, rebuilt.Code)
	require.Equal(t, 2, rebuilt.Data.TotalDocuments)
	require.NotZero(t, rebuilt.Data.TotalConcepts)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/graph", nil)
	req.Header.Set("X-User-Id", userID)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var summary struct {
		Code int                      `json:"code"`
		Data model.UserKnowledgeGraph `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	require.Equal(t, 0, summary.Code)
	require.Equal(t, rebuilt.Data.TotalConcepts, summary.Data.TotalConcepts)
	require.Equal(t, rebuilt.Data.TotalRelationships, summary.Data.TotalRelationships)
}

func TestGraphSummaryMissing(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/graph", nil)
	req.Header.Set("X-User-Id", testutil.NewID(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, errcode.ErrNotFound, result.Code)
}
