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

func postSnippet(t *testing.T, router http.Handler, userID, text string) []model.Insight {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"text": text})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights/snippet", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", userID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int             `json:"code"`
		Data []model.Insight `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, 0, result.Code)
	return result.Data
}

func TestSnippetManipulativeText(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	insights := postSnippet(t, router, testutil.NewID(t), "ACT NOW!!! This is SHOCKING and URGENT, before it's too late!!!")
	require.Len(t, insights, 1)
	require.Equal(t, model.InsightMisinformation, insights[0].Type)
	require.NotEmpty(t, insights[0].Explanation)
}

func TestSnippetPlainTextIsQuiet(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	insights := postSnippet(t, router, testutil.NewID(t), "The library opens at nine on weekdays.")
	require.Empty(t, insights)
}

func TestSnippetRepetitionAcrossRequests(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	userID := testutil.NewID(t)
	text := "A perfectly ordinary sentence about perfectly ordinary things."

	first := postSnippet(t, router, userID, text)
	require.Empty(t, first)

	second := postSnippet(t, router, userID, text)
	require.Len(t, second, 1)
	require.Equal(t, model.InsightRepetition, second[0].Type)

	// Another reader has not seen this snippet.
	other := postSnippet(t, router, testutil.NewID(t), text)
	require.Empty(t, other)
}

func TestSnippetRejectsBlankText(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	payload, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights/snippet", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", testutil.NewID(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, errcode.ErrInvalid, result.Code)
}

func TestDocumentInsightCards(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	userID := testutil.NewID(t)

	payload, _ := json.Marshal(map[string]string{
		"content":      "# Habit Stacking\n\nHabit stacking ties a new habit to an existing one. Studies found 40% of daily actions are habitual.",
		"content_type": "markdown",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", userID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var created struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.Equal(t, 0, created.Code)
	docID, _ := created.Data["id"].(string)
	require.NotEmpty(t, docID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID+"/insights", nil)
	req.Header.Set("X-User-Id", userID)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int             `json:"code"`
		Data []model.Insight `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, 0, result.Code)
	// Every stored explanation becomes one card; none are blank.
	require.NotEmpty(t, result.Data)
	require.Equal(t, model.InsightRepetition, result.Data[0].Type)
	for _, insight := range result.Data {
		require.NotEmpty(t, insight.Explanation)
		require.Equal(t, "Habit Stacking", insight.AffectedText)
	}
}

func TestSnippetDetectorToggles(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	payload, _ := json.Marshal(map[string]interface{}{
		"text":           "ACT NOW!!! This is SHOCKING and URGENT, before it's too late!!!",
		"enable_misinfo": false,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights/snippet", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", testutil.NewID(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Code int             `json:"code"`
		Data []model.Insight `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, 0, result.Code)
	require.Empty(t, result.Data)
}
