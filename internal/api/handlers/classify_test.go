package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-research/newswatch/pkg/logger"
)

func postClassify(t *testing.T, req ClassifyRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/classify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	NewClassifyHandler(logger.NewNop()).Classify(w, r)
	return w
}

func TestClassify_DefinitivePricedDeal(t *testing.T) {
	w := postClassify(t, ClassifyRequest{
		Title:   "Acme Corp announces definitive merger agreement to be acquired for $5.00 per share in cash",
		URL:     "https://www.prnewswire.com/news-releases/acme-123.html",
		Symbols: []string{"ACME"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ClassifyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, "ACQUISITION_BUYOUT", resp.Category)
	assert.True(t, resp.OnWire)
	assert.Greater(t, resp.Score, 0.64)
	assert.Empty(t, resp.Suppressed)
}

func TestClassify_AnalystNoteReportsSuppressionName(t *testing.T) {
	w := postClassify(t, ClassifyRequest{
		Title: "Maxim Group initiates coverage on Acme Corp with a Buy rating and $10 price target",
		URL:   "https://news.example.com/analyst",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp ClassifyResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Equal(t, "OTHER", resp.Category)
	assert.Equal(t, "analyst-note", resp.Suppressed)
	assert.LessOrEqual(t, resp.Score, 0.16)
}

func TestClassify_RequiresTitle(t *testing.T) {
	w := postClassify(t, ClassifyRequest{Summary: "no title here"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassify_RejectsInvalidBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/classify", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	NewClassifyHandler(logger.NewNop()).Classify(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
