package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/logger"
	"github.com/meridian-research/newswatch/pkg/redis"
)

func testConfig(baseURL string, enabled bool) *config.Config {
	return &config.Config{
		Enrich: config.EnrichConfig{
			BaseURL:   baseURL,
			APIKey:    "test-key",
			Model:     "test-model",
			Timeout:   5 * time.Second,
			Enabled:   enabled,
			CacheTTL:  time.Hour,
			RateLimit: 6000,
		},
	}
}

func testGateway(t *testing.T, baseURL string, enabled bool) *Gateway {
	t.Helper()

	cfg := testConfig(baseURL, enabled)
	client, err := redis.New(cfg)
	require.NoError(t, err)

	return New(cfg, client, logger.NewNop())
}

func strongClassifiedItem() contracts.ClassifiedItem {
	return contracts.ClassifiedItem{
		Item: contracts.RawItem{
			Title:       "NEW YORK /PRNewswire/ -- ACME receives FDA approval for a $25 million program with Pfizer Inc",
			URL:         "https://www.prnewswire.com/news/acme",
			Source:      "prnewswire",
			PublishedAt: time.Now().UTC(),
			Symbols:     []string{"ACME"},
		},
		Klass:  contracts.CategoryFDAApproval,
		Score:  0.78,
		OnWire: true,
	}
}

func chatReply(t *testing.T, content map[string]any) []byte {
	t.Helper()

	contentJSON, err := json.Marshal(content)
	require.NoError(t, err)

	reply, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": string(contentJSON)}},
		},
	})
	require.NoError(t, err)
	return reply
}

func TestGateway_EnrichSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, map[string]any{
			"p50_move_pct": 18.0,
			"p90_move_pct": 45.0,
			"confidence":   "high",
			"narrative":    "Strong regulatory catalyst.",
			"scorecard": map[string]float64{
				"wire": 1, "counterparty": 1, "quantitative": 1,
				"corroboration": 1, "subject": 1, "cleanliness": 1,
			},
		}))
	}))
	defer server.Close()

	g := testGateway(t, server.URL, true)
	result, err := g.Enrich(context.Background(), strongClassifiedItem())

	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t, 18.0, result.Estimate.P50)
	assert.Equal(t, 45.0, result.Estimate.P90)
	assert.True(t, result.LocalGates.AllPass())
	assert.Equal(t, contracts.DecisionYes, result.Decision)
	assert.Equal(t, "Strong regulatory catalyst.", result.Narrative)
}

func TestGateway_LocalGatesOverruleRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply(t, map[string]any{
			"p50_move_pct": 50.0,
			"p90_move_pct": 120.0,
			"confidence":   "high",
			"gates": map[string]bool{
				"on_wire": true, "named_counterparty": true, "quantitative_detail": true,
				"corroborated": true, "subject_verified": true, "red_flags": false,
			},
			"scorecard": map[string]float64{
				"wire": 1, "counterparty": 1, "quantitative": 1,
				"corroboration": 1, "subject": 1, "cleanliness": 1,
			},
		}))
	}))
	defer server.Close()

	item := strongClassifiedItem()
	item.Item.Title = "Unverified rumor about a merger"
	item.Item.URL = "https://rumors.example.com/x"

	g := testGateway(t, server.URL, true)
	result, err := g.Enrich(context.Background(), item)

	require.NoError(t, err)
	// Remote claims everything checks out; the local recomputation says no.
	assert.True(t, result.RemoteGates.AllPass())
	assert.False(t, result.LocalGates.AllPass())
	assert.Equal(t, contracts.DecisionPass, result.Decision)
}

func TestGateway_DegradesOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := testGateway(t, server.URL, true)
	result, err := g.Enrich(context.Background(), strongClassifiedItem())

	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, contracts.DecisionPass, result.Decision)
	assert.Zero(t, result.Estimate.P50)
	// At most one retry after the initial attempt.
	assert.LessOrEqual(t, calls, 2)
}

func TestGateway_DegradesOnUnparsablePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"not json"}}]}`))
	}))
	defer server.Close()

	g := testGateway(t, server.URL, true)
	result, err := g.Enrich(context.Background(), strongClassifiedItem())

	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, contracts.DecisionPass, result.Decision)
}

func TestGateway_DisabledRunsLocalOnly(t *testing.T) {
	g := testGateway(t, "http://unused.invalid", false)

	result, err := g.Enrich(context.Background(), strongClassifiedItem())

	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.True(t, result.LocalGates.AllPass())
	// Local-only scorecards never carry high confidence, so a full YES is
	// out of reach without the remote estimate.
	assert.Equal(t, contracts.DecisionSpeculative, result.Decision)
}
