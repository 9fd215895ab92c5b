// Package enrich sends classified items to a remote reasoning service and
// turns its untrusted reply into a sanitized, locally re-gated
// EnrichmentResult. The remote sits outside the trust boundary: every field
// it returns is schema-validated and clamped, its legitimacy gates are
// recomputed locally, and its estimates are only ever raised by calibration,
// never taken below the deterministic floor.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/internal/ledger"
	"github.com/meridian-research/newswatch/pkg/config"
	"github.com/meridian-research/newswatch/pkg/httputil"
	"github.com/meridian-research/newswatch/pkg/logger"
	"github.com/meridian-research/newswatch/pkg/redis"
)

// maxBodyChars bounds the article body sent outbound.
const maxBodyChars = 2000

// Gateway is the enrichment client.
type Gateway struct {
	cfg     config.EnrichConfig
	http    *httputil.Client
	limiter *rate.Limiter
	cache   *redis.Cache
	logger  *logger.Logger
}

// New creates a new enrichment gateway. The HTTP client carries the
// per-call timeout, retries at most once on rate-limit or 5xx responses,
// and respects the shared Redis sliding window when Redis is enabled; the
// local token bucket still bounds a single process either way.
func New(cfg *config.Config, redisClient *redis.Client, log *logger.Logger) *Gateway {
	httpClient := httputil.NewWithTimeout(log, cfg.Enrich.Timeout).
		WithRetry(1, 2*time.Second).
		WithRateLimiter(redis.NewRateLimiter(redisClient, "enrich"), redis.RateLimitConfig{
			Key:    "remote",
			Limit:  cfg.Enrich.RateLimit,
			Window: time.Minute,
		})

	perSecond := rate.Limit(float64(cfg.Enrich.RateLimit) / 60.0)
	if perSecond <= 0 {
		perSecond = rate.Inf
	}

	return &Gateway{
		cfg:     cfg.Enrich,
		http:    httpClient,
		limiter: rate.NewLimiter(perSecond, 1),
		cache:   redis.NewCache(redisClient, "enrich"),
		logger:  log.WithField("module", "enrich"),
	}
}

// outboundPayload is the JSON sent to the remote reasoning service.
type outboundPayload struct {
	Headline    string  `json:"headline"`
	URL         string  `json:"url,omitempty"`
	PublishedAt string  `json:"published_at"`
	OnWire      bool    `json:"on_wire"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Body        string  `json:"body"`
	Symbol      string  `json:"symbol"`
	MarketCapM  float64 `json:"market_cap_m,omitempty"`
	LastPrice   float64 `json:"last_price,omitempty"`
}

// Enrich sends one classified item across the trust boundary. All failures
// degrade to a conservative null estimate with Decision=PASS; the returned
// error is always nil so a worker never aborts on enrichment trouble.
func (g *Gateway) Enrich(ctx context.Context, item contracts.ClassifiedItem) (contracts.EnrichmentResult, error) {
	localGates := RecomputeGates(item)

	if !g.cfg.Enabled {
		return g.localOnlyResult(item, localGates), nil
	}

	cacheKey := ledger.Hash(item.Item.Title, item.Item.URL, item.Item.Source)
	var cached contracts.EnrichmentResult
	if hit, err := g.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	raw, err := g.call(ctx, item)
	if err != nil {
		g.logger.WithError(err).WithField("title", item.Item.Title).
			Warn("Enrichment call failed, degrading to PASS")
		return degradedResult(localGates), nil
	}

	estimate := calibrateEstimate(sanitizeEstimate(raw), item)
	scorecard := sanitizeScorecard(raw)

	result := contracts.EnrichmentResult{
		Estimate:    estimate,
		RemoteGates: remoteGates(raw),
		LocalGates:  localGates,
		Scorecard:   scorecard,
		Decision:    decide(localGates, scorecard, estimate.Confidence),
		Narrative:   truncate(strings.TrimSpace(raw.Narrative), 500),
	}

	if err := g.cache.Set(ctx, cacheKey, result, g.cfg.CacheTTL); err != nil {
		g.logger.WithError(err).Debug("Enrichment cache write failed")
	}

	return result, nil
}

// call performs the remote request and decodes the reply into the untrusted
// raw shape.
func (g *Gateway) call(ctx context.Context, item contracts.ClassifiedItem) (rawResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return rawResponse{}, fmt.Errorf("rate limiter: %w", err)
	}

	payload := outboundPayload{
		Headline:    item.Item.Title,
		URL:         item.Item.URL,
		PublishedAt: item.Item.PublishedAt.UTC().Format(time.RFC3339),
		OnWire:      item.OnWire,
		Category:    string(item.Klass),
		Score:       item.Score,
		Body:        truncate(item.Item.Summary, maxBodyChars),
		Symbol:      item.Item.PrimarySymbol(),
		MarketCapM:  item.MarketCapM,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return rawResponse{}, fmt.Errorf("marshal payload: %w", err)
	}

	body := map[string]any{
		"model": g.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": string(payloadJSON)},
		},
		"temperature":     0.1,
		"max_tokens":      700,
		"response_format": map[string]string{"type": "json_object"},
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(bodyJSON)))
	if err != nil {
		return rawResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return rawResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return rawResponse{}, fmt.Errorf("enrichment service http %d", resp.StatusCode)
	}

	var chat struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return rawResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return rawResponse{}, fmt.Errorf("empty response")
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	var raw rawResponse
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return rawResponse{}, fmt.Errorf("unparsable payload: %w", err)
	}

	return raw, nil
}

// localOnlyResult is used when enrichment is disabled by config: no remote
// estimate exists, but the local gates still produce a usable verdict.
func (g *Gateway) localOnlyResult(item contracts.ClassifiedItem, gates contracts.LegitimacyGates) contracts.EnrichmentResult {
	card := localScorecard(gates)
	return contracts.EnrichmentResult{
		LocalGates: gates,
		Scorecard:  card,
		Decision:   decide(gates, card, "low"),
	}
}

// degradedResult is the conservative null result after a transport or
// payload failure.
func degradedResult(gates contracts.LegitimacyGates) contracts.EnrichmentResult {
	return contracts.EnrichmentResult{
		LocalGates: gates,
		Decision:   contracts.DecisionPass,
		Degraded:   true,
	}
}

// localScorecard builds a scorecard from gate booleans alone.
func localScorecard(gates contracts.LegitimacyGates) contracts.ImpactScorecard {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}

	card := contracts.ImpactScorecard{
		WireScore:          b(gates.OnWire),
		CounterpartyScore:  b(gates.NamedCounterparty),
		QuantScore:         b(gates.QuantitativeDetail),
		CorroborationScore: b(gates.Corroborated),
		SubjectScore:       b(gates.SubjectVerified),
		CleanlinessScore:   b(gates.NoRedFlags),
	}
	card.Total = card.WireScore*weightWire +
		card.CounterpartyScore*weightCounterparty +
		card.QuantScore*weightQuantitative +
		card.CorroborationScore*weightCorroboration +
		card.SubjectScore*weightSubject +
		card.CleanlinessScore*weightCleanliness
	return card
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

const systemPrompt = `You are a market analyst estimating the price impact of a corporate news item. ` +
	`The user message is a JSON object describing the item. Respond ONLY with a JSON object of this shape: ` +
	`{"p50_move_pct": float, "p90_move_pct": float, "confidence": "low|medium|high", "narrative": "one paragraph", ` +
	`"gates": {"on_wire": bool, "named_counterparty": bool, "quantitative_detail": bool, "corroborated": bool, "subject_verified": bool, "red_flags": bool}, ` +
	`"scorecard": {"wire": 0..1, "counterparty": 0..1, "quantitative": 0..1, "corroboration": 0..1, "subject": 0..1, "cleanliness": 0..1}}`
