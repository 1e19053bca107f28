package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yourorg/stock-tracker/internal/config"
	"github.com/yourorg/stock-tracker/internal/model"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrMissingAPIKey is returned when a Finnhub call is attempted without an
// API key configured. This is a precondition failure, never retried.
var ErrMissingAPIKey = errors.New("finnhub API key is not configured")

const quoteRetries = 2

// FinnhubClient handles communication with the Finnhub API. When a Redis
// client and a revalidate TTL are configured, GET responses are cached for
// that duration; with a zero TTL every call fetches fresh.
type FinnhubClient struct {
	baseURL    string
	apiKey     string
	ttl        time.Duration
	httpClient *http.Client
	cache      *redis.Client
	logger     *zap.Logger
}

// NewFinnhubClient creates a new Finnhub API client
func NewFinnhubClient(cfg config.FinnhubConfig, cache *redis.Client, logger *zap.Logger) *FinnhubClient {
	return &FinnhubClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		ttl:     cfg.RevalidateTTL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  cache,
		logger: logger,
	}
}

// MarketNews retrieves one page of general-category market news
func (c *FinnhubClient) MarketNews(ctx context.Context) ([]model.RawNewsArticle, error) {
	params := url.Values{}
	params.Add("category", "general")

	var articles []model.RawNewsArticle
	if err := c.fetchJSON(ctx, "/news", params, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// CompanyNews retrieves company news for a symbol between the given
// whole-second UNIX bounds
func (c *FinnhubClient) CompanyNews(ctx context.Context, symbol string, from, to int64) ([]model.RawNewsArticle, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("from", time.Unix(from, 0).UTC().Format("2006-01-02"))
	params.Add("to", time.Unix(to, 0).UTC().Format("2006-01-02"))

	var articles []model.RawNewsArticle
	if err := c.fetchJSON(ctx, "/company-news", params, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// Quote retrieves the current quote for a symbol, retrying transient
// failures with exponential backoff
func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	params := url.Values{}
	params.Add("symbol", symbol)

	var quote model.Quote
	operation := func() error {
		return c.fetchJSON(ctx, "/quote", params, &quote)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), quoteRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return &quote, nil
}

// SearchSymbols searches symbols and company names
func (c *FinnhubClient) SearchSymbols(ctx context.Context, query string) ([]model.StockSearchResult, error) {
	params := url.Values{}
	params.Add("q", query)

	var resp model.SymbolSearchResponse
	if err := c.fetchJSON(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	return resp.Result, nil
}

// CompanyProfile retrieves the company profile for a symbol. A symbol
// unknown to Finnhub yields an empty profile, returned as nil.
func (c *FinnhubClient) CompanyProfile(ctx context.Context, symbol string) (*model.CompanyProfile, error) {
	params := url.Values{}
	params.Add("symbol", symbol)

	var profile model.CompanyProfile
	if err := c.fetchJSON(ctx, "/stock/profile2", params, &profile); err != nil {
		return nil, err
	}

	if profile.Name == "" && profile.Ticker == "" {
		return nil, nil
	}

	return &profile, nil
}

// fetchJSON performs a GET against the Finnhub API and decodes the response
// into out, consulting the revalidate cache first when one is configured.
func (c *FinnhubClient) fetchJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	cacheKey := "finnhub:" + path + "?" + params.Encode()
	if body, ok := c.cacheGet(ctx, cacheKey); ok {
		return json.Unmarshal(body, out)
	}

	params.Set("token", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch from Finnhub", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Error("Finnhub API error response",
			zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(bodyBytes)))
		return fmt.Errorf("Finnhub API returned status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}

	c.cacheSet(ctx, cacheKey, body)

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("failed to decode Finnhub response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

func (c *FinnhubClient) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil || c.ttl <= 0 {
		return nil, false
	}

	body, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("finnhub cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	return body, true
}

func (c *FinnhubClient) cacheSet(ctx context.Context, key string, body []byte) {
	if c.cache == nil || c.ttl <= 0 {
		return
	}

	if err := c.cache.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.Warn("finnhub cache write failed", zap.String("key", key), zap.Error(err))
	}
}
