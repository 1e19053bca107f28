package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/yourorg/stock-tracker/internal/client"
	"github.com/yourorg/stock-tracker/internal/model"
	"github.com/yourorg/stock-tracker/internal/utils"

	"go.uber.org/zap"
)

const (
	// maxNewsArticles caps both the accepted-article count and the number
	// of round-robin rounds. With sparse or duplicate-heavy sources the
	// round cap can end the scan before six articles are accepted; this
	// is intentional, not a bug to fix.
	maxNewsArticles  = 6
	newsLookbackDays = 5
)

// newsAPI is the upstream slice of FinnhubClient the fetcher needs
type newsAPI interface {
	MarketNews(ctx context.Context) ([]model.RawNewsArticle, error)
	CompanyNews(ctx context.Context, symbol string, from, to int64) ([]model.RawNewsArticle, error)
}

// NewsService fetches, normalizes and deduplicates market news
type NewsService struct {
	finnhub newsAPI
	logger  *zap.Logger
	now     func() time.Time
}

// NewNewsService creates a new news service
func NewNewsService(finnhub newsAPI, logger *zap.Logger) *NewsService {
	return &NewsService{
		finnhub: finnhub,
		logger:  logger,
		now:     time.Now,
	}
}

// GetNews retrieves up to six valid, deduplicated articles. With symbols it
// round-robins company news across them, newest first; without symbols it
// returns general market news in upstream order.
func (s *NewsService) GetNews(ctx context.Context, symbols []string) ([]model.NewsArticle, error) {
	if len(symbols) == 0 {
		return s.marketNews(ctx)
	}

	cleaned := normalizeSymbols(symbols)
	if len(cleaned) == 0 {
		return []model.NewsArticle{}, nil
	}

	from, to := utils.DateRange(s.now(), newsLookbackDays)
	seen := newDedupIndex()
	articles := make([]model.NewsArticle, 0, maxNewsArticles)

	for round := 0; len(articles) < maxNewsArticles && round < maxNewsArticles; round++ {
		symbol := cleaned[round%len(cleaned)]

		page, err := s.finnhub.CompanyNews(ctx, symbol, from, to)
		if err != nil {
			if errors.Is(err, client.ErrMissingAPIKey) {
				return nil, err
			}
			// A failed round contributes zero articles; the scan goes on.
			s.logger.Warn("company news fetch failed",
				zap.String("symbol", symbol),
				zap.Int("round", round),
				zap.Error(err))
			continue
		}

		// Accept at most one article per round, the first valid unseen one.
		for _, raw := range page {
			if !raw.Valid() || seen.Seen(raw) {
				continue
			}
			articles = append(articles, formatArticle(raw, true, symbol))
			break
		}
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].Datetime > articles[j].Datetime
	})

	return articles, nil
}

// marketNews returns the first six valid, deduplicated general articles in
// upstream order. Upstream order is source-recency order; no re-sort.
func (s *NewsService) marketNews(ctx context.Context) ([]model.NewsArticle, error) {
	page, err := s.finnhub.MarketNews(ctx)
	if err != nil {
		return nil, err
	}

	seen := newDedupIndex()
	articles := make([]model.NewsArticle, 0, maxNewsArticles)

	for _, raw := range page {
		if !raw.Valid() || seen.Seen(raw) {
			continue
		}
		articles = append(articles, formatArticle(raw, false, ""))
		if len(articles) >= maxNewsArticles {
			break
		}
	}

	return articles, nil
}

// normalizeSymbols trims, uppercases and deduplicates the input set,
// preserving first-seen order
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	cleaned := make([]string, 0, len(symbols))

	for _, s := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		cleaned = append(cleaned, sym)
	}

	return cleaned
}

// formatArticle normalizes a raw upstream article, applying the documented
// defaults for missing optional fields
func formatArticle(raw model.RawNewsArticle, companyNews bool, symbol string) model.NewsArticle {
	source := raw.Source
	if source == "" {
		source = "Unknown"
	}

	category := raw.Category
	if category == "" {
		if companyNews {
			category = "company"
		} else {
			category = "general"
		}
	}

	related := raw.Related
	if companyNews && symbol != "" {
		related = symbol
	}

	return model.NewsArticle{
		ID:       raw.ID,
		Headline: raw.Headline,
		Summary:  raw.Summary,
		Source:   source,
		URL:      raw.URL,
		Datetime: raw.Datetime,
		Category: category,
		Related:  related,
		Image:    raw.Image,
	}
}
