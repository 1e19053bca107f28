package service

import (
	"context"
	"strings"

	"github.com/yourorg/stock-tracker/internal/model"

	"go.uber.org/zap"
)

const maxSearchResults = 15

// popularStocks is served when the search box is empty, so the UI always has
// something to show before the user types.
var popularStocks = []model.StockSearchResult{
	{Symbol: "AAPL", Description: "Apple Inc.", DisplaySymbol: "AAPL", Type: "Common Stock"},
	{Symbol: "GOOGL", Description: "Alphabet Inc.", DisplaySymbol: "GOOGL", Type: "Common Stock"},
	{Symbol: "MSFT", Description: "Microsoft Corporation", DisplaySymbol: "MSFT", Type: "Common Stock"},
	{Symbol: "AMZN", Description: "Amazon.com Inc.", DisplaySymbol: "AMZN", Type: "Common Stock"},
	{Symbol: "TSLA", Description: "Tesla Inc.", DisplaySymbol: "TSLA", Type: "Common Stock"},
	{Symbol: "NVDA", Description: "NVIDIA Corporation", DisplaySymbol: "NVDA", Type: "Common Stock"},
	{Symbol: "META", Description: "Meta Platforms Inc.", DisplaySymbol: "META", Type: "Common Stock"},
	{Symbol: "NFLX", Description: "Netflix Inc.", DisplaySymbol: "NFLX", Type: "Common Stock"},
	{Symbol: "JPM", Description: "JPMorgan Chase & Co.", DisplaySymbol: "JPM", Type: "Common Stock"},
	{Symbol: "V", Description: "Visa Inc.", DisplaySymbol: "V", Type: "Common Stock"},
}

// symbolSearcher is the upstream search surface
type symbolSearcher interface {
	SearchSymbols(ctx context.Context, query string) ([]model.StockSearchResult, error)
}

// membershipChecker answers watchlist membership for search annotation
type membershipChecker interface {
	IsInWatchlist(ctx context.Context, userID int, symbol string) bool
}

// SearchService handles stock symbol search
type SearchService struct {
	finnhub   symbolSearcher
	watchlist membershipChecker
	logger    *zap.Logger
}

// NewSearchService creates a new search service
func NewSearchService(finnhub symbolSearcher, watchlist membershipChecker, logger *zap.Logger) *SearchService {
	return &SearchService{
		finnhub:   finnhub,
		watchlist: watchlist,
		logger:    logger,
	}
}

// Search returns stocks matching the query, annotated with the caller's
// watchlist membership. An empty query serves the popular-stocks list without
// touching the upstream API; upstream failures degrade to an empty result.
func (s *SearchService) Search(ctx context.Context, userID int, query string) []model.StockWithWatchlistStatus {
	query = strings.TrimSpace(query)

	var hits []model.StockSearchResult
	if query == "" {
		hits = popularStocks
	} else {
		results, err := s.finnhub.SearchSymbols(ctx, query)
		if err != nil {
			s.logger.Warn("symbol search failed", zap.String("query", query), zap.Error(err))
			return []model.StockWithWatchlistStatus{}
		}
		hits = results
	}

	stocks := make([]model.StockWithWatchlistStatus, 0, maxSearchResults)
	for _, hit := range hits {
		if hit.Symbol == "" {
			continue
		}

		stocks = append(stocks, model.StockWithWatchlistStatus{
			Symbol:        strings.ToUpper(hit.Symbol),
			Name:          hit.Description,
			Exchange:      hit.DisplaySymbol,
			Type:          hit.Type,
			IsInWatchlist: s.watchlist.IsInWatchlist(ctx, userID, hit.Symbol),
		})

		if len(stocks) >= maxSearchResults {
			break
		}
	}

	return stocks
}
