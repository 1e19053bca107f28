package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yourorg/stock-tracker/internal/model"

	"go.uber.org/zap"
)

type fakeSymbolSearcher struct {
	results []model.StockSearchResult
	err     error
	queries []string
}

func (f *fakeSymbolSearcher) SearchSymbols(ctx context.Context, query string) ([]model.StockSearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeMembership struct {
	member map[string]bool
}

func (f *fakeMembership) IsInWatchlist(ctx context.Context, userID int, symbol string) bool {
	if userID <= 0 {
		return false
	}
	return f.member[symbol]
}

func TestSearchEmptyQueryServesPopularStocks(t *testing.T) {
	upstream := &fakeSymbolSearcher{}
	svc := NewSearchService(upstream, &fakeMembership{}, zap.NewNop())

	stocks := svc.Search(context.Background(), 0, "   ")
	if len(stocks) != len(popularStocks) {
		t.Fatalf("expected %d popular stocks, got %d", len(popularStocks), len(stocks))
	}
	if stocks[0].Symbol != "AAPL" {
		t.Errorf("expected AAPL first, got %s", stocks[0].Symbol)
	}
	if len(upstream.queries) != 0 {
		t.Error("empty query must not reach the upstream API")
	}
}

func TestSearchAnnotatesMembership(t *testing.T) {
	upstream := &fakeSymbolSearcher{results: []model.StockSearchResult{
		{Symbol: "AAPL", Description: "Apple Inc.", DisplaySymbol: "AAPL", Type: "Common Stock"},
		{Symbol: "AAPL.SW", Description: "Apple Inc.", DisplaySymbol: "AAPL.SW", Type: "Common Stock"},
	}}
	membership := &fakeMembership{member: map[string]bool{"AAPL": true}}
	svc := NewSearchService(upstream, membership, zap.NewNop())

	stocks := svc.Search(context.Background(), 7, "apple")
	if len(stocks) != 2 {
		t.Fatalf("expected 2 results, got %d", len(stocks))
	}
	if !stocks[0].IsInWatchlist {
		t.Error("expected AAPL annotated as in watchlist")
	}
	if stocks[1].IsInWatchlist {
		t.Error("expected AAPL.SW not in watchlist")
	}
}

func TestSearchUpstreamFailureDegradesToEmpty(t *testing.T) {
	upstream := &fakeSymbolSearcher{err: errors.New("upstream down")}
	svc := NewSearchService(upstream, &fakeMembership{}, zap.NewNop())

	stocks := svc.Search(context.Background(), 7, "apple")
	if stocks == nil || len(stocks) != 0 {
		t.Errorf("expected empty non-nil result, got %v", stocks)
	}
}

func TestSearchCapsResults(t *testing.T) {
	results := make([]model.StockSearchResult, 0, 40)
	for i := 0; i < 40; i++ {
		results = append(results, model.StockSearchResult{
			Symbol:      string(rune('A'+i%26)) + "X",
			Description: "Stock",
		})
	}
	upstream := &fakeSymbolSearcher{results: results}
	svc := NewSearchService(upstream, &fakeMembership{}, zap.NewNop())

	stocks := svc.Search(context.Background(), 0, "x")
	if len(stocks) != maxSearchResults {
		t.Errorf("expected %d results, got %d", maxSearchResults, len(stocks))
	}
}

func TestSearchSkipsBlankSymbols(t *testing.T) {
	upstream := &fakeSymbolSearcher{results: []model.StockSearchResult{
		{Symbol: "", Description: "broken row"},
		{Symbol: "tsla", Description: "Tesla Inc."},
	}}
	svc := NewSearchService(upstream, &fakeMembership{}, zap.NewNop())

	stocks := svc.Search(context.Background(), 0, "tesla")
	if len(stocks) != 1 || stocks[0].Symbol != "TSLA" {
		t.Errorf("expected single uppercased TSLA result, got %v", stocks)
	}
}
