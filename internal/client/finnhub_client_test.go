package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/stock-tracker/internal/config"

	"go.uber.org/zap"
)

func newTestFinnhubClient(t *testing.T, handler http.HandlerFunc) *FinnhubClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewFinnhubClient(config.FinnhubConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	}, nil, zap.NewNop())
}

func TestCompanyNews(t *testing.T) {
	var gotPath, gotSymbol, gotFrom, gotTo, gotToken string
	c := newTestFinnhubClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSymbol = r.URL.Query().Get("symbol")
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		gotToken = r.URL.Query().Get("token")
		w.Write([]byte(`[{"id":1,"headline":"h","url":"u","datetime":100,"summary":"s"}]`))
	})

	from := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC).Unix()
	to := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC).Unix()
	articles, err := c.CompanyNews(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("CompanyNews returned error: %v", err)
	}

	if gotPath != "/company-news" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotSymbol != "AAPL" || gotToken != "test-key" {
		t.Errorf("unexpected query symbol=%q token=%q", gotSymbol, gotToken)
	}
	if gotFrom != "2026-02-25" || gotTo != "2026-03-02" {
		t.Errorf("unexpected date bounds from=%q to=%q", gotFrom, gotTo)
	}
	if len(articles) != 1 || articles[0].ID != 1 {
		t.Errorf("unexpected articles %+v", articles)
	}
}

func TestMarketNewsCategory(t *testing.T) {
	var gotCategory string
	c := newTestFinnhubClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCategory = r.URL.Query().Get("category")
		w.Write([]byte(`[]`))
	})

	if _, err := c.MarketNews(context.Background()); err != nil {
		t.Fatalf("MarketNews returned error: %v", err)
	}
	if gotCategory != "general" {
		t.Errorf("expected general category, got %q", gotCategory)
	}
}

func TestFetchMissingAPIKey(t *testing.T) {
	c := NewFinnhubClient(config.FinnhubConfig{BaseURL: "http://unused"}, nil, zap.NewNop())

	_, err := c.MarketNews(context.Background())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	c := newTestFinnhubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "limit exceeded", http.StatusTooManyRequests)
	})

	if _, err := c.MarketNews(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestQuoteRetriesTransientFailures(t *testing.T) {
	attempts := 0
	c := newTestFinnhubClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"c":187.5,"dp":1.25}`))
	})

	quote, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Quote returned error after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if quote.Current != 187.5 {
		t.Errorf("unexpected quote %+v", quote)
	}
}

func TestCompanyProfileEmptyMeansUnknown(t *testing.T) {
	c := newTestFinnhubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	profile, err := c.CompanyProfile(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("CompanyProfile returned error: %v", err)
	}
	if profile != nil {
		t.Errorf("expected nil profile for unknown symbol, got %+v", profile)
	}
}

func TestSearchSymbols(t *testing.T) {
	c := newTestFinnhubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "apple" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`{"count":1,"result":[{"symbol":"AAPL","description":"Apple Inc."}]}`))
	})

	results, err := c.SearchSymbols(context.Background(), "apple")
	if err != nil {
		t.Fatalf("SearchSymbols returned error: %v", err)
	}
	if len(results) != 1 || results[0].Symbol != "AAPL" {
		t.Errorf("unexpected results %+v", results)
	}
}
