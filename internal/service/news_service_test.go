package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yourorg/stock-tracker/internal/client"
	"github.com/yourorg/stock-tracker/internal/model"

	"go.uber.org/zap"
)

type fakeNewsAPI struct {
	market     []model.RawNewsArticle
	marketErr  error
	company    map[string][]model.RawNewsArticle
	companyErr map[string]error
	calls      []string
}

func (f *fakeNewsAPI) MarketNews(ctx context.Context) ([]model.RawNewsArticle, error) {
	f.calls = append(f.calls, "general")
	return f.market, f.marketErr
}

func (f *fakeNewsAPI) CompanyNews(ctx context.Context, symbol string, from, to int64) ([]model.RawNewsArticle, error) {
	f.calls = append(f.calls, symbol)
	if err, ok := f.companyErr[symbol]; ok {
		return nil, err
	}
	return f.company[symbol], nil
}

func article(id int64, headline, url string, datetime int64) model.RawNewsArticle {
	return model.RawNewsArticle{
		ID:       id,
		Headline: headline,
		URL:      url,
		Datetime: datetime,
		Summary:  "summary " + headline,
		Source:   "Wire",
	}
}

// uniqueArticles generates n distinct valid articles
func uniqueArticles(n int, startID int64) []model.RawNewsArticle {
	out := make([]model.RawNewsArticle, 0, n)
	for i := 0; i < n; i++ {
		id := startID + int64(i)
		out = append(out, article(id, fmt.Sprintf("headline %d", id), fmt.Sprintf("https://example.com/%d", id), 1000+id))
	}
	return out
}

func newTestNewsService(api *fakeNewsAPI) *NewsService {
	return NewNewsService(api, zap.NewNop())
}

func TestGetNewsRoundRobinOrder(t *testing.T) {
	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": uniqueArticles(3, 100),
			"TSLA": uniqueArticles(3, 200),
			"MSFT": uniqueArticles(3, 300),
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL", "TSLA", "MSFT"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if len(articles) != 6 {
		t.Fatalf("expected 6 articles, got %d", len(articles))
	}

	wantCalls := []string{"AAPL", "TSLA", "MSFT", "AAPL", "TSLA", "MSFT"}
	if len(api.calls) != len(wantCalls) {
		t.Fatalf("expected %d fetches, got %d: %v", len(wantCalls), len(api.calls), api.calls)
	}
	for i, want := range wantCalls {
		if api.calls[i] != want {
			t.Errorf("fetch %d: expected %s, got %s", i, want, api.calls[i])
		}
	}
}

func TestGetNewsSortedNewestFirst(t *testing.T) {
	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": {article(1, "old", "https://example.com/1", 100)},
			"TSLA": {article(2, "new", "https://example.com/2", 900)},
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	for i := 1; i < len(articles); i++ {
		if articles[i-1].Datetime < articles[i].Datetime {
			t.Errorf("articles not sorted newest first: %d before %d",
				articles[i-1].Datetime, articles[i].Datetime)
		}
	}
	if len(articles) == 0 || articles[0].Headline != "new" {
		t.Errorf("expected newest article first, got %+v", articles)
	}
}

func TestGetNewsOnePerSymbolPerRound(t *testing.T) {
	// A single symbol with plenty of articles still yields at most one
	// article per round.
	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": uniqueArticles(20, 100),
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if len(articles) != 6 {
		t.Fatalf("expected 6 articles, got %d", len(articles))
	}
	if len(api.calls) != 6 {
		t.Errorf("expected 6 fetches, got %d", len(api.calls))
	}
}

func TestGetNewsRoundCapLimitsSparseSources(t *testing.T) {
	// Six rounds over two symbols with one article each: only the first two
	// rounds accept anything, later rounds see duplicates.
	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": uniqueArticles(1, 100),
			"TSLA": uniqueArticles(1, 200),
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if len(api.calls) != 6 {
		t.Errorf("expected all 6 rounds to run, got %d fetches", len(api.calls))
	}
}

func TestGetNewsDeduplication(t *testing.T) {
	shared := article(42, "Shared Headline", "https://example.com/shared", 500)
	sameURL := article(43, "Different Headline", "https://example.com/shared", 501)
	sameHeadlineCased := article(44, "SHARED HEADLINE", "https://example.com/other", 502)

	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": {shared, sameURL},
			"TSLA": {shared, sameHeadlineCased},
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	// Round 1: AAPL accepts shared. TSLA sees shared (dup id), then the
	// case-folded headline dup; nothing accepted. Round 2: AAPL accepts
	// nothing (shared dup, sameURL dup). Only one article survives.
	if len(articles) != 1 {
		t.Fatalf("expected 1 article after dedup, got %d", len(articles))
	}
	if articles[0].ID != 42 {
		t.Errorf("expected article 42, got %d", articles[0].ID)
	}
}

func TestGetNewsSkipsInvalidArticles(t *testing.T) {
	noSummary := article(1, "no summary", "https://example.com/1", 100)
	noSummary.Summary = ""
	noURL := article(2, "no url", "", 101)
	valid := article(3, "valid", "https://example.com/3", 102)

	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": {noSummary, noURL, valid},
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if len(articles) != 1 || articles[0].ID != 3 {
		t.Fatalf("expected only the valid article, got %+v", articles)
	}
}

func TestGetNewsSymbolNormalization(t *testing.T) {
	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"AAPL": uniqueArticles(1, 100),
		},
	}
	svc := newTestNewsService(api)

	_, err := svc.GetNews(context.Background(), []string{" aapl ", "AAPL", "", "aapl"})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	// Duplicates and blanks collapse to the single symbol AAPL.
	for _, call := range api.calls {
		if call != "AAPL" {
			t.Errorf("unexpected fetch for %q", call)
		}
	}
}

func TestGetNewsAllBlankSymbols(t *testing.T) {
	api := &fakeNewsAPI{}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"  ", ""})
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if articles == nil || len(articles) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", articles)
	}
	if len(api.calls) != 0 {
		t.Errorf("expected no fetches, got %v", api.calls)
	}
}

func TestGetNewsFetchFailureIsolation(t *testing.T) {
	api := &fakeNewsAPI{
		company: map[string][]model.RawNewsArticle{
			"TSLA": uniqueArticles(6, 200),
		},
		companyErr: map[string]error{
			"AAPL": errors.New("upstream 502"),
		},
	}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("expected per-round failures to be tolerated, got %v", err)
	}

	// AAPL rounds contribute nothing; TSLA rounds each accept one.
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
}

func TestGetNewsMissingAPIKeyIsFatal(t *testing.T) {
	api := &fakeNewsAPI{
		companyErr: map[string]error{
			"AAPL": client.ErrMissingAPIKey,
		},
	}
	svc := newTestNewsService(api)

	_, err := svc.GetNews(context.Background(), []string{"AAPL"})
	if !errors.Is(err, client.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGetNewsGeneralMode(t *testing.T) {
	dup := article(1, "dup", "https://example.com/1", 100)
	invalid := article(2, "invalid", "https://example.com/2", 0)

	page := []model.RawNewsArticle{dup, invalid, dup}
	page = append(page, uniqueArticles(10, 50)...)

	api := &fakeNewsAPI{market: page}
	svc := newTestNewsService(api)

	articles, err := svc.GetNews(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if len(articles) != 6 {
		t.Fatalf("expected 6 articles, got %d", len(articles))
	}

	// Upstream order preserved: the first accepted article is the first
	// valid one, not the newest.
	if articles[0].ID != 1 {
		t.Errorf("expected upstream order, first article ID 1, got %d", articles[0].ID)
	}
	if len(api.calls) != 1 || api.calls[0] != "general" {
		t.Errorf("expected a single general fetch, got %v", api.calls)
	}
}

func TestGetNewsGeneralModeError(t *testing.T) {
	api := &fakeNewsAPI{marketErr: errors.New("upstream down")}
	svc := newTestNewsService(api)

	if _, err := svc.GetNews(context.Background(), nil); err == nil {
		t.Fatal("expected error from general mode fetch failure")
	}
}

func TestFormatArticleDefaults(t *testing.T) {
	raw := article(1, "headline", "https://example.com/1", 100)
	raw.Source = ""
	raw.Category = ""

	got := formatArticle(raw, true, "AAPL")
	if got.Source != "Unknown" {
		t.Errorf("expected source Unknown, got %q", got.Source)
	}
	if got.Category != "company" {
		t.Errorf("expected category company, got %q", got.Category)
	}
	if got.Related != "AAPL" {
		t.Errorf("expected related AAPL, got %q", got.Related)
	}

	got = formatArticle(raw, false, "")
	if got.Category != "general" {
		t.Errorf("expected category general, got %q", got.Category)
	}
}
