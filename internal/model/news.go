package model

// RawNewsArticle is an article exactly as Finnhub returns it. Zero values
// mean the field was absent upstream.
type RawNewsArticle struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// Valid reports whether the upstream payload carries every required field.
// Invalid articles are discarded before deduplication.
func (a RawNewsArticle) Valid() bool {
	return a.ID != 0 &&
		a.Headline != "" &&
		a.URL != "" &&
		a.Datetime != 0 &&
		a.Summary != ""
}

// NewsArticle is the normalized article shape used across the service.
type NewsArticle struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"` // UNIX seconds
	Category string `json:"category"`
	Related  string `json:"related"`
	Image    string `json:"image,omitempty"`
}

// Quote holds the live price data Finnhub returns for a symbol.
// Field names follow Finnhub's /quote response.
type Quote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
}

// StockSearchResult is one hit from Finnhub's /search endpoint
type StockSearchResult struct {
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
}

// SymbolSearchResponse is the envelope of Finnhub's /search endpoint
type SymbolSearchResponse struct {
	Count  int                 `json:"count"`
	Result []StockSearchResult `json:"result"`
}

// CompanyProfile is the subset of Finnhub's /stock/profile2 response the
// stock details page needs
type CompanyProfile struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Industry string `json:"finnhubIndustry"`
	Logo     string `json:"logo"`
	WebURL   string `json:"weburl"`
}
