package model

import "time"

// WatchlistEntry represents a stock tracked by a user. Entries are never
// updated in place; changing the company name means remove then add.
type WatchlistEntry struct {
	ID      int       `json:"id" db:"id"`
	UserID  int       `json:"userId" db:"user_id"`
	Symbol  string    `json:"symbol" db:"symbol"`
	Company string    `json:"company" db:"company"`
	AddedAt time.Time `json:"addedAt" db:"added_at"`
}

// EnrichedWatchlistEntry is a WatchlistEntry joined with live quote data.
// The quote fields are derived at read time and never persisted; when the
// quote lookup fails they are simply absent.
type EnrichedWatchlistEntry struct {
	WatchlistEntry
	CurrentPrice    *float64 `json:"currentPrice,omitempty"`
	ChangePercent   *float64 `json:"changePercent,omitempty"`
	PriceFormatted  string   `json:"priceFormatted,omitempty"`
	ChangeFormatted string   `json:"changeFormatted,omitempty"`
}

// WatchlistAddRequest is the request body for adding a stock to the watchlist
type WatchlistAddRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Company string `json:"company" binding:"required"`
}

// WatchlistActionResult is the uniform response for watchlist mutations,
// surfaced directly by the UI as toast notifications
type WatchlistActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// StockWithWatchlistStatus is a search result annotated with the caller's
// current watchlist membership
type StockWithWatchlistStatus struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Type          string `json:"type"`
	IsInWatchlist bool   `json:"isInWatchlist"`
}
