package service

import (
	"context"
	"errors"
	"strings"

	"github.com/yourorg/stock-tracker/internal/model"
	"github.com/yourorg/stock-tracker/internal/utils"

	"go.uber.org/zap"
)

// ErrUnknownSymbol is returned when the market data provider has no profile
// for the symbol
var ErrUnknownSymbol = errors.New("unknown stock symbol")

// stockDataProvider supplies profile and quote data for the details page
type stockDataProvider interface {
	CompanyProfile(ctx context.Context, symbol string) (*model.CompanyProfile, error)
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
}

// StockDetails is the payload for a stock details page
type StockDetails struct {
	Symbol          string                `json:"symbol"`
	Profile         *model.CompanyProfile `json:"profile"`
	Quote           *model.Quote          `json:"quote,omitempty"`
	PriceFormatted  string                `json:"priceFormatted,omitempty"`
	ChangeFormatted string                `json:"changeFormatted,omitempty"`
	IsInWatchlist   bool                  `json:"isInWatchlist"`
}

// StockService assembles stock details from profile, quote and watchlist data
type StockService struct {
	finnhub   stockDataProvider
	watchlist membershipChecker
	logger    *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(finnhub stockDataProvider, watchlist membershipChecker, logger *zap.Logger) *StockService {
	return &StockService{
		finnhub:   finnhub,
		watchlist: watchlist,
		logger:    logger,
	}
}

// GetDetails returns the details page payload for a symbol. A missing
// profile means the symbol does not exist; a failed quote leaves the price
// fields absent.
func (s *StockService) GetDetails(ctx context.Context, userID int, symbol string) (*StockDetails, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	profile, err := s.finnhub.CompanyProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUnknownSymbol
	}

	details := &StockDetails{
		Symbol:        symbol,
		Profile:       profile,
		IsInWatchlist: s.watchlist.IsInWatchlist(ctx, userID, symbol),
	}

	quote, err := s.finnhub.Quote(ctx, symbol)
	if err != nil {
		s.logger.Warn("quote lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return details, nil
	}
	if quote != nil && quote.Current != 0 {
		details.Quote = quote
		details.PriceFormatted = utils.FormatPrice(quote.Current)
		details.ChangeFormatted = utils.FormatChangePercent(quote.PercentChange)
	}

	return details, nil
}
