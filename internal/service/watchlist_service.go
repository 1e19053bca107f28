package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yourorg/stock-tracker/internal/model"
	"github.com/yourorg/stock-tracker/internal/repository"
	"github.com/yourorg/stock-tracker/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoSession means the caller is not authenticated. Handlers translate
	// it into a soft failure rather than a 401 page.
	ErrNoSession = errors.New("no active session")

	// ErrAlreadyInWatchlist means the user already tracks the symbol
	ErrAlreadyInWatchlist = errors.New("stock is already in watchlist")
)

// watchlistStore is the repository surface the watchlist service depends on
type watchlistStore interface {
	Insert(ctx context.Context, entry *model.WatchlistEntry) (int, error)
	Delete(ctx context.Context, userID int, symbol string) error
	Exists(ctx context.Context, userID int, symbol string) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]model.WatchlistEntry, error)
	ListSymbolsByUser(ctx context.Context, userID int) ([]string, error)
}

// quoteProvider supplies live quotes for watchlist enrichment
type quoteProvider interface {
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
}

// emailResolver maps an email address to a user record
type emailResolver interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// WatchlistService handles watchlist business logic
type WatchlistService struct {
	store  watchlistStore
	quotes quoteProvider
	users  emailResolver
	logger *zap.Logger
	now    func() time.Time
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(store watchlistStore, quotes quoteProvider, users emailResolver, logger *zap.Logger) *WatchlistService {
	return &WatchlistService{
		store:  store,
		quotes: quotes,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// IsInWatchlist reports whether the user tracks the symbol. An anonymous
// caller or a lookup failure both read as false.
func (s *WatchlistService) IsInWatchlist(ctx context.Context, userID int, symbol string) bool {
	if userID <= 0 {
		return false
	}

	exists, err := s.store.Exists(ctx, userID, strings.ToUpper(symbol))
	if err != nil {
		return false
	}

	return exists
}

// Add inserts a symbol into the user's watchlist. The symbol is stored
// uppercase; adding a symbol the user already tracks returns
// ErrAlreadyInWatchlist.
func (s *WatchlistService) Add(ctx context.Context, userID int, symbol, company string) error {
	if userID <= 0 {
		return ErrNoSession
	}

	entry := &model.WatchlistEntry{
		UserID:  userID,
		Symbol:  strings.ToUpper(strings.TrimSpace(symbol)),
		Company: strings.TrimSpace(company),
		AddedAt: s.now(),
	}

	if _, err := s.store.Insert(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return ErrAlreadyInWatchlist
		}
		return err
	}

	return nil
}

// Remove deletes a symbol from the user's watchlist. Removing a symbol that
// is not there succeeds.
func (s *WatchlistService) Remove(ctx context.Context, userID int, symbol string) error {
	if userID <= 0 {
		return ErrNoSession
	}

	return s.store.Delete(ctx, userID, strings.ToUpper(strings.TrimSpace(symbol)))
}

// GetWatchlist returns the user's entries enriched with live quotes. Quote
// lookups run concurrently; a failed or zero quote leaves the price fields
// absent rather than failing the whole list.
func (s *WatchlistService) GetWatchlist(ctx context.Context, userID int) ([]model.EnrichedWatchlistEntry, error) {
	if userID <= 0 {
		return nil, ErrNoSession
	}

	entries, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedWatchlistEntry, len(entries))
	g, gctx := errgroup.WithContext(ctx)

	for i, entry := range entries {
		i, entry := i, entry
		enriched[i] = model.EnrichedWatchlistEntry{WatchlistEntry: entry}

		g.Go(func() error {
			quote, err := s.quotes.Quote(gctx, entry.Symbol)
			if err != nil {
				s.logger.Warn("quote lookup failed",
					zap.String("symbol", entry.Symbol),
					zap.Error(err))
				return nil
			}
			if quote == nil || quote.Current == 0 {
				return nil
			}

			price := quote.Current
			change := quote.PercentChange
			enriched[i].CurrentPrice = &price
			enriched[i].ChangePercent = &change
			enriched[i].PriceFormatted = utils.FormatPrice(price)
			enriched[i].ChangeFormatted = utils.FormatChangePercent(change)
			return nil
		})
	}

	// Workers only ever return nil; the group is used for the wait.
	_ = g.Wait()

	return enriched, nil
}

// GetSymbolsByEmail resolves a user by email and returns their watchlist
// symbols. Every failure mode, including an unknown email, yields an empty
// slice so digest generation can fall back to general news.
func (s *WatchlistService) GetSymbolsByEmail(ctx context.Context, email string) []string {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		if err != nil {
			s.logger.Warn("watchlist symbol lookup failed", zap.String("email", email), zap.Error(err))
		}
		return []string{}
	}

	symbols, err := s.store.ListSymbolsByUser(ctx, user.ID)
	if err != nil {
		s.logger.Warn("watchlist symbol lookup failed", zap.String("email", email), zap.Error(err))
		return []string{}
	}

	if symbols == nil {
		return []string{}
	}

	return symbols
}
