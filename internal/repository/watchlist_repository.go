package repository

import (
	"context"
	"errors"

	"github.com/yourorg/stock-tracker/internal/model"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrDuplicateEntry is returned when an insert violates the (user_id, symbol)
// uniqueness constraint.
var ErrDuplicateEntry = errors.New("watchlist entry already exists")

const uniqueViolationCode = "23505"

// WatchlistRepository handles database operations for watchlist entries
type WatchlistRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *sqlx.DB, logger *zap.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		db:     db,
		logger: logger,
	}
}

// Insert adds a new watchlist entry and returns its ID. A violation of the
// (user_id, symbol) constraint is reported as ErrDuplicateEntry.
func (r *WatchlistRepository) Insert(ctx context.Context, entry *model.WatchlistEntry) (int, error) {
	query := `
		INSERT INTO watchlist_entries (user_id, symbol, company, added_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, entry.UserID, entry.Symbol, entry.Company, entry.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, ErrDuplicateEntry
		}
		r.logger.Error("failed to insert watchlist entry",
			zap.Error(err),
			zap.Int("userID", entry.UserID),
			zap.String("symbol", entry.Symbol))
		return 0, err
	}

	return id, nil
}

// Delete removes the (user, symbol) entry. Deleting a row that does not
// exist is not an error; callers cannot tell the two cases apart.
func (r *WatchlistRepository) Delete(ctx context.Context, userID int, symbol string) error {
	query := `DELETE FROM watchlist_entries WHERE user_id = $1 AND symbol = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, symbol); err != nil {
		r.logger.Error("failed to delete watchlist entry",
			zap.Error(err),
			zap.Int("userID", userID),
			zap.String("symbol", symbol))
		return err
	}

	return nil
}

// Exists reports whether the user already tracks the symbol
func (r *WatchlistRepository) Exists(ctx context.Context, userID int, symbol string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM watchlist_entries WHERE user_id = $1 AND symbol = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, symbol); err != nil {
		r.logger.Error("failed to check watchlist membership",
			zap.Error(err),
			zap.Int("userID", userID),
			zap.String("symbol", symbol))
		return false, err
	}

	return exists, nil
}

// ListByUser retrieves all of a user's watchlist entries, newest first
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID int) ([]model.WatchlistEntry, error) {
	query := `
		SELECT id, user_id, symbol, company, added_at
		FROM watchlist_entries
		WHERE user_id = $1
		ORDER BY added_at DESC
	`

	var entries []model.WatchlistEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		r.logger.Error("failed to list watchlist entries", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	return entries, nil
}

// ListSymbolsByUser retrieves just the symbols of a user's watchlist
func (r *WatchlistRepository) ListSymbolsByUser(ctx context.Context, userID int) ([]string, error) {
	query := `SELECT symbol FROM watchlist_entries WHERE user_id = $1 ORDER BY added_at DESC`

	var symbols []string
	if err := r.db.SelectContext(ctx, &symbols, query, userID); err != nil {
		r.logger.Error("failed to list watchlist symbols", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	return symbols, nil
}
