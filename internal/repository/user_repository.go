package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourorg/stock-tracker/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new user and returns its ID
func (r *UserRepository) Create(ctx context.Context, user *model.User) (int, error) {
	query := `
		INSERT INTO users (email, name, password_hash, country, investment_goals, risk_tolerance, preferred_industry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(
		ctx,
		&id,
		query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Country,
		user.InvestmentGoals,
		user.RiskTolerance,
		user.PreferredIndustry,
		user.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT id, email, name, password_hash, country, investment_goals, risk_tolerance, preferred_industry, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get user by ID", zap.Error(err), zap.Int("id", id))
		return nil, err
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, name, password_hash, country, investment_goals, risk_tolerance, preferred_industry, created_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	return &user, nil
}

// ListForDigest retrieves the full roster of users eligible for the news
// digest email
func (r *UserRepository) ListForDigest(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, email, name, password_hash, country, investment_goals, risk_tolerance, preferred_industry, created_at
		FROM users
		ORDER BY id
	`

	var users []model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		r.logger.Error("failed to list users for digest", zap.Error(err))
		return nil, err
	}

	return users, nil
}
