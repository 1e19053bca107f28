package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/yourorg/stock-tracker/internal/config"
	"github.com/yourorg/stock-tracker/internal/model"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering with an email that already
	// has an account
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so login failures do not reveal which one it was
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// userStore is the repository surface the auth service depends on
type userStore interface {
	Create(ctx context.Context, user *model.User) (int, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Publisher emits domain events to the message bus
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// AuthService handles registration, login and token generation
type AuthService struct {
	users     userStore
	publisher Publisher
	cfg       config.AuthConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service. The publisher may be
// nil when the message bus is disabled.
func NewAuthService(users userStore, publisher Publisher, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a new user account and publishes a user-created event for
// the welcome-email pipeline
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:             req.Email,
		Name:              req.Name,
		PasswordHash:      string(hashed),
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
		CreatedAt:         s.now(),
	}

	userID, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(userID, req.Email)
	if err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, userID, user)

	return &model.AuthResponse{
		UserID: userID,
		Email:  req.Email,
		Name:   req.Name,
		Token:  token,
	}, nil
}

// Login authenticates a user and returns a signed token
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debug("password verification failed", zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	}, nil
}

// ValidateToken validates a signed token and returns the user ID
func (s *AuthService) ValidateToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}

	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid user ID in token")
	}

	return int(userIDFloat), nil
}

// generateToken creates a signed access token for the user
func (s *AuthService) generateToken(userID int, email string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.AccessTokenDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return "", err
	}

	return signed, nil
}

// publishUserCreated emits the user-created event. Registration already
// succeeded at this point, so publish failures are logged and swallowed.
func (s *AuthService) publishUserCreated(ctx context.Context, userID int, user *model.User) {
	if s.publisher == nil {
		return
	}

	event := model.UserCreatedEvent{
		UserID:            userID,
		Email:             user.Email,
		Name:              user.Name,
		Country:           user.Country,
		InvestmentGoals:   user.InvestmentGoals,
		RiskTolerance:     user.RiskTolerance,
		PreferredIndustry: user.PreferredIndustry,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal user created event", zap.Error(err))
		return
	}

	if err := s.publisher.Publish(ctx, user.Email, payload); err != nil {
		s.logger.Error("failed to publish user created event",
			zap.Int("userID", userID),
			zap.Error(err))
	}
}
