package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yourorg/stock-tracker/internal/model"

	"go.uber.org/zap"
)

// digestUserLister is the roster source for the daily digest
type digestUserLister interface {
	ListForDigest(ctx context.Context) ([]model.User, error)
}

// symbolSource resolves a user's watchlist symbols by email
type symbolSource interface {
	GetSymbolsByEmail(ctx context.Context, email string) []string
}

// newsProvider supplies deduplicated articles for a symbol set
type newsProvider interface {
	GetNews(ctx context.Context, symbols []string) ([]model.NewsArticle, error)
}

// summarizer turns a prompt into generated text
type summarizer interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// digestMailer delivers the digest and welcome emails
type digestMailer interface {
	SendNewsSummary(ctx context.Context, email, name, date, newsContent string) error
	SendWelcomeEmail(ctx context.Context, email, name, intro string) error
}

// DigestService orchestrates the daily news digest: for every user it
// resolves watchlist symbols, fetches news, summarizes it and sends the
// email. Users are processed sequentially; one user's failure never stops
// the run.
type DigestService struct {
	users       digestUserLister
	watchlist   symbolSource
	news        newsProvider
	ai          summarizer
	mailer      digestMailer
	maxArticles int
	logger      *zap.Logger
	now         func() time.Time
}

// NewDigestService creates a new digest service
func NewDigestService(
	users digestUserLister,
	watchlist symbolSource,
	news newsProvider,
	ai summarizer,
	mailer digestMailer,
	maxArticles int,
	logger *zap.Logger,
) *DigestService {
	if maxArticles <= 0 {
		maxArticles = maxNewsArticles
	}

	return &DigestService{
		users:       users,
		watchlist:   watchlist,
		news:        news,
		ai:          ai,
		mailer:      mailer,
		maxArticles: maxArticles,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one digest cycle over the full user roster
func (s *DigestService) Run(ctx context.Context) model.DigestRunResult {
	users, err := s.users.ListForDigest(ctx)
	if err != nil {
		s.logger.Error("failed to list users for digest", zap.Error(err))
		return model.DigestRunResult{Success: false, Message: "failed to list users"}
	}

	if len(users) == 0 {
		return model.DigestRunResult{Success: false, Message: "no users found for news email"}
	}

	results := make([]model.UserDigestResult, 0, len(users))
	for _, user := range users {
		results = append(results, s.processUser(ctx, user))
	}

	return model.DigestRunResult{
		Success: true,
		Message: fmt.Sprintf("processed news for %d users", len(users)),
		Users:   results,
	}
}

// processUser runs the full pipeline for one user and captures the outcome.
// All errors end up in the result record instead of propagating.
func (s *DigestService) processUser(ctx context.Context, user model.User) model.UserDigestResult {
	result := model.UserDigestResult{UserID: user.ID, Email: user.Email}

	symbols := s.watchlist.GetSymbolsByEmail(ctx, user.Email)

	articles, err := s.news.GetNews(ctx, symbols)
	if err != nil {
		s.logger.Error("digest news fetch failed",
			zap.Int("userID", user.ID),
			zap.Error(err))
		result.Error = err.Error()
		return result
	}

	if len(articles) > s.maxArticles {
		articles = articles[:s.maxArticles]
	}

	content := s.summarize(ctx, user, articles)
	if content == "" {
		// Nothing to say today; skipping beats sending an empty email.
		s.logger.Info("no news content for user, skipping send",
			zap.Int("userID", user.ID))
		return result
	}

	date := s.now().Format("Monday, January 2, 2006")
	if err := s.mailer.SendNewsSummary(ctx, user.Email, user.Name, date, content); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Sent = true
	return result
}

// summarize produces the HTML digest body for the articles. Zero articles
// yield the empty sentinel; a summarizer failure yields the placeholder body
// so the email still goes out.
func (s *DigestService) summarize(ctx context.Context, user model.User, articles []model.NewsArticle) string {
	if len(articles) == 0 {
		return ""
	}

	data, err := json.MarshalIndent(serializeArticles(articles), "", "  ")
	if err != nil {
		s.logger.Error("failed to serialize digest articles", zap.Error(err))
		return noNewsContentPlaceholder
	}

	prompt := strings.Replace(newsSummaryPrompt, "{{newsData}}", string(data), 1)

	content, err := s.ai.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("digest summarization failed, using placeholder",
			zap.Int("userID", user.ID),
			zap.Error(err))
		return noNewsContentPlaceholder
	}

	return content
}

// digestArticle is the article shape handed to the summarizer
type digestArticle struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Related  string `json:"related,omitempty"`
}

func serializeArticles(articles []model.NewsArticle) []digestArticle {
	out := make([]digestArticle, 0, len(articles))
	for _, a := range articles {
		out = append(out, digestArticle{
			Headline: a.Headline,
			Summary:  a.Summary,
			Source:   a.Source,
			URL:      a.URL,
			Date:     time.Unix(a.Datetime, 0).UTC().Format("Jan 2, 2006"),
			Category: a.Category,
			Related:  a.Related,
		})
	}
	return out
}

// SendWelcome generates a personalized intro from the registration profile
// and sends the onboarding email. A summarizer failure falls back to the
// stock intro; only a mailer failure is an error.
func (s *DigestService) SendWelcome(ctx context.Context, event model.UserCreatedEvent) error {
	profile := fmt.Sprintf(
		"Country: %s\nInvestment goals: %s\nRisk tolerance: %s\nPreferred industry: %s",
		event.Country, event.InvestmentGoals, event.RiskTolerance, event.PreferredIndustry,
	)
	prompt := strings.Replace(welcomeIntroPrompt, "{{userProfile}}", profile, 1)

	intro, err := s.ai.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(intro) == "" {
		if err != nil {
			s.logger.Warn("welcome intro generation failed, using default",
				zap.String("email", event.Email),
				zap.Error(err))
		}
		intro = defaultWelcomeIntro
	}

	return s.mailer.SendWelcomeEmail(ctx, event.Email, event.Name, strings.TrimSpace(intro))
}
