// Package chat routes a single chat message to a fixed reply, a preference
// change, or a news summary.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/news"
)

// Fixed replies.
const (
	ReplyEmpty       = "Empty message."
	ReplyInvalidUser = "Invalid user. Please login again."
	ReplyLockedAI    = "Locked to AI news 🤖"
	ReplyLockedTech  = "Locked to tech news 💻"
	ReplyReset       = "Preferences reset."
	ReplyHelp        = "Ask for AI news, tech news, or general news."
)

// Route names recorded in metrics.
const (
	RouteEmpty       = "empty"
	RouteInvalidUser = "invalid_user"
	RouteLockAI      = "lock_ai"
	RouteLockTech    = "lock_tech"
	RouteReset       = "reset"
	RoutePrefAI      = "pref_ai"
	RoutePrefTech    = "pref_tech"
	RouteKeywordAI   = "keyword_ai"
	RouteKeywordTech = "keyword_tech"
	RouteGeneral     = "general"
	RouteHelp        = "help"
)

// Search topics and summary labels.
const (
	topicAI      = "AI"
	topicTech    = "technology"
	topicGeneral = "news"

	labelAI      = "AI"
	labelTech    = "TECH"
	labelGeneral = "GENERAL"
)

// UserChecker reports whether a user id is registered.
type UserChecker interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

// PreferenceStore holds the sticky category per user.
type PreferenceStore interface {
	Get(userID int64) model.Category
	Set(userID int64, category model.Category)
}

// Fetcher retrieves raw headlines for a topic.
type Fetcher interface {
	Fetch(ctx context.Context, topic string) news.Result
}

// Router decides the reply for a chat message.
type Router struct {
	users   UserChecker
	prefs   PreferenceStore
	fetcher Fetcher
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewRouter creates a new Router.
func NewRouter(users UserChecker, prefs PreferenceStore, fetcher Fetcher, recorder metrics.Recorder, logger *slog.Logger) *Router {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		users:   users,
		prefs:   prefs,
		fetcher: fetcher,
		metrics: recorder,
		logger:  logger,
	}
}

// Route returns the reply for message sent by userID. The error is non-nil
// only when the user lookup fails.
func (r *Router) Route(ctx context.Context, userID int64, message string) (string, error) {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return r.reply(RouteEmpty, ReplyEmpty), nil
	}

	exists, err := r.users.UserExists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return r.reply(RouteInvalidUser, ReplyInvalidUser), nil
	}

	pref := r.prefs.Get(userID)

	// Matching is substring based and unanchored: "said" contains "ai".
	switch {
	case strings.Contains(text, "only ai news"):
		r.prefs.Set(userID, model.CategoryAI)
		return r.reply(RouteLockAI, ReplyLockedAI), nil
	case strings.Contains(text, "only tech news"):
		r.prefs.Set(userID, model.CategoryTech)
		return r.reply(RouteLockTech, ReplyLockedTech), nil
	case strings.Contains(text, "reset"):
		r.prefs.Set(userID, model.CategoryNone)
		return r.reply(RouteReset, ReplyReset), nil
	case pref == model.CategoryAI:
		return r.summarize(ctx, RoutePrefAI, topicAI, labelAI), nil
	case pref == model.CategoryTech:
		return r.summarize(ctx, RoutePrefTech, topicTech, labelTech), nil
	case strings.Contains(text, "ai"):
		return r.summarize(ctx, RouteKeywordAI, topicAI, labelAI), nil
	case strings.Contains(text, "tech"):
		return r.summarize(ctx, RouteKeywordTech, topicTech, labelTech), nil
	case strings.Contains(text, "news"):
		return r.summarize(ctx, RouteGeneral, topicGeneral, labelGeneral), nil
	default:
		return r.reply(RouteHelp, ReplyHelp), nil
	}
}

func (r *Router) reply(route, text string) string {
	r.metrics.IncChatRoute(route)
	return text
}

func (r *Router) summarize(ctx context.Context, route, topic, label string) string {
	r.metrics.IncChatRoute(route)

	result := r.fetcher.Fetch(ctx, topic)
	r.logger.Debug("chat news lookup",
		slog.String("route", route),
		slog.String("topic", topic),
		slog.String("outcome", string(result.Outcome)),
		slog.Int("headlines", len(result.Headlines)),
	)

	return news.Summarize(news.Clean(result.Headlines), label)
}
