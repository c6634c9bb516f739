package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/news"
	"github.com/newsdesk/newsdesk/internal/preference"
)

type fakeUsers struct {
	known map[int64]bool
	err   error
}

func (f *fakeUsers) UserExists(ctx context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[id], nil
}

type fakeFetcher struct {
	mu        sync.Mutex
	headlines map[string][]string
	topics    []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, topic string) news.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	h := f.headlines[topic]
	if len(h) == 0 {
		return news.Result{Outcome: news.OutcomeNoCredential}
	}
	return news.Result{Headlines: h, Outcome: news.OutcomeOK}
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.topics...)
}

const knownUser int64 = 1

func newTestRouter() (*Router, *preference.Memory, *fakeFetcher, *metrics.InMemoryRecorder) {
	prefs := preference.NewMemory()
	fetcher := &fakeFetcher{headlines: map[string][]string{
		"AI":         {"AI beats humans - Wire", "Robots learn to fold laundry"},
		"technology": {"New chip ships - Reuters", "Phones get thinner"},
		"news":       {"Markets rally", "Rain expected"},
	}}
	rec := metrics.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &fakeUsers{known: map[int64]bool{knownUser: true}}
	return NewRouter(users, prefs, fetcher, rec, logger), prefs, fetcher, rec
}

func TestRouter_Route(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userID    int64
		message   string
		want      string
		wantTopic string
	}{
		{name: "empty", userID: knownUser, message: "", want: ReplyEmpty},
		{name: "whitespace", userID: knownUser, message: "   \t\n", want: ReplyEmpty},
		{name: "empty unknown user", userID: 99, message: " ", want: ReplyEmpty},
		{name: "unknown user", userID: 99, message: "ai news", want: ReplyInvalidUser},
		{name: "lock ai", userID: knownUser, message: "Only AI news please", want: ReplyLockedAI},
		{name: "lock tech", userID: knownUser, message: "only TECH news", want: ReplyLockedTech},
		{name: "reset", userID: knownUser, message: "RESET", want: ReplyReset},
		{name: "help", userID: knownUser, message: "hello", want: ReplyHelp},
		{
			name:      "keyword ai",
			userID:    knownUser,
			message:   "any AI updates?",
			want:      "AI update: AI beats humans and Robots learn to fold laundry.",
			wantTopic: "AI",
		},
		{
			name:      "keyword tech",
			userID:    knownUser,
			message:   "tech",
			want:      "TECH update: New chip ships and Phones get thinner.",
			wantTopic: "technology",
		},
		{
			name:      "general",
			userID:    knownUser,
			message:   "news",
			want:      "GENERAL update: Markets rally and Rain expected.",
			wantTopic: "news",
		},
		{
			name:      "unanchored substring",
			userID:    knownUser,
			message:   "she said hello",
			want:      "AI update: AI beats humans and Robots learn to fold laundry.",
			wantTopic: "AI",
		},
		{
			name:      "lock ai wins over tech keyword",
			userID:    knownUser,
			message:   "only ai news, no tech",
			want:      ReplyLockedAI,
			wantTopic: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, _, fetcher, _ := newTestRouter()

			got, err := router.Route(context.Background(), tt.userID, tt.message)
			if err != nil {
				t.Fatalf("Route returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Route(%q) = %q, want %q", tt.message, got, tt.want)
			}

			calls := fetcher.calls()
			if tt.wantTopic == "" && len(calls) != 0 {
				t.Errorf("unexpected fetches: %v", calls)
			}
			if tt.wantTopic != "" && (len(calls) != 1 || calls[0] != tt.wantTopic) {
				t.Errorf("fetches = %v, want [%s]", calls, tt.wantTopic)
			}
		})
	}
}

func TestRouter_PreferencePersistsAcrossTurns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	router, prefs, fetcher, _ := newTestRouter()

	if got, _ := router.Route(ctx, knownUser, "only ai news"); got != ReplyLockedAI {
		t.Fatalf("lock reply = %q", got)
	}
	if got := prefs.Get(knownUser); got != model.CategoryAI {
		t.Fatalf("preference = %v, want AI", got)
	}

	// A locked preference overrides keywords in later messages.
	got, _ := router.Route(ctx, knownUser, "tech news")
	if want := "AI update: AI beats humans and Robots learn to fold laundry."; got != want {
		t.Errorf("locked reply = %q, want %q", got, want)
	}
	if calls := fetcher.calls(); len(calls) != 1 || calls[0] != "AI" {
		t.Errorf("fetches = %v, want [AI]", calls)
	}

	if got, _ := router.Route(ctx, knownUser, "reset"); got != ReplyReset {
		t.Fatalf("reset reply = %q", got)
	}
	if got, _ := router.Route(ctx, knownUser, "hello"); got != ReplyHelp {
		t.Errorf("after reset reply = %q, want help text", got)
	}
}

func TestRouter_TechPreference(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	router, _, _, _ := newTestRouter()

	router.Route(ctx, knownUser, "only tech news")
	got, _ := router.Route(ctx, knownUser, "anything at all")
	if want := "TECH update: New chip ships and Phones get thinner."; got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestRouter_InvalidUserHasNoSideEffects(t *testing.T) {
	t.Parallel()

	router, prefs, fetcher, _ := newTestRouter()

	if got, _ := router.Route(context.Background(), 42, "only ai news"); got != ReplyInvalidUser {
		t.Fatalf("reply = %q", got)
	}
	if prefs.Len() != 0 {
		t.Errorf("preference entries = %d, want 0", prefs.Len())
	}
	if calls := fetcher.calls(); len(calls) != 0 {
		t.Errorf("unexpected fetches: %v", calls)
	}
}

func TestRouter_RecordsPreferenceForValidUser(t *testing.T) {
	t.Parallel()

	router, prefs, _, _ := newTestRouter()

	router.Route(context.Background(), knownUser, "hello")
	if prefs.Len() != 1 {
		t.Errorf("preference entries = %d, want 1", prefs.Len())
	}
}

func TestRouter_FallbackWhenFetchEmpty(t *testing.T) {
	t.Parallel()

	router, _, fetcher, _ := newTestRouter()
	fetcher.headlines = map[string][]string{"news": {"Only one headline"}}

	got, _ := router.Route(context.Background(), knownUser, "news")
	if got != news.FallbackSummary {
		t.Errorf("reply = %q, want fallback", got)
	}

	got, _ = router.Route(context.Background(), knownUser, "ai")
	if got != news.FallbackSummary {
		t.Errorf("reply = %q, want fallback", got)
	}
}

func TestRouter_UserLookupError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("database unavailable")
	router := NewRouter(&fakeUsers{err: storeErr}, preference.NewMemory(), &fakeFetcher{}, nil, nil)

	_, err := router.Route(context.Background(), knownUser, "news")
	if !errors.Is(err, storeErr) {
		t.Errorf("error = %v, want wrapped %v", err, storeErr)
	}

	if _, err := router.Route(context.Background(), knownUser, ""); err != nil {
		t.Errorf("empty message should not consult the store, got %v", err)
	}
}

func TestRouter_RecordsRouteMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	router, _, _, rec := newTestRouter()

	router.Route(ctx, knownUser, "")
	router.Route(ctx, 7, "news")
	router.Route(ctx, knownUser, "only ai news")
	router.Route(ctx, knownUser, "anything")
	router.Route(ctx, knownUser, "reset")
	router.Route(ctx, knownUser, "news")

	want := map[string]uint64{
		RouteEmpty:       1,
		RouteInvalidUser: 1,
		RouteLockAI:      1,
		RoutePrefAI:      1,
		RouteReset:       1,
		RouteGeneral:     1,
	}
	got := rec.Snapshot().ChatRoutes
	for route, n := range want {
		if got[route] != n {
			t.Errorf("route %s = %d, want %d", route, got[route], n)
		}
	}
}
