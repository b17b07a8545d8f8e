package guide

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sanat/karmaverse/types"
)

func testQuotes() []types.ScriptureQuote {
	return []types.ScriptureQuote{
		{
			ID:          "calm_verse",
			Translation: "From anger comes delusion; from delusion, loss of memory.",
			Situations:  []string{"anger"},
		},
		{
			ID:          "duty_verse",
			Translation: "You have a right to your actions, never to their fruits.",
			Situations:  []string{"decision", "attachment"},
		},
	}
}

func testAvatar(path types.YogaPath) *types.Avatar {
	return &types.Avatar{
		Name: "Arjun",
		Stats: types.Stats{
			YogaPath: path,
			Gunas:    types.GunaBalance{Sattva: 40, Rajas: 35, Tamas: 25},
		},
	}
}

func TestLocalWisdom_AngerCategory(t *testing.T) {
	g := New(Config{}, testQuotes(), nil)

	resp := g.Guidance(context.Background(), "I am so angry at my brother", nil)

	if len(resp.ScriptureReferences) != 1 || resp.ScriptureReferences[0].ID != "calm_verse" {
		t.Errorf("scripture refs = %+v, want calm_verse", resp.ScriptureReferences)
	}
	if !strings.Contains(resp.Message, "anger clouds judgment") {
		t.Errorf("message = %q, want anger guidance", resp.Message)
	}
	if len(resp.GuidancePoints) != 3 {
		t.Errorf("guidance points = %d, want 3", len(resp.GuidancePoints))
	}
}

func TestLocalWisdom_PathPersonalization(t *testing.T) {
	g := New(Config{}, testQuotes(), nil)

	resp := g.Guidance(context.Background(), "how should I live", testAvatar(types.PathBhakti))

	found := false
	for _, a := range resp.SuggestedActions {
		if strings.Contains(a, "devotional") {
			found = true
		}
	}
	if !found {
		t.Errorf("actions = %v, want bhakti personalization", resp.SuggestedActions)
	}
}

func TestLocalWisdom_FuzzySituationMatch(t *testing.T) {
	g := New(Config{}, testQuotes(), nil)

	// "attachmant" is one edit away from the "attachment" tag and matches
	// no keyword category.
	resp := g.Guidance(context.Background(), "my attachmant troubles me", nil)

	if len(resp.ScriptureReferences) != 1 || resp.ScriptureReferences[0].ID != "duty_verse" {
		t.Errorf("scripture refs = %+v, want duty_verse via fuzzy match", resp.ScriptureReferences)
	}
}

func TestGuidance_RemoteEnhancesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Walk the middle path."}}]}`))
	}))
	defer server.Close()

	g := New(Config{APIKey: "test-key", APIURL: server.URL, DailyLimit: 5}, testQuotes(), nil)
	resp := g.Guidance(context.Background(), "guide me", nil)

	if resp.Message != "Walk the middle path." {
		t.Errorf("message = %q, want remote content", resp.Message)
	}
	if g.RemainingRequests() != 4 {
		t.Errorf("remaining = %d, want 4", g.RemainingRequests())
	}
}

func TestGuidance_FallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := New(Config{APIKey: "test-key", APIURL: server.URL, DailyLimit: 5}, testQuotes(), nil)
	resp := g.Guidance(context.Background(), "guide me", nil)

	if !strings.Contains(resp.Message, "eternal wisdom") {
		t.Errorf("message = %q, want local fallback", resp.Message)
	}
	if g.RemainingRequests() != 5 {
		t.Errorf("remaining = %d, failed call should not consume budget", g.RemainingRequests())
	}
}

func TestGuidance_FallbackOnTransportError(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	g := New(Config{APIKey: "test-key", APIURL: url, DailyLimit: 5}, testQuotes(), nil)
	resp := g.Guidance(context.Background(), "guide me", nil)

	if !strings.Contains(resp.Message, "eternal wisdom") {
		t.Errorf("message = %q, want local fallback", resp.Message)
	}
}

func TestGuidance_BudgetExhausted(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"choices":[{"message":{"content":"Wisdom."}}]}`))
	}))
	defer server.Close()

	g := New(Config{APIKey: "test-key", APIURL: server.URL, DailyLimit: 1}, testQuotes(), nil)

	g.Guidance(context.Background(), "first", nil)
	g.Guidance(context.Background(), "second", nil)

	if calls != 1 {
		t.Errorf("remote calls = %d, want 1 after budget exhaustion", calls)
	}
	if g.RemainingRequests() != 0 {
		t.Errorf("remaining = %d, want 0", g.RemainingRequests())
	}

	g.ResetDailyLimit()
	if g.RemainingRequests() != 1 {
		t.Errorf("remaining after reset = %d, want 1", g.RemainingRequests())
	}
}

func TestGuidance_NoKeyStaysLocal(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	g := New(Config{APIURL: server.URL, DailyLimit: 5}, testQuotes(), nil)
	g.Guidance(context.Background(), "guide me", nil)

	if calls != 0 {
		t.Errorf("remote calls = %d, want 0 without an API key", calls)
	}
}

func TestAnalyzeKarmaPattern(t *testing.T) {
	g := New(Config{}, nil, nil)

	cases := []struct {
		name    string
		changes []int
		want    string
	}{
		{"positive trend", []int{15, 20, -5}, "positive trend"},
		{"negative trend", []int{-20, -12, 10}, "areas for improvement"},
		{"balanced", []int{10, -10}, "balance"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var recent []types.KarmaAction
			for _, c := range tc.changes {
				recent = append(recent, types.KarmaAction{KarmaChange: c})
			}
			got := g.AnalyzeKarmaPattern(recent)
			if !strings.Contains(got, tc.want) {
				t.Errorf("analysis = %q, want substring %q", got, tc.want)
			}
		})
	}
}
