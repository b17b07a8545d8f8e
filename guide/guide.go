// Package guide answers a seeker's questions with scripture-backed
// guidance. A remote chat endpoint enhances the answer when configured;
// every failure path falls back to locally generated wisdom, so the
// caller always gets a usable response. Guidance never mutates game state.
package guide

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/sanat/karmaverse/engine/scoring"
	"github.com/sanat/karmaverse/types"
)

// Picker chooses an index in [0,n). Used for quote selection when no
// situation tag matches.
type Picker interface {
	Pick(n int) int
}

// Guide is the guidance collaborator.
type Guide struct {
	cfg      Config
	client   *http.Client
	quotes   []types.ScriptureQuote
	rand     Picker
	requests int
}

// New builds a Guide over the loaded scripture quotes. rand may be nil,
// in which case fallback quote selection is deterministic.
func New(cfg Config, quotes []types.ScriptureQuote, rand Picker) *Guide {
	return &Guide{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		quotes: quotes,
		rand:   rand,
	}
}

// canRequest reports whether the remote endpoint is usable right now.
func (g *Guide) canRequest() bool {
	return g.cfg.APIKey != "" && g.requests < g.cfg.DailyLimit
}

// RemainingRequests returns how many remote calls are left today.
func (g *Guide) RemainingRequests() int {
	if n := g.cfg.DailyLimit - g.requests; n > 0 {
		return n
	}
	return 0
}

// ResetDailyLimit resets the remote request budget.
func (g *Guide) ResetDailyLimit() {
	g.requests = 0
}

// Guidance answers a question, enhanced by the remote endpoint when
// available. Transport errors, bad statuses, and budget exhaustion all
// downgrade silently to the local response.
func (g *Guide) Guidance(ctx context.Context, question string, avatar *types.Avatar) types.Guidance {
	local := g.localWisdom(question, avatar)

	if !g.canRequest() {
		return local
	}
	message, err := g.chat(ctx, g.buildPrompt(question, avatar))
	if err != nil {
		return local
	}
	g.requests++
	local.Message = message
	local.GuidancePoints = append(local.GuidancePoints,
		"This guidance comes from both ancient wisdom and modern understanding")
	return local
}

// AnalyzeKarmaPattern summarizes the trend of recent actions.
func (g *Guide) AnalyzeKarmaPattern(recent []types.KarmaAction) string {
	if len(recent) > 10 {
		recent = recent[:10]
	}
	var positive, negative int
	for _, a := range recent {
		switch {
		case a.KarmaChange > 0:
			positive++
		case a.KarmaChange < 0:
			negative++
		}
	}
	switch {
	case positive > negative:
		return "Your recent actions show a positive trend toward dharmic living. Continue on this path of righteousness."
	case negative > positive:
		return "Your recent actions suggest areas for improvement. Focus on selfless service and righteous conduct."
	default:
		return "Your actions show balance. Strive to increase positive karma through compassionate service."
	}
}

// chat request/response shapes for OpenAI-compatible endpoints.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Guide) chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a wise sage providing spiritual guidance based on authentic Hindu scriptures and philosophy."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: g.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("guidance endpoint returned HTTP %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("guidance endpoint returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (g *Guide) buildPrompt(question string, avatar *types.Avatar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A spiritual seeker asks: %q\n", question)

	if avatar != nil {
		recent := avatar.Stats.Karma.Recent
		if len(recent) > 3 {
			recent = recent[:3]
		}
		var actions []string
		for _, a := range recent {
			actions = append(actions, a.Action)
		}
		fmt.Fprintf(&b, "\nSeeker's context:\n")
		fmt.Fprintf(&b, "- Name: %s\n", avatar.Name)
		fmt.Fprintf(&b, "- Spiritual path: %s yoga\n", avatar.Stats.YogaPath)
		fmt.Fprintf(&b, "- Karma total: %d\n", avatar.Stats.Karma.Total)
		fmt.Fprintf(&b, "- Dominant guna: %s\n", dominantGuna(avatar.Stats.Gunas))
		fmt.Fprintf(&b, "- Spiritual level: %d\n", scoring.SpiritualLevel(avatar.Stats))
		if len(actions) > 0 {
			fmt.Fprintf(&b, "- Recent actions: %s\n", strings.Join(actions, ", "))
		}
	}

	b.WriteString("\nReference relevant scripture, explain the principles involved, " +
		"and offer practical steps suited to the seeker's path. " +
		"Keep the response concise but profound.")
	return b.String()
}

func dominantGuna(g types.GunaBalance) types.Guna {
	switch {
	case g.Sattva >= g.Rajas && g.Sattva >= g.Tamas:
		return types.GunaSattva
	case g.Rajas >= g.Tamas:
		return types.GunaRajas
	default:
		return types.GunaTamas
	}
}

// wisdomCategory is one keyword-triggered bundle of canned guidance.
type wisdomCategory struct {
	keywords  []string
	situation string
	guidance  []string
	actions   []string
}

var wisdomCategories = []wisdomCategory{
	{
		keywords:  []string{"anger", "angry"},
		situation: "anger",
		guidance: []string{
			"Anger clouds judgment and leads to suffering",
			"Practice breathing meditation to calm the mind",
			"Remember that anger often masks deeper pain or fear",
		},
		actions: []string{
			"Practice pranayama (breathing exercises)",
			"Reflect on the root cause of anger",
			"Cultivate patience through daily practice",
		},
	},
	{
		keywords:  []string{"fear", "afraid"},
		situation: "fear",
		guidance: []string{
			"Fear arises from attachment and ignorance of our true nature",
			"Surrender to the Divine brings fearlessness",
			"Courage grows through facing our fears with dharma",
		},
		actions: []string{
			"Chant mantras for protection",
			"Study scriptures on fearlessness",
			"Take small brave actions daily",
		},
	},
	{
		keywords:  []string{"decision", "choice"},
		situation: "decision",
		guidance: []string{
			"Act according to dharma without attachment to results",
			"Consider the welfare of all beings in your decisions",
			"Seek guidance from scriptures and wise counsel",
		},
		actions: []string{
			"Meditate before important decisions",
			"Consult dharmic principles",
			"Consider long-term consequences",
		},
	},
}

var defaultWisdom = wisdomCategory{
	guidance: []string{
		"All experiences are opportunities for spiritual growth",
		"Maintain equanimity in pleasure and pain",
		"Remember your eternal nature beyond temporary circumstances",
	},
	actions: []string{
		"Practice daily meditation",
		"Study sacred texts",
		"Serve others selflessly",
	},
}

var pathActions = map[types.YogaPath]string{
	types.PathKarma:  "Focus on selfless service and right action",
	types.PathBhakti: "Deepen your devotional practices and surrender",
	types.PathJnana:  "Study scriptures and practice self-inquiry",
	types.PathRaja:   "Intensify meditation and mental discipline",
}

// localWisdom builds the canned response used when the remote endpoint
// is unavailable.
func (g *Guide) localWisdom(question string, avatar *types.Avatar) types.Guidance {
	lower := strings.ToLower(question)

	category := defaultWisdom
	for _, c := range wisdomCategories {
		if containsAny(lower, c.keywords) {
			category = c
			break
		}
	}

	quote := g.quoteFor(category.situation, lower)

	guidance := append([]string(nil), category.guidance...)
	actions := append([]string(nil), category.actions...)
	if avatar != nil {
		if extra, ok := pathActions[avatar.Stats.YogaPath]; ok {
			actions = append(actions, extra)
		}
	}

	resp := types.Guidance{
		Message:          fmt.Sprintf("Based on the eternal wisdom of our scriptures, %s.", lowerFirst(guidance[0])),
		GuidancePoints:   guidance,
		SuggestedActions: actions,
	}
	if quote != nil {
		resp.Message += " " + quote.Translation
		resp.ScriptureReferences = []types.ScriptureQuote{*quote}
	}
	return resp
}

// quoteFor finds the best scripture quote for a situation tag, falling
// back to fuzzy token matching over all situation tags, then to a pick
// across the whole collection.
func (g *Guide) quoteFor(situation, question string) *types.ScriptureQuote {
	if len(g.quotes) == 0 {
		return nil
	}

	// Exact situation tag match.
	if situation != "" {
		for i, q := range g.quotes {
			for _, tag := range q.Situations {
				if tag == situation {
					return &g.quotes[i]
				}
			}
		}
	}

	// Fuzzy match question tokens against situation tags.
	tokens := strings.FieldsFunc(question, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for i, q := range g.quotes {
		for _, tag := range q.Situations {
			for _, token := range tokens {
				if levenshtein.ComputeDistance(token, tag) <= fuzzLimit(len(tag)) {
					return &g.quotes[i]
				}
			}
		}
	}

	if g.rand != nil {
		return &g.quotes[g.rand.Pick(len(g.quotes))]
	}
	return &g.quotes[0]
}

func fuzzLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
