package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/engine/store"
	"github.com/sanat/karmaverse/types"
)

// testDefs returns minimal content definitions for CLI testing.
func testDefs() *engine.Defs {
	return &engine.Defs{
		World: engine.WorldDef{
			Title:   "Test World",
			Author:  "Test",
			Version: "1.0",
			Intro:   "The wheel of dharma turns.",
		},
		JournalPrompts: []string{"What did you release today?"},
		Quests: []types.Quest{
			{
				ID:         "feed_the_hungry",
				Title:      "Feed the Hungry",
				Difficulty: "easy",
				Rewards:    types.QuestReward{Karma: 20},
			},
			{
				ID:    "locked_quest",
				Title: "Locked Quest",
				Requirements: []types.QuestRequirement{
					{Kind: "karma", Value: 1000, Comparison: "min"},
				},
				Rewards: types.QuestReward{Karma: 50},
			},
		},
		Dilemmas: []types.Dilemma{
			{
				ID:       "beggar",
				Title:    "The Beggar",
				Scenario: "A beggar asks for your last coin.",
				Options: []types.DilemmaOption{
					{ID: "give", Text: "Give the coin", Karma: 15,
						Description: "Charity without expectation."},
					{ID: "refuse", Text: "Refuse", Karma: -8},
				},
			},
		},
		Practices: []types.MeditationPractice{
			{
				ID:       "breathing",
				Name:     "Pranayama",
				Benefits: types.MeditationReward{Sattva: 8, Focus: 10, Peace: 12},
			},
		},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := testDefs()

	now := time.Unix(1700000000, 0)
	st := store.New(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	st.InitializeAvatar("Arjun", types.PathKarma)

	eng := engine.New(defs, st, 42)
	var out bytes.Buffer
	c := &CLI{
		Engine:  eng,
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	return c, &out
}

func TestCLI_Intro(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "The wheel of dharma turns.") {
		t.Error("expected intro text in output")
	}
}

func TestCLI_AvatarCreationFlow(t *testing.T) {
	defs := testDefs()
	st := store.New(nil)
	eng := engine.New(defs, st, 42)
	var out bytes.Buffer
	c := &CLI{
		Engine:  eng,
		In:      strings.NewReader("Mira\nwarrior\nbhakti\n/quit\n"),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	c.Run()

	if st.Avatar == nil {
		t.Fatal("avatar should be created")
	}
	if st.Avatar.Name != "Mira" {
		t.Errorf("Name = %q, want Mira", st.Avatar.Name)
	}
	if st.Avatar.Stats.YogaPath != types.PathBhakti {
		t.Errorf("YogaPath = %q, want bhakti", st.Avatar.Stats.YogaPath)
	}
	// Bad path input should be rejected before bhakti is accepted.
	if !strings.Contains(out.String(), "not one of the four paths") {
		t.Error("expected rejection of invalid path")
	}
}

func TestCLI_ActAppliesKarma(t *testing.T) {
	c, out := newTestCLI(t, "act help the beggar @ temple\n/quit\n")
	c.Run()

	// help (15) in a sacred context (x1.5) = 22.5, rounded half-up to 23.
	if !strings.Contains(out.String(), "Karma +23") {
		t.Errorf("output = %q, want Karma +23", out.String())
	}
	if c.Engine.Store.Avatar.Stats.Karma.Total != 23 {
		t.Errorf("karma total = %d, want 23", c.Engine.Store.Avatar.Stats.Karma.Total)
	}
}

func TestCLI_MeditateAndList(t *testing.T) {
	c, out := newTestCLI(t, "meditate\nmeditate breathing 10\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Pranayama") {
		t.Error("expected practice listing")
	}
	if !strings.Contains(output, "difficulty 3") {
		t.Errorf("output = %q, want 10-minute session at difficulty 3", output)
	}
	if len(c.Engine.Store.Meditations) != 1 {
		t.Errorf("meditations = %d, want 1", len(c.Engine.Store.Meditations))
	}
}

func TestCLI_MeditateInvalidDuration(t *testing.T) {
	c, out := newTestCLI(t, "meditate breathing 7\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "invalid duration") {
		t.Error("expected invalid duration message")
	}
}

func TestCLI_JournalFlow(t *testing.T) {
	c, out := newTestCLI(t, "journal\njournal peaceful I let go of my pride\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "What did you release today?") {
		t.Error("expected journal prompt")
	}
	if !strings.Contains(output, "Recorded in your journal") {
		t.Error("expected journal confirmation")
	}
	if len(c.Engine.Store.Journal) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(c.Engine.Store.Journal))
	}
	entry := c.Engine.Store.Journal[0]
	if entry.Prompt != "What did you release today?" {
		t.Errorf("entry prompt = %q", entry.Prompt)
	}
	if entry.Mood != types.MoodPeaceful {
		t.Errorf("entry mood = %q", entry.Mood)
	}
}

func TestCLI_QuestsListAndComplete(t *testing.T) {
	c, out := newTestCLI(t, "quests\ncomplete feed_the_hungry\nquests\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[locked") {
		t.Error("expected locked_quest to show as locked")
	}
	if !strings.Contains(output, "Feed the Hungry is fulfilled.") {
		t.Error("expected completion message")
	}
	if !strings.Contains(output, "[done") {
		t.Error("expected completed quest to show as done")
	}
	if c.Engine.Store.Avatar.Stats.Karma.Total != 20 {
		t.Errorf("karma = %d, want 20", c.Engine.Store.Avatar.Stats.Karma.Total)
	}
}

func TestCLI_CompleteTwiceFails(t *testing.T) {
	c, out := newTestCLI(t, "complete feed_the_hungry\ncomplete feed_the_hungry\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "already completed") {
		t.Error("expected duplicate completion rejection")
	}
}

func TestCLI_DilemmaFlow(t *testing.T) {
	c, out := newTestCLI(t, "dilemma\ndilemma beggar\ndilemma beggar give\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "The Beggar") {
		t.Error("expected dilemma listing")
	}
	if !strings.Contains(output, "A beggar asks for your last coin.") {
		t.Error("expected scenario text")
	}
	if !strings.Contains(output, "Charity without expectation.") {
		t.Error("expected option description after choosing")
	}
	if c.Engine.Store.Avatar.Stats.Karma.Total != 15 {
		t.Errorf("karma = %d, want 15", c.Engine.Store.Avatar.Stats.Karma.Total)
	}
}

func TestCLI_WorldCommand(t *testing.T) {
	c, out := newTestCLI(t, "world\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Satya") {
		t.Error("expected current yuga name")
	}
	if !strings.Contains(output, "Collective karma: 0") {
		t.Error("expected collective karma line")
	}
}

func TestCLI_StatsCommand(t *testing.T) {
	c, out := newTestCLI(t, "stats\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Arjun") {
		t.Error("expected avatar name")
	}
	if !strings.Contains(output, "sattva 33") {
		t.Error("expected initial guna balance")
	}
}

func TestCLI_AdvanceYuga(t *testing.T) {
	c, out := newTestCLI(t, "/advance\nworld\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Treta") {
		t.Error("expected world to advance to Treta Yuga")
	}
	if c.Engine.Store.World.CurrentYuga != types.YugaTreta {
		t.Errorf("yuga = %q, want treta", c.Engine.Store.World.CurrentYuga)
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	c, out := newTestCLI(t, "act donate to the poor\n/save test\n/quit\n")
	c.SaveDir = dir
	c.Run()

	if !strings.Contains(out.String(), "Game saved to test.") {
		t.Error("expected save confirmation")
	}
	karma := c.Engine.Store.Avatar.Stats.Karma.Total

	c2, out2 := newTestCLI(t, "/load test\n/quit\n")
	c2.SaveDir = dir
	c2.Run()

	if !strings.Contains(out2.String(), "Game loaded from test.") {
		t.Error("expected load confirmation")
	}
	if got := c2.Engine.Store.Avatar.Stats.Karma.Total; got != karma {
		t.Errorf("karma after load = %d, want %d", got, karma)
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nact help a friend\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled.") {
		t.Error("expected trace toggle confirmation")
	}
	if !strings.Contains(output, "[trace] rng position=") {
		t.Error("expected trace output after action")
	}
}

func TestCLI_UnknownVerb(t *testing.T) {
	c, out := newTestCLI(t, "dance wildly\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "The sages do not recognize that.") {
		t.Error("expected unknown verb message")
	}
}
