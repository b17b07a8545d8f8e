package loader

import (
	"strings"
	"testing"

	"github.com/sanat/karmaverse/types"
)

func TestLoad_MinimalWorld(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.World.Title != "Minimal Test World" {
		t.Errorf("Title = %q, want %q", defs.World.Title, "Minimal Test World")
	}
	if len(defs.JournalPrompts) != 1 {
		t.Errorf("journal prompts = %d, want 1", len(defs.JournalPrompts))
	}
	if len(defs.YugaProfiles) != 4 {
		t.Errorf("yuga profiles = %d, want 4", len(defs.YugaProfiles))
	}
	satya := defs.YugaProfiles[types.YugaSatya]
	if satya.Environment.Harmony != 90 {
		t.Errorf("satya harmony = %d, want 90", satya.Environment.Harmony)
	}
	if satya.Environment.Colors.Sky != "#87ceeb" {
		t.Errorf("satya sky = %q", satya.Environment.Colors.Sky)
	}
}

func TestLoad_FullWorld(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// World metadata.
	if defs.World.Author != "Tester" {
		t.Errorf("Author = %q", defs.World.Author)
	}
	if len(defs.JournalPrompts) != 2 {
		t.Errorf("journal prompts = %d, want 2", len(defs.JournalPrompts))
	}

	// Scriptures.
	if len(defs.Scriptures) != 1 {
		t.Fatalf("scriptures = %d, want 1", len(defs.Scriptures))
	}
	quote := defs.Scriptures[0]
	if quote.ID != "bg_2_47" {
		t.Errorf("scripture ID = %q", quote.ID)
	}
	if quote.Source != "Bhagavad Gita 2.47" {
		t.Errorf("scripture source = %q", quote.Source)
	}
	if len(quote.Situations) != 2 {
		t.Errorf("scripture situations = %d, want 2", len(quote.Situations))
	}

	// Dilemmas.
	dilemma, ok := defs.DilemmaByID("beggar_at_gate")
	if !ok {
		t.Fatal("dilemma 'beggar_at_gate' not found")
	}
	if dilemma.Yuga != types.YugaKali {
		t.Errorf("dilemma yuga = %q, want kali", dilemma.Yuga)
	}
	if len(dilemma.Options) != 2 {
		t.Fatalf("dilemma options = %d, want 2", len(dilemma.Options))
	}
	give := dilemma.Options[0]
	if give.Karma != 15 {
		t.Errorf("give_coin karma = %d, want 15", give.Karma)
	}
	if give.GunaChanges.Sattva != 3 || give.GunaChanges.Rajas != -1 {
		t.Errorf("give_coin gunas = %+v", give.GunaChanges)
	}
	if give.ScriptureReference != "bg_2_47" {
		t.Errorf("give_coin scripture = %q", give.ScriptureReference)
	}

	// Quests.
	quest, ok := defs.QuestByID("feed_the_hungry")
	if !ok {
		t.Fatal("quest 'feed_the_hungry' not found")
	}
	if quest.Rewards.Karma != 20 {
		t.Errorf("quest reward karma = %d, want 20", quest.Rewards.Karma)
	}
	if quest.Rewards.VirtuePoints.Compassion != 3 {
		t.Errorf("quest compassion reward = %v", quest.Rewards.VirtuePoints.Compassion)
	}
	if quest.YogaPathBonus != types.PathKarma {
		t.Errorf("quest bonus path = %q", quest.YogaPathBonus)
	}
	if len(quest.Requirements) != 1 || quest.Requirements[0].Kind != "karma" {
		t.Errorf("quest requirements = %+v", quest.Requirements)
	}

	// Temples.
	if len(defs.Temples) != 1 || defs.Temples[0].Deity != "Shiva" {
		t.Errorf("temples = %+v", defs.Temples)
	}

	// Practices.
	practice, ok := defs.PracticeByID("breathing")
	if !ok {
		t.Fatal("practice 'breathing' not found")
	}
	if practice.Benefits.Peace != 12 {
		t.Errorf("breathing peace = %d, want 12", practice.Benefits.Peace)
	}

	// Scoring rule override.
	if !defs.HasRules {
		t.Fatal("expected content scoring rules")
	}
	rules := defs.ScoringRules()
	if len(rules.Action) != 2 {
		t.Errorf("action rules = %d, want 2", len(rules.Action))
	}
	if rules.Context[0].Multiplier != 1.5 {
		t.Errorf("temple multiplier = %v, want 1.5", rules.Context[0].Multiplier)
	}
}

func TestLoad_NoWorldDef_Fails(t *testing.T) {
	_, err := Load("testdata/no_world")
	if err == nil {
		t.Fatal("expected error for missing World{} definition")
	}
	if !strings.Contains(err.Error(), "no World{} definition") {
		t.Errorf("error = %q, expected 'no World{} definition'", err.Error())
	}
}

func TestLoad_MissingYugaProfile_Fails(t *testing.T) {
	_, err := Load("testdata/missing_yuga")
	if err == nil {
		t.Fatal("expected error for missing yuga profile")
	}
	if !strings.Contains(err.Error(), "missing YugaProfile") {
		t.Errorf("error = %q, expected 'missing YugaProfile'", err.Error())
	}
}

func TestLoad_BadLuaSyntax_Fails(t *testing.T) {
	_, err := Load("testdata/bad_lua")
	if err == nil {
		t.Fatal("expected error for bad Lua syntax")
	}
}

func TestLoad_SandboxEnforced(t *testing.T) {
	// os library should not be available.
	L, _ := newTestVM()
	defer L.Close()

	err := L.DoString(`os.execute("echo pwned")`)
	if err == nil {
		t.Fatal("expected sandbox to block os.execute")
	}
}

func TestSortedLuaFiles_WorldFirst(t *testing.T) {
	files := []string{"quests.lua", "world.lua", "dilemmas.lua"}
	sorted := sortedLuaFiles(files)
	if sorted[0] != "world.lua" {
		t.Errorf("first file = %q, want world.lua", sorted[0])
	}
	if sorted[1] != "dilemmas.lua" || sorted[2] != "quests.lua" {
		t.Errorf("rest = %v, want alphabetical", sorted[1:])
	}
}
