package loader

import (
	"strings"
	"testing"

	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/engine/scoring"
	"github.com/sanat/karmaverse/types"
)

// validDefs returns a minimal valid Defs for testing.
func validDefs() *engine.Defs {
	profiles := map[types.Yuga]types.YugaProfile{}
	for _, yuga := range []types.Yuga{
		types.YugaSatya, types.YugaTreta, types.YugaDvapara, types.YugaKali,
	} {
		profiles[yuga] = types.YugaProfile{Name: string(yuga)}
	}
	return &engine.Defs{
		World:        engine.WorldDef{Title: "Test"},
		YugaProfiles: profiles,
	}
}

func TestValidate_ValidDefs(t *testing.T) {
	defs := validDefs()
	if err := validate(defs); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_EmptyTitle(t *testing.T) {
	defs := validDefs()
	defs.World.Title = ""

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	assertContains(t, ve.Errors, "title")
}

func TestValidate_MissingYuga(t *testing.T) {
	defs := validDefs()
	delete(defs.YugaProfiles, types.YugaKali)

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for missing yuga profile")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "missing YugaProfile")
}

func TestValidate_UnknownYuga(t *testing.T) {
	defs := validDefs()
	defs.YugaProfiles["golden"] = types.YugaProfile{Name: "Golden"}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for unknown yuga")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "unknown yuga")
}

func TestValidate_DuplicateDilemmaOption(t *testing.T) {
	defs := validDefs()
	defs.Dilemmas = []types.Dilemma{{
		ID: "d1",
		Options: []types.DilemmaOption{
			{ID: "a", Text: "First"},
			{ID: "a", Text: "Second"},
		},
	}}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for duplicate option ID")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "duplicate option ID")
}

func TestValidate_EmptyOptionID(t *testing.T) {
	defs := validDefs()
	defs.Dilemmas = []types.Dilemma{{
		ID:      "d1",
		Options: []types.DilemmaOption{{Text: "Unnamed"}},
	}}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for option without id")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "without an id")
}

func TestValidate_UnknownRequirementKind(t *testing.T) {
	defs := validDefs()
	defs.Quests = []types.Quest{{
		ID:           "q1",
		Rewards:      types.QuestReward{Karma: 10},
		Requirements: []types.QuestRequirement{{Kind: "mana", Value: 5}},
	}}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for unknown requirement kind")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "unknown requirement kind")
}

func TestValidate_UnknownComparison(t *testing.T) {
	defs := validDefs()
	defs.Quests = []types.Quest{{
		ID:      "q1",
		Rewards: types.QuestReward{Karma: 10},
		Requirements: []types.QuestRequirement{
			{Kind: "karma", Value: 5, Comparison: "roughly"},
		},
	}}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for unknown comparison")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "unknown comparison")
}

func TestValidate_DuplicateQuestID(t *testing.T) {
	defs := validDefs()
	defs.Quests = []types.Quest{
		{ID: "q1", Rewards: types.QuestReward{Karma: 10}},
		{ID: "q1", Rewards: types.QuestReward{Karma: 20}},
	}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for duplicate quest ID")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "duplicate quest ID")
}

func TestValidate_RuleWithoutKeywords(t *testing.T) {
	defs := validDefs()
	defs.HasRules = true
	defs.Rules.Action = []scoring.KarmaRule{{Name: "help", Base: 15}}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for rule without keywords")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "no keywords")
}

func TestValidate_ContextRuleBadMultiplier(t *testing.T) {
	defs := validDefs()
	defs.HasRules = true
	defs.Rules.Context = []scoring.ContextRule{
		{Name: "temple", Keywords: []string{"temple"}, Multiplier: 0},
	}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for non-positive multiplier")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "positive multiplier")
}

func TestValidate_DanglingScriptureRef_Warns(t *testing.T) {
	defs := validDefs()
	defs.Dilemmas = []types.Dilemma{{
		ID: "d1",
		Options: []types.DilemmaOption{
			{ID: "a", Text: "Choose", ScriptureReference: "missing_verse"},
		},
	}}

	// Dangling references warn without failing the load.
	if err := validate(defs); err != nil {
		t.Fatalf("expected warning only, got error: %v", err)
	}
}

// assertContains checks that at least one string in the slice contains substr.
func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}
