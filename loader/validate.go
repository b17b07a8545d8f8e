package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known yuga names.
var validYugas = map[types.Yuga]bool{
	types.YugaSatya:   true,
	types.YugaTreta:   true,
	types.YugaDvapara: true,
	types.YugaKali:    true,
}

// Known yoga paths.
var validPaths = map[types.YogaPath]bool{
	types.PathKarma:  true,
	types.PathBhakti: true,
	types.PathJnana:  true,
	types.PathRaja:   true,
}

// Known quest requirement kinds.
var validRequirementKinds = map[string]bool{
	"karma":  true,
	"virtue": true,
	"guna":   true,
	"level":  true,
}

// Known requirement comparisons.
var validComparisons = map[string]bool{
	"min":   true,
	"max":   true,
	"exact": true,
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *engine.Defs) error {
	ve := &ValidationError{}

	// World title required.
	if defs.World.Title == "" {
		ve.Errors = append(ve.Errors, "World.title is required")
	}

	// Yuga profiles: names valid, all four ages covered.
	for yuga := range defs.YugaProfiles {
		if !validYugas[yuga] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"unknown yuga %q in profile definition", yuga))
		}
	}
	for yuga := range validYugas {
		if _, ok := defs.YugaProfiles[yuga]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"missing YugaProfile for %q", yuga))
		}
	}

	// Scripture IDs unique, text required.
	scriptureIDs := map[string]bool{}
	for _, q := range defs.Scriptures {
		if scriptureIDs[q.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"duplicate scripture ID %q", q.ID))
		}
		scriptureIDs[q.ID] = true
		if q.Text == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"scripture %q has no text", q.ID))
		}
	}

	// Dilemmas: option IDs unique and non-empty, yuga and path valid,
	// scripture references resolve.
	dilemmaIDs := map[string]bool{}
	for _, d := range defs.Dilemmas {
		if dilemmaIDs[d.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"duplicate dilemma ID %q", d.ID))
		}
		dilemmaIDs[d.ID] = true

		optionIDs := map[string]bool{}
		for _, opt := range d.Options {
			if opt.ID == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"dilemma %q has an option without an id", d.ID))
				continue
			}
			if optionIDs[opt.ID] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"dilemma %q has duplicate option ID %q", d.ID, opt.ID))
			}
			optionIDs[opt.ID] = true

			if opt.ScriptureReference != "" && !scriptureIDs[opt.ScriptureReference] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"dilemma %q option %q references undefined scripture %q",
					d.ID, opt.ID, opt.ScriptureReference))
			}
		}

		if d.Yuga != "" && !validYugas[d.Yuga] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"dilemma %q uses unknown yuga %q", d.ID, d.Yuga))
		}
		if d.YogaPath != "" && !validPaths[d.YogaPath] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"dilemma %q uses unknown yoga path %q", d.ID, d.YogaPath))
		}
	}

	// Quests: IDs unique, requirement kinds and comparisons valid,
	// bonus path valid.
	questIDs := map[string]bool{}
	for _, q := range defs.Quests {
		if questIDs[q.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"duplicate quest ID %q", q.ID))
		}
		questIDs[q.ID] = true

		for _, req := range q.Requirements {
			if !validRequirementKinds[req.Kind] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"quest %q has unknown requirement kind %q", q.ID, req.Kind))
			}
			if req.Comparison != "" && !validComparisons[req.Comparison] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"quest %q has unknown comparison %q", q.ID, req.Comparison))
			}
		}
		if q.YogaPathBonus != "" && !validPaths[q.YogaPathBonus] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"quest %q has unknown yoga path bonus %q", q.ID, q.YogaPathBonus))
		}
		if q.Rewards.Karma == 0 && q.Rewards.GunaChanges == (types.GunaDelta{}) &&
			q.Rewards.VirtuePoints == (types.VirtueDelta{}) {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"quest %q has no rewards", q.ID))
		}
	}

	// Temples: IDs unique, yuga valid.
	templeIDs := map[string]bool{}
	for _, t := range defs.Temples {
		if templeIDs[t.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"duplicate temple ID %q", t.ID))
		}
		templeIDs[t.ID] = true
		if t.Yuga != "" && !validYugas[t.Yuga] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"temple %q uses unknown yuga %q", t.ID, t.Yuga))
		}
	}

	// Practices: IDs unique, benefits present.
	practiceIDs := map[string]bool{}
	for _, p := range defs.Practices {
		if practiceIDs[p.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"duplicate practice ID %q", p.ID))
		}
		practiceIDs[p.ID] = true
		if p.Benefits == (types.MeditationReward{}) {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"practice %q has no benefits", p.ID))
		}
	}

	// Scoring rule override: every rule needs keywords, contexts need
	// a positive multiplier.
	if defs.HasRules {
		for _, rule := range defs.Rules.Action {
			if len(rule.Keywords) == 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"scoring action rule %q has no keywords", rule.Name))
			}
		}
		for _, rule := range defs.Rules.Context {
			if len(rule.Keywords) == 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"scoring context rule %q has no keywords", rule.Name))
			}
			if rule.Multiplier <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"scoring context rule %q needs a positive multiplier", rule.Name))
			}
		}
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
