package engine

import (
	"github.com/sanat/karmaverse/engine/scoring"
	"github.com/sanat/karmaverse/types"
)

// WorldDef holds game metadata from content.
type WorldDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// Defs holds the immutable content definitions loaded from Lua.
type Defs struct {
	World          WorldDef
	Scriptures     []types.ScriptureQuote
	Dilemmas       []types.Dilemma
	Quests         []types.Quest
	Temples        []types.Temple
	Practices      []types.MeditationPractice
	YugaProfiles   map[types.Yuga]types.YugaProfile
	JournalPrompts []string

	// Rules is the scoring table; HasRules marks a content override.
	Rules    scoring.Rules
	HasRules bool
}

// ScoringRules returns the content rule table, or the built-in defaults
// when the content defines none.
func (d *Defs) ScoringRules() scoring.Rules {
	if d.HasRules {
		return d.Rules
	}
	return scoring.DefaultRules()
}

// QuestByID returns the quest with the given id.
func (d *Defs) QuestByID(id string) (types.Quest, bool) {
	for _, q := range d.Quests {
		if q.ID == id {
			return q, true
		}
	}
	return types.Quest{}, false
}

// DilemmaByID returns the dilemma with the given id.
func (d *Defs) DilemmaByID(id string) (types.Dilemma, bool) {
	for _, dl := range d.Dilemmas {
		if dl.ID == id {
			return dl, true
		}
	}
	return types.Dilemma{}, false
}

// PracticeByID returns the meditation practice with the given id.
func (d *Defs) PracticeByID(id string) (types.MeditationPractice, bool) {
	for _, p := range d.Practices {
		if p.ID == id {
			return p, true
		}
	}
	return types.MeditationPractice{}, false
}
