// Package engine provides the orchestrator that wires content definitions,
// the scoring rules, and the state store into the narrative operations the
// UI calls: free actions, dilemmas, quests, meditation, journaling, and
// the reincarnation cycle.
package engine

import (
	"fmt"

	"github.com/sanat/karmaverse/engine/scoring"
	"github.com/sanat/karmaverse/engine/store"
	"github.com/sanat/karmaverse/types"
)

// difficultyByDuration is the fixed meditation duration ladder.
var difficultyByDuration = map[int]int{
	3: 1, 5: 2, 10: 3, 15: 4, 20: 5, 30: 6,
}

// Durations lists the valid meditation durations in ascending order.
var Durations = []int{3, 5, 10, 15, 20, 30}

// Engine holds the content definitions and mutable game state.
type Engine struct {
	Defs  *Defs
	Store *store.Store
	Rules scoring.Rules
	RNG   *RNG

	// CompletedQuests is runtime-only bookkeeping; it is not part of
	// the persisted snapshot.
	CompletedQuests map[string]bool
}

// New creates an engine from definitions with a seeded RNG.
func New(defs *Defs, st *store.Store, seed int64) *Engine {
	if defs.YugaProfiles != nil {
		st.SetYugaProfiles(defs.YugaProfiles)
	}
	return &Engine{
		Defs:            defs,
		Store:           st,
		Rules:           defs.ScoringRules(),
		RNG:             NewRNG(seed),
		CompletedQuests: map[string]bool{},
	}
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed int64, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// Act scores a free-text action in a context and applies all three deltas:
// karma, gunas, and virtues. Returns the recorded action.
func (e *Engine) Act(action, context string) (types.KarmaAction, error) {
	avatar := e.Store.Avatar
	if avatar == nil {
		return types.KarmaAction{}, fmt.Errorf("no avatar present")
	}

	karma, gunas := scoring.ActionImpact(e.Rules, e.RNG, action, context, avatar.Level)
	record := types.KarmaAction{
		ID:          fmt.Sprintf("action_%d", e.Store.Now().UnixMilli()),
		Action:      action,
		KarmaChange: karma,
		GunaEffect:  gunas,
		Timestamp:   e.Store.Now(),
		Context:     context,
	}

	e.Store.UpdateKarma(record)
	e.Store.UpdateGunas(gunas)
	e.Store.UpdateVirtues(scoring.VirtueImpact(e.Rules, action, karma))
	return record, nil
}

// ResolveDilemma applies the consequences of a chosen dilemma option.
func (e *Engine) ResolveDilemma(dilemmaID, optionID string) (types.DilemmaOption, error) {
	if e.Store.Avatar == nil {
		return types.DilemmaOption{}, fmt.Errorf("no avatar present")
	}

	dilemma, ok := e.Defs.DilemmaByID(dilemmaID)
	if !ok {
		return types.DilemmaOption{}, fmt.Errorf("unknown dilemma %q", dilemmaID)
	}

	var option types.DilemmaOption
	found := false
	for _, opt := range dilemma.Options {
		if opt.ID == optionID {
			option = opt
			found = true
			break
		}
	}
	if !found {
		return types.DilemmaOption{}, fmt.Errorf("dilemma %q has no option %q", dilemmaID, optionID)
	}

	record := types.KarmaAction{
		ID:          fmt.Sprintf("action_%d", e.Store.Now().UnixMilli()),
		Action:      option.Text,
		KarmaChange: option.Karma,
		GunaEffect:  option.GunaChanges,
		Timestamp:   e.Store.Now(),
		Context:     dilemma.PersonalContext,
	}
	e.Store.UpdateKarma(record)
	e.Store.UpdateGunas(option.GunaChanges)
	return option, nil
}

// MeetsRequirements reports whether the avatar satisfies every requirement
// of a quest. Virtue requirements compare against the average virtue;
// guna requirements compare against sattva.
func (e *Engine) MeetsRequirements(quest types.Quest) bool {
	avatar := e.Store.Avatar
	if avatar == nil {
		return false
	}

	for _, req := range quest.Requirements {
		var actual int
		switch req.Kind {
		case "karma":
			actual = avatar.Stats.Karma.Total
		case "virtue":
			actual = scoring.VirtueSum(avatar.Stats.Virtues) / 8
		case "guna":
			actual = avatar.Stats.Gunas.Sattva
		case "level":
			actual = avatar.Level
		default:
			return false
		}

		switch req.Comparison {
		case "min":
			if actual < req.Value {
				return false
			}
		case "max":
			if actual > req.Value {
				return false
			}
		case "exact":
			if actual != req.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// CompleteQuest applies a quest's rewards. A quest on the avatar's yoga
// path pays a 50% karma bonus as a second karma action.
func (e *Engine) CompleteQuest(id string) (types.Quest, error) {
	avatar := e.Store.Avatar
	if avatar == nil {
		return types.Quest{}, fmt.Errorf("no avatar present")
	}

	quest, ok := e.Defs.QuestByID(id)
	if !ok {
		return types.Quest{}, fmt.Errorf("unknown quest %q", id)
	}
	if e.CompletedQuests[id] {
		return types.Quest{}, fmt.Errorf("quest %q already completed", id)
	}
	if !e.MeetsRequirements(quest) {
		return types.Quest{}, fmt.Errorf("requirements for quest %q not met", id)
	}

	record := types.KarmaAction{
		ID:          fmt.Sprintf("action_%d", e.Store.Now().UnixMilli()),
		Action:      "Completed quest: " + quest.Title,
		KarmaChange: quest.Rewards.Karma,
		GunaEffect:  quest.Rewards.GunaChanges,
		Timestamp:   e.Store.Now(),
		Context:     "quest",
	}
	e.Store.UpdateKarma(record)
	e.Store.UpdateGunas(quest.Rewards.GunaChanges)
	e.Store.UpdateVirtues(quest.Rewards.VirtuePoints)

	total := quest.Rewards.Karma
	if quest.YogaPathBonus != "" && quest.YogaPathBonus == avatar.Stats.YogaPath {
		bonus := quest.Rewards.Karma / 2
		e.Store.UpdateKarma(types.KarmaAction{
			ID:          fmt.Sprintf("action_%d_bonus", e.Store.Now().UnixMilli()),
			Action:      "Yoga path bonus: " + quest.Title,
			KarmaChange: bonus,
			Timestamp:   e.Store.Now(),
			Context:     "quest",
		})
		total += bonus
		e.Store.AddNotification(fmt.Sprintf(
			"Quest completed with yoga path bonus! +%d total karma", total))
	} else {
		e.Store.AddNotification(fmt.Sprintf(
			"Quest completed! +%d karma gained", total))
	}

	e.CompletedQuests[id] = true
	e.Store.Dispatch(types.QuestCompleted{QuestID: id, Rewards: quest.Rewards})

	// Individual accomplishment feeds the shared world.
	e.Store.UpdateCollectiveKarma(quest.Rewards.Karma)
	return quest, nil
}

// Meditate completes a meditation session of the given practice and
// duration. The duration must be one of the fixed ladder steps.
func (e *Engine) Meditate(practiceID string, minutes int) (types.MeditationSession, error) {
	if e.Store.Avatar == nil {
		return types.MeditationSession{}, fmt.Errorf("no avatar present")
	}

	practice, ok := e.Defs.PracticeByID(practiceID)
	if !ok {
		return types.MeditationSession{}, fmt.Errorf("unknown practice %q", practiceID)
	}
	difficulty, ok := difficultyByDuration[minutes]
	if !ok {
		return types.MeditationSession{}, fmt.Errorf("invalid duration %d minutes", minutes)
	}

	session := types.MeditationSession{
		ID:         fmt.Sprintf("session_%d", e.Store.Now().UnixMilli()),
		Practice:   practice.ID,
		Duration:   minutes,
		Difficulty: difficulty,
		Rewards:    practice.Benefits,
	}
	e.Store.CompleteMeditation(session)
	e.Store.AddNotification(fmt.Sprintf(
		"Meditation completed! +%d Sattva gained", practice.Benefits.Sattva))
	return session, nil
}

// Journal records a reflection. The entry carries a snapshot copy of up to
// 3 recent karma actions as context — not a live reference.
func (e *Engine) Journal(prompt, reflection string, mood types.Mood, insights []string) (types.JournalEntry, error) {
	avatar := e.Store.Avatar
	if avatar == nil {
		return types.JournalEntry{}, fmt.Errorf("no avatar present")
	}

	recent := avatar.Stats.Karma.Recent
	n := len(recent)
	if n > 3 {
		n = 3
	}
	context := make([]types.KarmaAction, n)
	copy(context, recent[:n])

	entry := types.JournalEntry{
		Date:         e.Store.Now(),
		Prompt:       prompt,
		Reflection:   reflection,
		Mood:         mood,
		KarmaContext: context,
		Insights:     insights,
	}
	return e.Store.AddJournalEntry(entry), nil
}

// RandomPrompt picks a journal prompt from content.
func (e *Engine) RandomPrompt() string {
	prompts := e.Defs.JournalPrompts
	if len(prompts) == 0 {
		return "What did today teach you about your path?"
	}
	return prompts[e.RNG.Pick(len(prompts))]
}

// CheckReincarnation reports whether the avatar's attainment warrants
// returning to the wheel.
func (e *Engine) CheckReincarnation() bool {
	if e.Store.Avatar == nil {
		return false
	}
	return scoring.ShouldTriggerReincarnation(e.Store.Avatar)
}

// Reincarnate archives the current life and begins the next incarnation.
func (e *Engine) Reincarnate() {
	e.Store.Reincarnate()
}

// AdvanceYuga moves the world to the next age in the cycle.
func (e *Engine) AdvanceYuga() types.Yuga {
	next := store.NextYuga(e.Store.World.CurrentYuga)
	e.Store.TransitionYuga(next)
	return next
}
