// Package store owns the mutable Avatar and WorldState snapshots and is
// their sole mutator. Every write applies clamping/normalization invariants;
// reads of derived values are recomputed, never cached.
package store

import (
	"fmt"
	"math"
	"time"

	"github.com/sanat/karmaverse/engine/scoring"
	"github.com/sanat/karmaverse/types"
)

// recentCap bounds the karma action window; notifyCap bounds the
// transient notification queue.
const (
	recentCap = 10
	notifyCap = 5
)

// Store is the explicit state context passed to handlers. No global
// singleton: callers construct one and thread it through.
type Store struct {
	Avatar      *types.Avatar
	World       types.WorldState
	Settings    types.GameSettings
	Journal     []types.JournalEntry
	Meditations []types.MeditationSession

	// Notifications is a capped transient queue, newest first.
	// Excluded from persistence.
	Notifications []string

	clock    func() time.Time
	onChange func()
	profiles map[types.Yuga]types.YugaProfile
}

// New creates a store with a fresh world in the Satya age.
// A nil clock defaults to time.Now.
func New(clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		World:    initialWorld(),
		Settings: DefaultSettings(),
		clock:    clock,
		profiles: builtinProfiles(),
	}
}

// SetOnChange registers a callback invoked after every mutation.
// Used to persist the snapshot; failures there must not propagate back.
func (s *Store) SetOnChange(fn func()) {
	s.onChange = fn
}

// SetYugaProfiles replaces the built-in environment lookup table with
// content-defined profiles. Missing ages keep their built-in entries.
func (s *Store) SetYugaProfiles(profiles map[types.Yuga]types.YugaProfile) {
	for yuga, p := range profiles {
		s.profiles[yuga] = p
	}
}

// Profile returns the profile for a world age.
func (s *Store) Profile(yuga types.Yuga) types.YugaProfile {
	return s.profiles[yuga]
}

// DefaultSettings returns the initial game settings.
func DefaultSettings() types.GameSettings {
	return types.GameSettings{
		Difficulty:    "beginner",
		Notifications: true,
		SoundEnabled:  true,
		AutoSave:      true,
		Language:      "en",
	}
}

// InitializeAvatar creates the avatar. The yoga path is immutable after
// creation. Gunas start at 33/33/34, virtues all at 10.
func (s *Store) InitializeAvatar(name string, path types.YogaPath) *types.Avatar {
	now := s.clock()
	avatar := &types.Avatar{
		ID:          fmt.Sprintf("avatar_%d", now.UnixMilli()),
		Name:        name,
		Level:       1,
		Incarnation: 1,
		Appearance: types.Appearance{
			Form:        "human",
			Aura:        "dim",
			Accessories: []string{},
			Colors: types.AppearanceColors{
				Primary:   "#f6b871",
				Secondary: "#fdecd4",
				Aura:      "#ed7611",
			},
		},
		Stats: types.Stats{
			Gunas: types.GunaBalance{Sattva: 33, Rajas: 33, Tamas: 34},
			Virtues: types.VirtueTree{
				Compassion: 10, Wisdom: 10, Courage: 10, Temperance: 10,
				Justice: 10, Devotion: 10, Detachment: 10, Truthfulness: 10,
			},
			YogaPath: path,
		},
		CurrentLife: types.LifeCycle{
			ID: fmt.Sprintf("life_%d", now.UnixMilli()),
		},
		PastLives: []types.LifeCycle{},
	}
	s.Avatar = avatar
	s.touch()
	return avatar
}

// UpdateKarma applies a karma action: total moves by the signed change,
// the matching accumulator grows by its magnitude (accumulators never
// decrease), and the action is prepended to the recent window.
func (s *Store) UpdateKarma(action types.KarmaAction) {
	if s.Avatar == nil {
		return
	}

	karma := &s.Avatar.Stats.Karma
	karma.Total += action.KarmaChange
	if action.KarmaChange > 0 {
		karma.Positive += action.KarmaChange
	} else if action.KarmaChange < 0 {
		karma.Negative += -action.KarmaChange
	}

	recent := append([]types.KarmaAction{action}, karma.Recent...)
	if len(recent) > recentCap {
		recent = recent[:recentCap]
	}
	karma.Recent = recent

	s.Dispatch(types.KarmaChanged{Change: action.KarmaChange, Reason: action.Action})
	s.touch()
}

// UpdateGunas adds the partial delta, clamps each axis to [0,100], then
// renormalizes the three to sum to exactly 100. Sattva and rajas are
// rounded proportionally; tamas absorbs the rounding remainder
// (tamas = 100 - sattva - rajas). The order matters for exact parity.
func (s *Store) UpdateGunas(delta types.GunaDelta) {
	if s.Avatar == nil {
		return
	}

	cur := s.Avatar.Stats.Gunas
	sattva := clampF(float64(cur.Sattva)+delta.Sattva, 0, 100)
	rajas := clampF(float64(cur.Rajas)+delta.Rajas, 0, 100)
	tamas := clampF(float64(cur.Tamas)+delta.Tamas, 0, 100)

	total := sattva + rajas + tamas
	if total > 0 {
		si := roundHalfUp(sattva / total * 100)
		ri := roundHalfUp(rajas / total * 100)
		s.Avatar.Stats.Gunas = types.GunaBalance{
			Sattva: si,
			Rajas:  ri,
			Tamas:  100 - si - ri,
		}
	}
	s.touch()
}

// UpdateVirtues adds each provided component independently and clamps it
// to [0,100]. No cross-virtue normalization.
func (s *Store) UpdateVirtues(delta types.VirtueDelta) {
	if s.Avatar == nil {
		return
	}

	v := &s.Avatar.Stats.Virtues
	v.Compassion = addVirtue(v.Compassion, delta.Compassion)
	v.Wisdom = addVirtue(v.Wisdom, delta.Wisdom)
	v.Courage = addVirtue(v.Courage, delta.Courage)
	v.Temperance = addVirtue(v.Temperance, delta.Temperance)
	v.Justice = addVirtue(v.Justice, delta.Justice)
	v.Devotion = addVirtue(v.Devotion, delta.Devotion)
	v.Detachment = addVirtue(v.Detachment, delta.Detachment)
	v.Truthfulness = addVirtue(v.Truthfulness, delta.Truthfulness)
	s.touch()
}

// TransitionYuga moves the world to a new age. A self-transition is a
// strict no-op: no environment change, no event. Otherwise the entire
// environment block is overwritten from the age's fixed profile,
// discarding any accumulated drift.
func (s *Store) TransitionYuga(newYuga types.Yuga) {
	if s.World.CurrentYuga == newYuga {
		return
	}

	from := s.World.CurrentYuga
	s.World.CurrentYuga = newYuga
	s.World.Environment = s.profiles[newYuga].Environment

	s.Dispatch(types.YugaTransition{From: from, To: newYuga})
	s.touch()
}

// UpdateCollectiveKarma accrues collective karma and rederives the four
// environment scores from it. Colors are untouched; the next yuga
// transition overwrites the drift entirely.
func (s *Store) UpdateCollectiveKarma(delta int) {
	s.World.CollectiveKarma += delta
	scores := scoring.WorldImpact(s.World.CollectiveKarma)
	s.World.Environment.Harmony = scores.Harmony
	s.World.Environment.Prosperity = scores.Prosperity
	s.World.Environment.Spirituality = scores.Spirituality
	s.World.Environment.Conflict = scores.Conflict
	s.touch()
}

// AddJournalEntry assigns a fresh id and prepends the entry.
// Entries are never mutated after creation.
func (s *Store) AddJournalEntry(entry types.JournalEntry) types.JournalEntry {
	entry.ID = fmt.Sprintf("journal_%d", s.clock().UnixMilli())
	s.Journal = append([]types.JournalEntry{entry}, s.Journal...)
	s.touch()
	return entry
}

// CompleteMeditation appends the session and awards its sattva reward.
// One call, two mutations: the guna update cascades atomically from the
// caller's perspective.
func (s *Store) CompleteMeditation(session types.MeditationSession) {
	s.Meditations = append([]types.MeditationSession{session}, s.Meditations...)
	s.UpdateGunas(types.GunaDelta{Sattva: float64(session.Rewards.Sattva)})
	s.touch()
}

// Reincarnate archives the current life into past lives and begins a new
// incarnation carrying the avatar's accumulated stats forward.
func (s *Store) Reincarnate() {
	if s.Avatar == nil {
		return
	}

	a := s.Avatar
	a.CurrentLife.EndKarma = a.Stats.Karma.Total
	a.PastLives = append(a.PastLives, a.CurrentLife)

	newLife := types.LifeCycle{
		ID:         fmt.Sprintf("life_%d", s.clock().UnixMilli()),
		StartKarma: a.Stats.Karma.Total,
	}
	a.CurrentLife = newLife
	a.Incarnation++

	s.Dispatch(types.Reincarnation{NewLife: newLife})
	s.touch()
}

// AddNotification prepends a message to the capped transient queue.
func (s *Store) AddNotification(message string) {
	s.Notifications = append([]string{message}, s.Notifications...)
	if len(s.Notifications) > notifyCap {
		s.Notifications = s.Notifications[:notifyCap]
	}
}

// ClearNotifications empties the transient queue.
func (s *Store) ClearNotifications() {
	s.Notifications = nil
}

// Dispatch routes an event through the notification channel. The switch is
// exhaustive over the sealed Event union; the five unhandled variants are
// intentional placeholders, documented no-ops rather than errors.
func (s *Store) Dispatch(event types.Event) {
	switch e := event.(type) {
	case types.KarmaChanged:
		direction := "increased"
		amount := e.Change
		if e.Change < 0 {
			direction = "decreased"
			amount = -e.Change
		}
		s.AddNotification(fmt.Sprintf("Karma %s by %d", direction, amount))

	case types.YugaTransition:
		s.AddNotification(fmt.Sprintf(
			"The world has transitioned from %s Yuga to %s Yuga", e.From, e.To))

	case types.GunaShifted:
	case types.VirtueGained:
	case types.QuestCompleted:
	case types.Reincarnation:
	case types.MilestoneAchieved:
	}
}

// KarmaLevel classifies total karma into the five-way bucket.
func (s *Store) KarmaLevel() types.KarmaLevel {
	if s.Avatar == nil {
		return types.KarmaNeutral
	}
	karma := s.Avatar.Stats.Karma.Total
	switch {
	case karma >= 500:
		return types.KarmaVeryPositive
	case karma >= 100:
		return types.KarmaPositive
	case karma <= -500:
		return types.KarmaVeryNegative
	case karma <= -100:
		return types.KarmaNegative
	default:
		return types.KarmaNeutral
	}
}

// DominantGuna returns the largest guna axis. Ties break toward sattva,
// then rajas: sattva wins any tie it is part of.
func (s *Store) DominantGuna() types.Guna {
	if s.Avatar == nil {
		return types.GunaSattva
	}
	g := s.Avatar.Stats.Gunas
	if g.Sattva >= g.Rajas && g.Sattva >= g.Tamas {
		return types.GunaSattva
	}
	if g.Rajas >= g.Tamas {
		return types.GunaRajas
	}
	return types.GunaTamas
}

// SpiritualLevel recomputes the derived spiritual level.
func (s *Store) SpiritualLevel() int {
	if s.Avatar == nil {
		return 1
	}
	return scoring.SpiritualLevel(s.Avatar.Stats)
}

// Now returns the store's current time. Exposed so callers building
// timestamped records share the injected clock.
func (s *Store) Now() time.Time {
	return s.clock()
}

func (s *Store) touch() {
	if s.onChange != nil {
		s.onChange()
	}
}

func addVirtue(current int, delta float64) int {
	if delta == 0 {
		return current
	}
	return roundHalfUp(clampF(float64(current)+delta, 0, 100))
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundHalfUp rounds to the nearest integer with ties toward +inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func initialWorld() types.WorldState {
	return types.WorldState{
		CurrentYuga: types.YugaSatya,
		Environment: builtinProfiles()[types.YugaSatya].Environment,
	}
}
