// Package types defines the shared data structures for the KarmaVerse engine.
// This package contains only type definitions — no logic, no methods.
package types

import "time"

// YogaPath is one of four immutable character archetypes chosen at creation.
type YogaPath string

const (
	PathKarma  YogaPath = "karma"
	PathBhakti YogaPath = "bhakti"
	PathJnana  YogaPath = "jnana"
	PathRaja   YogaPath = "raja"
)

// Yuga is one of four fixed world ages in a strict cycle.
type Yuga string

const (
	YugaSatya   Yuga = "satya"
	YugaTreta   Yuga = "treta"
	YugaDvapara Yuga = "dvapara"
	YugaKali    Yuga = "kali"
)

// Guna names the three trait axes.
type Guna string

const (
	GunaSattva Guna = "sattva"
	GunaRajas  Guna = "rajas"
	GunaTamas  Guna = "tamas"
)

// Virtue names one of the eight independent trait scores.
type Virtue string

const (
	VirtueCompassion   Virtue = "compassion"
	VirtueWisdom       Virtue = "wisdom"
	VirtueCourage      Virtue = "courage"
	VirtueTemperance   Virtue = "temperance"
	VirtueJustice      Virtue = "justice"
	VirtueDevotion     Virtue = "devotion"
	VirtueDetachment   Virtue = "detachment"
	VirtueTruthfulness Virtue = "truthfulness"
)

// Mood is the feeling recorded with a journal entry.
type Mood string

const (
	MoodPeaceful   Mood = "peaceful"
	MoodConflicted Mood = "conflicted"
	MoodInspired   Mood = "inspired"
	MoodTroubled   Mood = "troubled"
	MoodJoyful     Mood = "joyful"
)

// KarmaLevel is the five-way classification of total karma.
type KarmaLevel string

const (
	KarmaVeryNegative KarmaLevel = "very_negative"
	KarmaNegative     KarmaLevel = "negative"
	KarmaNeutral      KarmaLevel = "neutral"
	KarmaPositive     KarmaLevel = "positive"
	KarmaVeryPositive KarmaLevel = "very_positive"
)

// Avatar is the player's persistent character.
type Avatar struct {
	ID          string
	Name        string
	Level       int
	Incarnation int
	Appearance  Appearance
	Stats       Stats
	CurrentLife LifeCycle
	PastLives   []LifeCycle
}

// Appearance is the avatar's visual presentation.
type Appearance struct {
	Form        string
	Aura        string
	Accessories []string
	Colors      AppearanceColors
}

// AppearanceColors holds the avatar's color theme.
type AppearanceColors struct {
	Primary   string
	Secondary string
	Aura      string
}

// Stats groups the avatar's scored attributes.
type Stats struct {
	Karma    KarmaScore
	Gunas    GunaBalance
	Virtues  VirtueTree
	YogaPath YogaPath
}

// KarmaScore tracks cumulative karma. Positive and Negative accumulate
// monotonically; Recent holds the last 10 actions, newest first.
type KarmaScore struct {
	Total    int
	Positive int
	Negative int
	Recent   []KarmaAction
}

// KarmaAction is an immutable log entry for a single scored action.
type KarmaAction struct {
	ID          string
	Action      string
	KarmaChange int
	GunaEffect  GunaDelta
	Timestamp   time.Time
	Context     string
}

// GunaBalance holds the three trait axes. Invariant: always sums to
// exactly 100 after any store update.
type GunaBalance struct {
	Sattva int
	Rajas  int
	Tamas  int
}

// GunaDelta is a partial guna change. Zero fields mean "no change".
type GunaDelta struct {
	Sattva float64
	Rajas  float64
	Tamas  float64
}

// VirtueTree holds the eight independent virtue scores, each in [0,100].
type VirtueTree struct {
	Compassion   int
	Wisdom       int
	Courage      int
	Temperance   int
	Justice      int
	Devotion     int
	Detachment   int
	Truthfulness int
}

// VirtueDelta is a partial virtue change. Zero fields mean "no change".
type VirtueDelta struct {
	Compassion   float64
	Wisdom       float64
	Courage      float64
	Temperance   float64
	Justice      float64
	Devotion     float64
	Detachment   float64
	Truthfulness float64
}

// LifeCycle records one incarnation from birth to reincarnation.
type LifeCycle struct {
	ID           string
	StartKarma   int
	EndKarma     int
	MajorActions []KarmaAction
	Lessons      []string
	Achievements []string
	Duration     int // elapsed game days
}

// WorldState is the single global world snapshot (not per-avatar).
type WorldState struct {
	CurrentYuga     Yuga
	YugaProgress    int // 0-100
	CollectiveKarma int
	Environment     EnvironmentState
	AvailableQuests []string // quest IDs
}

// EnvironmentState holds the four world percentage scores plus color theme.
type EnvironmentState struct {
	Harmony      int
	Prosperity   int
	Spirituality int
	Conflict     int
	Colors       EnvironmentColors
}

// EnvironmentColors is the world color theme for the current age.
type EnvironmentColors struct {
	Sky        string
	Earth      string
	Water      string
	Vegetation string
}

// EnvironmentScores is the color-free subset derived from collective karma.
type EnvironmentScores struct {
	Harmony      int
	Prosperity   int
	Spirituality int
	Conflict     int
}

// YugaProfile is the fixed environment lookup entry for one world age.
type YugaProfile struct {
	Name            string
	Description     string
	Characteristics []string
	Environment     EnvironmentState
}

// Quest is a content-defined task with stat rewards.
type Quest struct {
	ID            string
	Title         string
	Description   string
	Kind          string // "dharma", "karma", "meditation", "service", "knowledge"
	Difficulty    string // "easy", "medium", "hard", "legendary"
	Rewards       QuestReward
	Requirements  []QuestRequirement
	YogaPathBonus YogaPath // empty = no bonus path
}

// QuestReward is the stat payout for completing a quest.
type QuestReward struct {
	Karma        int
	GunaChanges  GunaDelta
	VirtuePoints VirtueDelta
	Items        []string
}

// QuestRequirement gates a quest on an avatar stat.
type QuestRequirement struct {
	Kind       string // "karma", "virtue", "guna", "level"
	Value      int
	Comparison string // "min", "max", "exact"
}

// Dilemma is a moral scenario with consequence-bearing options.
type Dilemma struct {
	ID              string
	Title           string
	Scenario        string
	Options         []DilemmaOption
	Yuga            Yuga
	YogaPath        YogaPath // empty = any path
	PersonalContext string
}

// DilemmaOption is one choice within a dilemma.
type DilemmaOption struct {
	ID                 string
	Text               string
	Karma              int
	GunaChanges        GunaDelta
	Description        string
	ScriptureReference string
}

// MeditationPractice is a content-defined meditation type.
type MeditationPractice struct {
	ID          string
	Name        string
	Description string
	Benefits    MeditationReward
}

// MeditationReward is the payout of a completed session.
type MeditationReward struct {
	Sattva int
	Focus  int
	Peace  int
}

// MeditationSession is an append-only record of one completed session.
type MeditationSession struct {
	ID         string
	Practice   string // practice ID
	Duration   int    // minutes
	Difficulty int    // derived from duration
	Rewards    MeditationReward
}

// JournalEntry is an append-only reflection record. KarmaContext is a
// snapshot copy of up to 3 recent actions, not a live reference.
type JournalEntry struct {
	ID           string
	Date         time.Time
	Prompt       string
	Reflection   string
	Mood         Mood
	KarmaContext []KarmaAction
	Insights     []string
}

// ScriptureQuote is a read-only content table entry.
type ScriptureQuote struct {
	ID          string
	Text        string
	Source      string
	Translation string
	Context     string
	Situations  []string
}

// Temple is a read-only content table entry for sacred places.
type Temple struct {
	ID           string
	Name         string
	Deity        string
	Location     string
	Significance string
	Yuga         Yuga
}

// Milestone marks a major achievement.
type Milestone struct {
	ID           string
	Title        string
	Description  string
	AchievedAt   time.Time
	Significance string // "minor", "major", "legendary"
	Rewards      QuestReward
}

// GameSettings holds user preferences persisted with the snapshot.
type GameSettings struct {
	Difficulty    string `yaml:"difficulty"`
	Notifications bool   `yaml:"notifications"`
	SoundEnabled  bool   `yaml:"sound_enabled"`
	AutoSave      bool   `yaml:"auto_save"`
	Language      string `yaml:"language"`
}

// Guidance is the response shape of the guidance collaborator.
type Guidance struct {
	Message             string
	GuidancePoints      []string
	ScriptureReferences []ScriptureQuote
	SuggestedActions    []string
}
