package types

// Event is the closed set of notifications a store mutation can emit.
// The union is sealed: only the variants below implement it, so a switch
// over all seven cases is exhaustive by construction.
type Event interface {
	isEvent()
}

// KarmaChanged is emitted after every karma mutation.
type KarmaChanged struct {
	Change int
	Reason string
}

// GunaShifted is emitted when a single guna axis moves.
type GunaShifted struct {
	Guna   Guna
	Change int
}

// VirtueGained is emitted when a virtue increases.
type VirtueGained struct {
	Virtue Virtue
	Amount int
}

// QuestCompleted is emitted when a quest's rewards are applied.
type QuestCompleted struct {
	QuestID string
	Rewards QuestReward
}

// YugaTransition is emitted on a world-age change.
type YugaTransition struct {
	From Yuga
	To   Yuga
}

// Reincarnation is emitted when a life is archived and a new one begins.
type Reincarnation struct {
	NewLife LifeCycle
}

// MilestoneAchieved is emitted when a milestone is reached.
type MilestoneAchieved struct {
	Milestone Milestone
}

func (KarmaChanged) isEvent()      {}
func (GunaShifted) isEvent()       {}
func (VirtueGained) isEvent()      {}
func (QuestCompleted) isEvent()    {}
func (YugaTransition) isEvent()    {}
func (Reincarnation) isEvent()     {}
func (MilestoneAchieved) isEvent() {}
