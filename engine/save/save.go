// Package save implements JSON serialization and deserialization of the
// persisted snapshot. Notifications and other transient UI state are
// deliberately excluded: only what SaveData names survives a restart.
package save

import (
	"encoding/json"

	"github.com/sanat/karmaverse/engine/store"
	"github.com/sanat/karmaverse/types"
)

// Version identifies the snapshot format.
const Version = "1"

// SaveData is the JSON-serializable snapshot format.
type SaveData struct {
	Version              string                    `json:"version"`
	Avatar               *types.Avatar             `json:"avatar"`
	WorldState           types.WorldState          `json:"world_state"`
	Settings             types.GameSettings        `json:"settings"`
	JournalEntries       []types.JournalEntry      `json:"journal_entries"`
	CompletedMeditations []types.MeditationSession `json:"completed_meditations"`
	RNGSeed              int64                     `json:"rng_seed"`
	RNGPosition          int64                     `json:"rng_position"`
}

// Save serializes the store's persistent subset to JSON bytes.
func Save(s *store.Store, rngSeed, rngPosition int64) ([]byte, error) {
	data := SaveData{
		Version:              Version,
		Avatar:               s.Avatar,
		WorldState:           s.World,
		Settings:             s.Settings,
		JournalEntries:       s.Journal,
		CompletedMeditations: s.Meditations,
		RNGSeed:              rngSeed,
		RNGPosition:          rngPosition,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	// Ensure slices are never nil after load.
	if sd.JournalEntries == nil {
		sd.JournalEntries = []types.JournalEntry{}
	}
	if sd.CompletedMeditations == nil {
		sd.CompletedMeditations = []types.MeditationSession{}
	}
	if sd.Avatar != nil {
		if sd.Avatar.PastLives == nil {
			sd.Avatar.PastLives = []types.LifeCycle{}
		}
		if sd.Avatar.Stats.Karma.Recent == nil {
			sd.Avatar.Stats.Karma.Recent = []types.KarmaAction{}
		}
	}
	return &sd, nil
}

// Apply loads snapshot data onto a store. The notification queue is left
// empty: it is not part of the persistence contract.
func Apply(s *store.Store, sd *SaveData) {
	s.Avatar = sd.Avatar
	s.World = sd.WorldState
	s.Settings = sd.Settings
	s.Journal = sd.JournalEntries
	s.Meditations = sd.CompletedMeditations
	s.Notifications = nil
}
