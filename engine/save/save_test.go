package save

import (
	"reflect"
	"testing"
	"time"

	"github.com/sanat/karmaverse/engine/store"
	"github.com/sanat/karmaverse/types"
)

func populatedStore() *store.Store {
	now := time.Unix(1700000000, 0)
	s := store.New(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	s.InitializeAvatar("Mira", types.PathBhakti)
	s.UpdateKarma(types.KarmaAction{ID: "a1", Action: "help", KarmaChange: 23})
	s.UpdateGunas(types.GunaDelta{Sattva: 7.5})
	s.AddJournalEntry(types.JournalEntry{
		Prompt: "What did you release today?", Reflection: "attachment",
		Mood: types.MoodPeaceful,
	})
	s.CompleteMeditation(types.MeditationSession{
		ID: "m1", Practice: "breathing", Duration: 10, Difficulty: 3,
		Rewards: types.MeditationReward{Sattva: 8, Focus: 10, Peace: 12},
	})
	s.TransitionYuga(types.YugaTreta)
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := populatedStore()

	data, err := Save(s, 42, 17)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if sd.Version != Version {
		t.Errorf("Version = %q, want %q", sd.Version, Version)
	}
	if sd.RNGSeed != 42 || sd.RNGPosition != 17 {
		t.Errorf("rng = seed %d pos %d, want 42/17", sd.RNGSeed, sd.RNGPosition)
	}
	if !reflect.DeepEqual(sd.Avatar, s.Avatar) {
		t.Errorf("avatar round-trip mismatch:\n got %+v\nwant %+v", sd.Avatar, s.Avatar)
	}
	if !reflect.DeepEqual(sd.WorldState, s.World) {
		t.Errorf("world round-trip mismatch:\n got %+v\nwant %+v", sd.WorldState, s.World)
	}
	if !reflect.DeepEqual(sd.JournalEntries, s.Journal) {
		t.Errorf("journal round-trip mismatch")
	}
	if !reflect.DeepEqual(sd.CompletedMeditations, s.Meditations) {
		t.Errorf("meditations round-trip mismatch")
	}
	if sd.Settings != s.Settings {
		t.Errorf("settings = %+v, want %+v", sd.Settings, s.Settings)
	}
}

func TestApply_RestoresStore(t *testing.T) {
	src := populatedStore()
	data, err := Save(src, 42, 17)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	dst := store.New(nil)
	Apply(dst, sd)

	if dst.Avatar == nil || dst.Avatar.Name != "Mira" {
		t.Fatalf("avatar not restored: %+v", dst.Avatar)
	}
	if dst.Avatar.Stats.Karma.Total != 23 {
		t.Errorf("karma total = %d, want 23", dst.Avatar.Stats.Karma.Total)
	}
	if dst.World.CurrentYuga != types.YugaTreta {
		t.Errorf("yuga = %q, want treta", dst.World.CurrentYuga)
	}
	if len(dst.Journal) != 1 || len(dst.Meditations) != 1 {
		t.Errorf("journal/meditations = %d/%d entries, want 1/1",
			len(dst.Journal), len(dst.Meditations))
	}
}

func TestApply_DropsNotifications(t *testing.T) {
	src := populatedStore()
	if len(src.Notifications) == 0 {
		t.Fatal("fixture should have pending notifications")
	}

	data, _ := Save(src, 1, 0)
	sd, _ := Load(data)

	dst := store.New(nil)
	dst.AddNotification("stale")
	Apply(dst, sd)

	if len(dst.Notifications) != 0 {
		t.Errorf("notifications must not survive load, got %v", dst.Notifications)
	}
}

func TestLoad_NormalizesNilSlices(t *testing.T) {
	sd, err := Load([]byte(`{"version":"1","avatar":{"Name":"Solo"}}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if sd.JournalEntries == nil {
		t.Error("JournalEntries should be normalized to empty slice")
	}
	if sd.CompletedMeditations == nil {
		t.Error("CompletedMeditations should be normalized to empty slice")
	}
	if sd.Avatar.PastLives == nil {
		t.Error("Avatar.PastLives should be normalized to empty slice")
	}
	if sd.Avatar.Stats.Karma.Recent == nil {
		t.Error("Karma.Recent should be normalized to empty slice")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	if _, err := Load([]byte(`{"version":`)); err == nil {
		t.Error("Load() should fail on malformed JSON")
	}
}
