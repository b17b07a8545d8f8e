package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sanat/karmaverse/types"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Difficulty != "beginner" {
		t.Errorf("Difficulty = %q, want beginner", settings.Difficulty)
	}
	if !settings.AutoSave {
		t.Error("AutoSave should default to true")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")

	want := types.GameSettings{
		Difficulty:    "sage",
		Notifications: false,
		SoundEnabled:  true,
		AutoSave:      false,
		Language:      "hi",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: advanced\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Difficulty != "advanced" {
		t.Errorf("Difficulty = %q, want advanced", settings.Difficulty)
	}
	if settings.Language != "en" {
		t.Errorf("Language = %q, want default en", settings.Language)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
