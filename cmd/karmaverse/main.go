// KarmaVerse is a deterministic, content-driven engine for a game of
// karma, dharma, and spiritual growth across the four yugas.
// Usage: karmaverse [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [content_directory]
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sanat/karmaverse/cli"
	"github.com/sanat/karmaverse/config"
	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/engine/save"
	"github.com/sanat/karmaverse/engine/store"
	"github.com/sanat/karmaverse/guide"
	"github.com/sanat/karmaverse/loader"
	"github.com/sanat/karmaverse/tui"
	"github.com/sanat/karmaverse/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var contentDir string
	var scriptFile string
	seed := time.Now().UnixNano()

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("karmaverse %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid seed %q\n", args[i])
				os.Exit(1)
			}
			seed = n
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	if contentDir == "" {
		contentDir = "content"
	}

	// Load and compile Lua content.
	defs, err := loader.Load(contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	st := store.New(nil)

	// Settings file, then any saved world on top of it.
	cfgPath, cfgErr := config.DefaultPath()
	if cfgErr == nil {
		if settings, err := config.Load(cfgPath); err == nil {
			st.Settings = settings
		}
	}

	eng := engine.New(defs, st, seed)

	if sd := loadAutosave(); sd != nil {
		save.Apply(st, sd)
		eng.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	}

	if st.Settings.AutoSave {
		st.SetOnChange(func() {
			writeAutosave(st, eng)
		})
	}

	g := guide.New(guide.LoadConfigFromEnv(), defs.Scriptures, eng.RNG)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, g)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng, g)
		c.Trace = trace
		c.Run()
		return
	}

	// The TUI needs an avatar before it starts.
	if st.Avatar == nil {
		if !promptAvatar(st) {
			return
		}
	}

	if err := tui.Run(eng, g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// autosavePath returns the location of the rolling snapshot, or "" when
// the home directory cannot be resolved.
func autosavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".karmaverse", "autosave.json")
}

func loadAutosave() *save.SaveData {
	path := autosavePath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	sd, err := save.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring corrupt autosave: %v\n", err)
		return nil
	}
	return sd
}

// writeAutosave persists the current state. Persistence failures never
// interrupt play.
func writeAutosave(st *store.Store, eng *engine.Engine) {
	path := autosavePath()
	if path == "" {
		return
	}
	data, err := save.Save(st, eng.RNG.Seed(), eng.RNG.Position())
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// promptAvatar runs a minimal avatar creation dialog on stdin before the
// alt-screen TUI takes over. Returns false on EOF.
func promptAvatar(st *store.Store) bool {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("What is your name, seeker? ")
	if !scanner.Scan() {
		return false
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		name = "Seeker"
	}

	for {
		fmt.Print("Choose your path (karma, bhakti, jnana, raja): ")
		if !scanner.Scan() {
			return false
		}
		switch path := types.YogaPath(strings.ToLower(strings.TrimSpace(scanner.Text()))); path {
		case types.PathKarma, types.PathBhakti, types.PathJnana, types.PathRaja:
			st.InitializeAvatar(name, path)
			return true
		default:
			fmt.Println("That is not one of the four paths.")
		}
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
