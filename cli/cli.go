// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the KarmaVerse engine.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/engine/save"
	"github.com/sanat/karmaverse/guide"
	"github.com/sanat/karmaverse/types"
)

// CLI handles terminal interaction with the seeker.
type CLI struct {
	Engine    *engine.Engine
	Guide     *guide.Guide
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastPrompt string // journal prompt shown by the bare `journal` verb
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, g *guide.Guide) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".karmaverse", "saves")
	return &CLI{
		Engine:  eng,
		Guide:   g,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop. It shows the intro, creates the avatar if
// none exists, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Engine.Defs.World.Intro != "" {
		c.printLine(c.Engine.Defs.World.Intro)
		c.printLine("")
	}

	scanner := bufio.NewScanner(c.In)

	if c.Engine.Store.Avatar == nil {
		if !c.createAvatar(scanner) {
			return
		}
	}

	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		c.dispatch(input)
	}
}

// createAvatar runs the interactive avatar creation flow. Returns false
// if input ended before creation finished.
func (c *CLI) createAvatar(scanner *bufio.Scanner) bool {
	c.printLine("What is your name, seeker?")
	c.print("> ")
	if !scanner.Scan() {
		return false
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		name = "Seeker"
	}

	var path types.YogaPath
	for path == "" {
		c.printLine("Choose your path: karma (action), bhakti (devotion), jnana (knowledge), raja (meditation)")
		c.print("> ")
		if !scanner.Scan() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "karma":
			path = types.PathKarma
		case "bhakti":
			path = types.PathBhakti
		case "jnana":
			path = types.PathJnana
		case "raja":
			path = types.PathRaja
		default:
			c.printLine("That is not one of the four paths.")
		}
	}

	avatar := c.Engine.Store.InitializeAvatar(name, path)
	c.printLine(fmt.Sprintf("Welcome, %s. You walk the path of %s yoga.", avatar.Name, path))
	c.printLine("")
	return true
}

// dispatch routes a game verb.
func (c *CLI) dispatch(input string) {
	verb, rest := splitVerb(input)

	switch verb {
	case "act":
		c.cmdAct(rest)
	case "meditate":
		c.cmdMeditate(rest)
	case "journal":
		c.cmdJournal(rest)
	case "quests":
		c.cmdQuests()
	case "complete":
		c.cmdComplete(rest)
	case "dilemma":
		c.cmdDilemma(rest)
	case "world":
		c.cmdWorld()
	case "guide":
		c.cmdGuide(rest)
	case "stats":
		c.cmdStats()
	case "reincarnate":
		c.cmdReincarnate()
	default:
		c.printLine("The sages do not recognize that. Type /help for guidance.")
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Om shanti. Farewell.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/advance":
		next := c.Engine.AdvanceYuga()
		name := c.Engine.Store.Profile(next).Name
		if name == "" {
			name = string(next)
		}
		c.printSystem(fmt.Sprintf("The wheel turns. The world enters the %s.", name))
		c.drainNotifications()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdAct(rest string) {
	if rest == "" {
		c.printLine("Describe your deed: act <what you do> [@ <where or when>]")
		return
	}

	action, actionContext := rest, ""
	if i := strings.Index(rest, "@"); i >= 0 {
		action = strings.TrimSpace(rest[:i])
		actionContext = strings.TrimSpace(rest[i+1:])
	}

	record, err := c.Engine.Act(action, actionContext)
	if err != nil {
		c.printSystem(err.Error())
		return
	}

	if record.KarmaChange >= 0 {
		c.printLine(fmt.Sprintf("Your deed ripples outward. Karma %+d.", record.KarmaChange))
	} else {
		c.printLine(fmt.Sprintf("Your deed weighs on you. Karma %+d.", record.KarmaChange))
	}
	c.drainNotifications()
	if c.Trace {
		c.printTrace()
	}
}

func (c *CLI) cmdMeditate(rest string) {
	if rest == "" {
		c.printLine("Practices:")
		for _, p := range c.Engine.Defs.Practices {
			c.printLine(fmt.Sprintf("  %-14s %s", p.ID, p.Name))
		}
		c.printLine(fmt.Sprintf("Durations (minutes): %v", engine.Durations))
		c.printLine("Usage: meditate <practice> <minutes>")
		return
	}

	parts := strings.Fields(rest)
	if len(parts) != 2 {
		c.printLine("Usage: meditate <practice> <minutes>")
		return
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		c.printLine("Usage: meditate <practice> <minutes>")
		return
	}

	session, err := c.Engine.Meditate(parts[0], minutes)
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine(fmt.Sprintf("You sit in stillness for %d minutes (difficulty %d).",
		session.Duration, session.Difficulty))
	c.drainNotifications()
	if c.Trace {
		c.printTrace()
	}
}

func (c *CLI) cmdJournal(rest string) {
	if rest == "" {
		c.lastPrompt = c.Engine.RandomPrompt()
		c.printLine("Reflect: " + c.lastPrompt)
		c.printLine("Usage: journal <mood> <your reflection>")
		c.printLine("Moods: peaceful, conflicted, inspired, troubled, joyful")
		return
	}

	mood, reflection := splitVerb(rest)
	if !validMood(types.Mood(mood)) || reflection == "" {
		c.printLine("Usage: journal <mood> <your reflection>")
		return
	}

	entry, err := c.Engine.Journal(c.lastPrompt, reflection, types.Mood(mood), nil)
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine(fmt.Sprintf("Recorded in your journal (%s).", entry.Mood))
	c.lastPrompt = ""
}

func (c *CLI) cmdQuests() {
	if len(c.Engine.Defs.Quests) == 0 {
		c.printLine("No quests await.")
		return
	}
	for _, q := range c.Engine.Defs.Quests {
		status := "open"
		switch {
		case c.Engine.CompletedQuests[q.ID]:
			status = "done"
		case !c.Engine.MeetsRequirements(q):
			status = "locked"
		}
		c.printLine(fmt.Sprintf("  [%-6s] %-20s %s (%s, +%d karma)",
			status, q.ID, q.Title, q.Difficulty, q.Rewards.Karma))
	}
}

func (c *CLI) cmdComplete(rest string) {
	if rest == "" {
		c.printLine("Usage: complete <quest id>")
		return
	}

	quest, err := c.Engine.CompleteQuest(strings.Fields(rest)[0])
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine(fmt.Sprintf("%s is fulfilled.", quest.Title))
	c.drainNotifications()
	if c.Trace {
		c.printTrace()
	}
}

func (c *CLI) cmdDilemma(rest string) {
	parts := strings.Fields(rest)

	switch len(parts) {
	case 0:
		if len(c.Engine.Defs.Dilemmas) == 0 {
			c.printLine("No dilemmas trouble the land.")
			return
		}
		for _, d := range c.Engine.Defs.Dilemmas {
			c.printLine(fmt.Sprintf("  %-20s %s", d.ID, d.Title))
		}
		c.printLine("Usage: dilemma <id> to read it, dilemma <id> <option> to choose.")

	case 1:
		dilemma, ok := c.Engine.Defs.DilemmaByID(parts[0])
		if !ok {
			c.printSystem(fmt.Sprintf("unknown dilemma %q", parts[0]))
			return
		}
		c.printLine(dilemma.Title)
		c.printLine(dilemma.Scenario)
		for _, opt := range dilemma.Options {
			c.printLine(fmt.Sprintf("  %-14s %s", opt.ID, opt.Text))
		}

	default:
		option, err := c.Engine.ResolveDilemma(parts[0], parts[1])
		if err != nil {
			c.printSystem(err.Error())
			return
		}
		if option.Description != "" {
			c.printLine(option.Description)
		}
		if option.ScriptureReference != "" {
			for _, q := range c.Engine.Defs.Scriptures {
				if q.ID == option.ScriptureReference {
					c.printLine(fmt.Sprintf("%q — %s", q.Translation, q.Source))
				}
			}
		}
		c.drainNotifications()
		if c.Trace {
			c.printTrace()
		}
	}
}

func (c *CLI) cmdWorld() {
	world := c.Engine.Store.World
	profile := c.Engine.Store.Profile(world.CurrentYuga)

	name := profile.Name
	if name == "" {
		name = string(world.CurrentYuga)
	}
	c.printLine(fmt.Sprintf("The world abides in the %s.", name))
	if profile.Description != "" {
		c.printLine(profile.Description)
	}
	env := world.Environment
	c.printLine(fmt.Sprintf("Harmony %d  Prosperity %d  Spirituality %d  Conflict %d",
		env.Harmony, env.Prosperity, env.Spirituality, env.Conflict))
	c.printLine(fmt.Sprintf("Collective karma: %d", world.CollectiveKarma))
}

func (c *CLI) cmdGuide(rest string) {
	if rest == "" {
		c.printLine("Usage: guide <your question>")
		return
	}
	if c.Guide == nil {
		c.printSystem("No guide is present.")
		return
	}

	resp := c.Guide.Guidance(context.Background(), rest, c.Engine.Store.Avatar)
	c.printLine(resp.Message)
	for _, point := range resp.GuidancePoints {
		c.printLine("  - " + point)
	}
	if len(resp.SuggestedActions) > 0 {
		c.printLine("Suggested practice:")
		for _, a := range resp.SuggestedActions {
			c.printLine("  - " + a)
		}
	}
	for _, q := range resp.ScriptureReferences {
		c.printLine(fmt.Sprintf("%q — %s", q.Translation, q.Source))
	}
}

func (c *CLI) cmdStats() {
	avatar := c.Engine.Store.Avatar
	if avatar == nil {
		c.printSystem("No avatar present.")
		return
	}
	stats := avatar.Stats

	c.printLine(fmt.Sprintf("%s — %s yoga, incarnation %d, level %d",
		avatar.Name, stats.YogaPath, avatar.Incarnation, avatar.Level))
	c.printLine(fmt.Sprintf("Karma: %d (%s)  +%d / -%d",
		stats.Karma.Total, c.Engine.Store.KarmaLevel(),
		stats.Karma.Positive, stats.Karma.Negative))
	c.printLine(fmt.Sprintf("Gunas: sattva %d  rajas %d  tamas %d (dominant: %s)",
		stats.Gunas.Sattva, stats.Gunas.Rajas, stats.Gunas.Tamas,
		c.Engine.Store.DominantGuna()))
	v := stats.Virtues
	c.printLine(fmt.Sprintf("Virtues: compassion %d  wisdom %d  courage %d  temperance %d",
		v.Compassion, v.Wisdom, v.Courage, v.Temperance))
	c.printLine(fmt.Sprintf("         justice %d  devotion %d  detachment %d  truthfulness %d",
		v.Justice, v.Devotion, v.Detachment, v.Truthfulness))
	c.printLine(fmt.Sprintf("Spiritual level: %d", c.Engine.Store.SpiritualLevel()))
	c.printLine(fmt.Sprintf("Journal entries: %d  Meditations: %d",
		len(c.Engine.Store.Journal), len(c.Engine.Store.Meditations)))
}

func (c *CLI) cmdReincarnate() {
	if !c.Engine.CheckReincarnation() {
		c.printLine("Your attainment does not yet call you back to the wheel.")
		return
	}
	c.Engine.Reincarnate()
	avatar := c.Engine.Store.Avatar
	c.printLine(fmt.Sprintf("The wheel turns. You begin incarnation %d.", avatar.Incarnation))
	c.drainNotifications()
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(c.Engine.Store, c.Engine.RNG.Seed(), c.Engine.RNG.Position())
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	save.Apply(c.Engine.Store, sd)
	c.Engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	c.printSystem(fmt.Sprintf("Game loaded from %s.", name))
	c.cmdStats()
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /advance      — Advance the world to the next yuga",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  act <deed> [@ <context>]     — Perform a deed and reap its karma",
		"  meditate [<practice> <min>]  — Sit in meditation",
		"  journal [<mood> <text>]      — Write a reflection",
		"  quests                       — List quests and their status",
		"  complete <id>                — Complete an open quest",
		"  dilemma [<id> [<option>]]    — Face a moral dilemma",
		"  world                        — Describe the current age",
		"  guide <question>             — Ask the sage for guidance",
		"  stats                        — Show your avatar",
		"  reincarnate                  — Return to the wheel, if ready",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	st := c.Engine.Store
	c.printSystem(fmt.Sprintf("Yuga: %s", st.World.CurrentYuga))
	c.printSystem(fmt.Sprintf("Collective karma: %d", st.World.CollectiveKarma))
	if st.Avatar != nil {
		c.printSystem(fmt.Sprintf("Karma: %+v", st.Avatar.Stats.Karma.Total))
		c.printSystem(fmt.Sprintf("Gunas: %+v", st.Avatar.Stats.Gunas))
		c.printSystem(fmt.Sprintf("Virtues: %+v", st.Avatar.Stats.Virtues))
		c.printSystem(fmt.Sprintf("Recent actions: %d", len(st.Avatar.Stats.Karma.Recent)))
	}
	c.printSystem(fmt.Sprintf("RNG position: %d", c.Engine.RNG.Position()))
}

// drainNotifications prints and clears the store's notification queue.
func (c *CLI) drainNotifications() {
	for i := len(c.Engine.Store.Notifications) - 1; i >= 0; i-- {
		c.printSystem(c.Engine.Store.Notifications[i])
	}
	c.Engine.Store.ClearNotifications()
}

func (c *CLI) printTrace() {
	st := c.Engine.Store
	if st.Avatar != nil {
		c.printSystem(fmt.Sprintf("[trace] karma=%d gunas=%+v",
			st.Avatar.Stats.Karma.Total, st.Avatar.Stats.Gunas))
	}
	c.printSystem(fmt.Sprintf("[trace] rng position=%d", c.Engine.RNG.Position()))
}

func splitVerb(input string) (string, string) {
	parts := strings.SplitN(input, " ", 2)
	verb := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return verb, ""
	}
	return verb, strings.TrimSpace(parts[1])
}

func validMood(m types.Mood) bool {
	switch m {
	case types.MoodPeaceful, types.MoodConflicted, types.MoodInspired,
		types.MoodTroubled, types.MoodJoyful:
		return true
	}
	return false
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
