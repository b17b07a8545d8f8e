package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sanat/karmaverse/engine"
	"github.com/sanat/karmaverse/engine/save"
	"github.com/sanat/karmaverse/guide"
	"github.com/sanat/karmaverse/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// meditation tracks an in-progress session countdown. gen is a
// generation token: pending tick messages from a cancelled session
// carry a stale gen and are dropped, so a reset can never complete.
type meditation struct {
	practiceID string
	minutes    int
	remaining  int
	gen        int
}

// Model is the Bubble Tea model for the KarmaVerse TUI.
type Model struct {
	engine   *engine.Engine
	guideSvc *guide.Guide

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	med    *meditation
	medGen int

	width      int
	height     int
	ready      bool
	trace      bool
	quitting   bool
	lastPrompt string
	saveDir    string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// meditationTickMsg advances an active meditation countdown.
type meditationTickMsg struct {
	gen int
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, g *guide.Guide) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:   eng,
		guideSvc: g,
		input:    ti,
		history:  NewHistory(100),
		saveDir:  filepath.Join(home, ".karmaverse", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, g *guide.Guide) error {
	m := New(eng, g)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		world := m.engine.Defs.World
		var lines []string

		header := world.Title
		if world.Version != "" {
			header += " v" + world.Version
		}
		if world.Author != "" {
			header += " by " + world.Author
		}
		lines = append(lines, header, "")

		if world.Intro != "" {
			lines = append(lines, world.Intro, "")
		}

		if avatar := m.engine.Store.Avatar; avatar != nil {
			lines = append(lines, fmt.Sprintf(
				"Welcome back, %s. You walk the path of %s yoga.",
				avatar.Name, avatar.Stats.YogaPath))
		}
		lines = append(lines, "Type /help for guidance.")

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output, ticks).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case meditationTickMsg:
		return m.handleMeditationTick(msg)

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game verbs. meditate may start a countdown, so it returns a cmd.
	verb, rest := splitVerb(input)
	if verb == "meditate" {
		return m.handleMeditate(input, rest)
	}

	output := m.handleGame(verb, rest)
	if m.trace {
		output = append(output, m.formatTrace()...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// handleMeditate starts or resets a meditation countdown. One tick per
// minute of practice, compressed to a second of real time.
func (m Model) handleMeditate(input, rest string) (tea.Model, tea.Cmd) {
	if rest == "" {
		var lines []string
		lines = append(lines, "Practices:")
		for _, p := range m.engine.Defs.Practices {
			lines = append(lines, fmt.Sprintf("  %-14s %s", p.ID, p.Name))
		}
		lines = append(lines, fmt.Sprintf("Durations (minutes): %v", engine.Durations))
		lines = append(lines, "Usage: meditate <practice> <minutes>, meditate stop to end early")
		m = m.appendOutput(gameOutputMsg{input: input, lines: lines})
		return m, nil
	}

	if rest == "stop" {
		if m.med == nil {
			m = m.appendOutput(gameOutputMsg{input: input,
				lines: []string{"You are not meditating."}, isSystem: true})
			return m, nil
		}
		m.med = nil
		m.medGen++
		m = m.appendOutput(gameOutputMsg{input: input,
			lines: []string{"You rise before the session completes. No benefit is gained."}})
		return m, nil
	}

	parts := strings.Fields(rest)
	if len(parts) != 2 {
		m = m.appendOutput(gameOutputMsg{input: input,
			lines: []string{"Usage: meditate <practice> <minutes>"}, isSystem: true})
		return m, nil
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		m = m.appendOutput(gameOutputMsg{input: input,
			lines: []string{"Usage: meditate <practice> <minutes>"}, isSystem: true})
		return m, nil
	}

	practice, ok := m.engine.Defs.PracticeByID(parts[0])
	if !ok {
		m = m.appendOutput(gameOutputMsg{input: input,
			lines: []string{fmt.Sprintf("unknown practice %q", parts[0])}, isSystem: true})
		return m, nil
	}
	if !validDuration(minutes) {
		m = m.appendOutput(gameOutputMsg{input: input,
			lines: []string{fmt.Sprintf("invalid duration %d minutes", minutes)}, isSystem: true})
		return m, nil
	}

	// Starting a new session cancels any active one.
	m.medGen++
	m.med = &meditation{
		practiceID: practice.ID,
		minutes:    minutes,
		remaining:  minutes,
		gen:        m.medGen,
	}
	m = m.appendOutput(gameOutputMsg{input: input,
		lines: []string{fmt.Sprintf("You settle into %s for %d minutes...", practice.Name, minutes)}})
	return m, m.meditationTick(m.medGen)
}

func (m Model) meditationTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return meditationTickMsg{gen: gen}
	})
}

// handleMeditationTick advances the countdown. Stale ticks from a
// cancelled or replaced session are dropped.
func (m Model) handleMeditationTick(msg meditationTickMsg) (tea.Model, tea.Cmd) {
	if m.med == nil || msg.gen != m.med.gen {
		return m, nil
	}

	m.med.remaining--
	if m.med.remaining > 0 {
		m.refreshViewport()
		return m, m.meditationTick(msg.gen)
	}

	session, err := m.engine.Meditate(m.med.practiceID, m.med.minutes)
	m.med = nil
	if err != nil {
		m = m.appendOutput(gameOutputMsg{lines: []string{err.Error()}, isSystem: true})
		return m, nil
	}

	lines := []string{fmt.Sprintf(
		"You sit in stillness for %d minutes (difficulty %d).",
		session.Duration, session.Difficulty)}
	lines = append(lines, m.drainNotifications()...)
	m = m.appendOutput(gameOutputMsg{lines: lines})
	return m, nil
}

// handleGame dispatches all non-meditation game verbs and returns the
// output lines.
func (m *Model) handleGame(verb, rest string) []string {
	switch verb {
	case "act":
		return m.cmdAct(rest)
	case "journal":
		return m.cmdJournal(rest)
	case "quests":
		return m.cmdQuests()
	case "complete":
		return m.cmdComplete(rest)
	case "dilemma":
		return m.cmdDilemma(rest)
	case "world":
		return m.cmdWorld()
	case "guide":
		return m.cmdGuide(rest)
	case "stats":
		return m.cmdStats()
	case "reincarnate":
		return m.cmdReincarnate()
	default:
		return []string{"The sages do not recognize that. Type /help for guidance."}
	}
}

func (m *Model) cmdAct(rest string) []string {
	if rest == "" {
		return []string{"Describe your deed: act <what you do> [@ <where or when>]"}
	}

	action, actionContext := rest, ""
	if i := strings.Index(rest, "@"); i >= 0 {
		action = strings.TrimSpace(rest[:i])
		actionContext = strings.TrimSpace(rest[i+1:])
	}

	record, err := m.engine.Act(action, actionContext)
	if err != nil {
		return []string{err.Error()}
	}

	var lines []string
	if record.KarmaChange >= 0 {
		lines = append(lines, fmt.Sprintf("Your deed ripples outward. Karma %+d.", record.KarmaChange))
	} else {
		lines = append(lines, fmt.Sprintf("Your deed weighs on you. Karma %+d.", record.KarmaChange))
	}
	return append(lines, m.drainNotifications()...)
}

func (m *Model) cmdJournal(rest string) []string {
	if rest == "" {
		m.lastPrompt = m.engine.RandomPrompt()
		return []string{
			"Reflect: " + m.lastPrompt,
			"Usage: journal <mood> <your reflection>",
			"Moods: peaceful, conflicted, inspired, troubled, joyful",
		}
	}

	mood, reflection := splitVerb(rest)
	if !validMood(types.Mood(mood)) || reflection == "" {
		return []string{"Usage: journal <mood> <your reflection>"}
	}

	entry, err := m.engine.Journal(m.lastPrompt, reflection, types.Mood(mood), nil)
	if err != nil {
		return []string{err.Error()}
	}
	m.lastPrompt = ""
	return []string{fmt.Sprintf("Recorded in your journal (%s).", entry.Mood)}
}

func (m *Model) cmdQuests() []string {
	if len(m.engine.Defs.Quests) == 0 {
		return []string{"No quests await."}
	}
	var lines []string
	for _, q := range m.engine.Defs.Quests {
		status := "open"
		switch {
		case m.engine.CompletedQuests[q.ID]:
			status = "done"
		case !m.engine.MeetsRequirements(q):
			status = "locked"
		}
		lines = append(lines, fmt.Sprintf("  [%-6s] %-20s %s (%s, +%d karma)",
			status, q.ID, q.Title, q.Difficulty, q.Rewards.Karma))
	}
	return lines
}

func (m *Model) cmdComplete(rest string) []string {
	if rest == "" {
		return []string{"Usage: complete <quest id>"}
	}

	quest, err := m.engine.CompleteQuest(strings.Fields(rest)[0])
	if err != nil {
		return []string{err.Error()}
	}
	lines := []string{fmt.Sprintf("%s is fulfilled.", quest.Title)}
	return append(lines, m.drainNotifications()...)
}

func (m *Model) cmdDilemma(rest string) []string {
	parts := strings.Fields(rest)

	switch len(parts) {
	case 0:
		if len(m.engine.Defs.Dilemmas) == 0 {
			return []string{"No dilemmas trouble the land."}
		}
		var lines []string
		for _, d := range m.engine.Defs.Dilemmas {
			lines = append(lines, fmt.Sprintf("  %-20s %s", d.ID, d.Title))
		}
		return append(lines, "Usage: dilemma <id> to read it, dilemma <id> <option> to choose.")

	case 1:
		dilemma, ok := m.engine.Defs.DilemmaByID(parts[0])
		if !ok {
			return []string{fmt.Sprintf("unknown dilemma %q", parts[0])}
		}
		lines := []string{dilemma.Title, dilemma.Scenario}
		for _, opt := range dilemma.Options {
			lines = append(lines, fmt.Sprintf("  %-14s %s", opt.ID, opt.Text))
		}
		return lines

	default:
		option, err := m.engine.ResolveDilemma(parts[0], parts[1])
		if err != nil {
			return []string{err.Error()}
		}
		var lines []string
		if option.Description != "" {
			lines = append(lines, option.Description)
		}
		if option.ScriptureReference != "" {
			for _, q := range m.engine.Defs.Scriptures {
				if q.ID == option.ScriptureReference {
					lines = append(lines, fmt.Sprintf("%q — %s", q.Translation, q.Source))
				}
			}
		}
		return append(lines, m.drainNotifications()...)
	}
}

func (m *Model) cmdWorld() []string {
	world := m.engine.Store.World
	profile := m.engine.Store.Profile(world.CurrentYuga)

	name := profile.Name
	if name == "" {
		name = string(world.CurrentYuga)
	}
	lines := []string{fmt.Sprintf("The world abides in the %s.", name)}
	if profile.Description != "" {
		lines = append(lines, profile.Description)
	}
	env := world.Environment
	lines = append(lines,
		fmt.Sprintf("Harmony %d  Prosperity %d  Spirituality %d  Conflict %d",
			env.Harmony, env.Prosperity, env.Spirituality, env.Conflict),
		fmt.Sprintf("Collective karma: %d", world.CollectiveKarma))
	return lines
}

func (m *Model) cmdGuide(rest string) []string {
	if rest == "" {
		return []string{"Usage: guide <your question>"}
	}
	if m.guideSvc == nil {
		return []string{"No guide is present."}
	}

	resp := m.guideSvc.Guidance(context.Background(), rest, m.engine.Store.Avatar)
	lines := []string{resp.Message}
	for _, point := range resp.GuidancePoints {
		lines = append(lines, "  - "+point)
	}
	if len(resp.SuggestedActions) > 0 {
		lines = append(lines, "Suggested practice:")
		for _, a := range resp.SuggestedActions {
			lines = append(lines, "  - "+a)
		}
	}
	for _, q := range resp.ScriptureReferences {
		lines = append(lines, fmt.Sprintf("%q — %s", q.Translation, q.Source))
	}
	return lines
}

func (m *Model) cmdStats() []string {
	avatar := m.engine.Store.Avatar
	if avatar == nil {
		return []string{"No avatar present."}
	}
	stats := avatar.Stats
	v := stats.Virtues

	return []string{
		fmt.Sprintf("%s — %s yoga, incarnation %d, level %d",
			avatar.Name, stats.YogaPath, avatar.Incarnation, avatar.Level),
		fmt.Sprintf("Karma: %d (%s)  +%d / -%d",
			stats.Karma.Total, m.engine.Store.KarmaLevel(),
			stats.Karma.Positive, stats.Karma.Negative),
		fmt.Sprintf("Gunas: sattva %d  rajas %d  tamas %d (dominant: %s)",
			stats.Gunas.Sattva, stats.Gunas.Rajas, stats.Gunas.Tamas,
			m.engine.Store.DominantGuna()),
		fmt.Sprintf("Virtues: compassion %d  wisdom %d  courage %d  temperance %d",
			v.Compassion, v.Wisdom, v.Courage, v.Temperance),
		fmt.Sprintf("         justice %d  devotion %d  detachment %d  truthfulness %d",
			v.Justice, v.Devotion, v.Detachment, v.Truthfulness),
		fmt.Sprintf("Spiritual level: %d", m.engine.Store.SpiritualLevel()),
	}
}

func (m *Model) cmdReincarnate() []string {
	if !m.engine.CheckReincarnation() {
		return []string{"Your attainment does not yet call you back to the wheel."}
	}
	m.engine.Reincarnate()
	avatar := m.engine.Store.Avatar
	lines := []string{fmt.Sprintf("The wheel turns. You begin incarnation %d.", avatar.Incarnation)}
	return append(lines, m.drainNotifications()...)
}

// drainNotifications returns and clears the store's notification queue,
// oldest first.
func (m *Model) drainNotifications() []string {
	notes := m.engine.Store.Notifications
	var lines []string
	for i := len(notes) - 1; i >= 0; i-- {
		lines = append(lines, "["+notes[i]+"]")
	}
	m.engine.Store.ClearNotifications()
	return lines
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindKarmaGain:
		return styleKarmaGain.Render(line)
	case kindKarmaLoss:
		return styleKarmaLoss.Render(line)
	case kindScripture:
		return styleScripture.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Om shanti. Farewell."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/advance":
		next := m.engine.AdvanceYuga()
		name := m.engine.Store.Profile(next).Name
		if name == "" {
			name = string(next)
		}
		lines := []string{fmt.Sprintf("The wheel turns. The world enters the %s.", name)}
		return append(lines, m.drainNotifications()...), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(m.engine.Store, m.engine.RNG.Seed(), m.engine.RNG.Position())
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Game saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	save.Apply(m.engine.Store, sd)
	m.engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)

	// Loading cancels any active meditation.
	m.med = nil
	m.medGen++

	output := []string{fmt.Sprintf("Game loaded from %s.", name)}
	return append(output, m.cmdStats()...)
}

func (m *Model) cmdHelp() []string {
	return []string{
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
		"  meditate [<practice> <min >] — Sit in meditation (meditate stop to end early)",
		"  journal [<mood> <text>]      — Write a reflection",
		"  quests                       — List quests and their status",
		"  complete <id>                — Complete an open quest",
		"  dilemma [<id> [<option>]]    — Face a moral dilemma",
		"  world                        — Describe the current age",
		"  guide <question>             — Ask the sage for guidance",
		"  stats                        — Show your avatar",
		"  reincarnate                  — Return to the wheel, if ready",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	st := m.engine.Store
	output := []string{
		fmt.Sprintf("Yuga: %s", st.World.CurrentYuga),
		fmt.Sprintf("Collective karma: %d", st.World.CollectiveKarma),
	}
	if st.Avatar != nil {
		output = append(output,
			fmt.Sprintf("Karma: %d", st.Avatar.Stats.Karma.Total),
			fmt.Sprintf("Gunas: %+v", st.Avatar.Stats.Gunas),
			fmt.Sprintf("Recent actions: %d", len(st.Avatar.Stats.Karma.Recent)))
	}
	if m.med != nil {
		output = append(output, fmt.Sprintf("Meditating: %s, %d minutes left",
			m.med.practiceID, m.med.remaining))
	}
	output = append(output, fmt.Sprintf("RNG position: %d", m.engine.RNG.Position()))
	return output
}

func (m *Model) formatTrace() []string {
	st := m.engine.Store
	var lines []string
	if st.Avatar != nil {
		lines = append(lines, fmt.Sprintf("[trace] karma=%d gunas=%+v",
			st.Avatar.Stats.Karma.Total, st.Avatar.Stats.Gunas))
	}
	lines = append(lines, fmt.Sprintf("[trace] rng position=%d", m.engine.RNG.Position()))
	return lines
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

func validDuration(minutes int) bool {
	for _, d := range engine.Durations {
		if d == minutes {
			return true
		}
	}
	return false
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
