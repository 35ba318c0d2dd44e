package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-vortex/internal/config"
)

// OptionsKeyMap defines the key bindings for the options editor.
type OptionsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Save  key.Binding
	Reset key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k OptionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Right, k.Save, k.Reset, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k OptionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Save, k.Reset, k.Back, k.Quit},
	}
}

// DefaultOptionsKeyMap returns default key bindings.
func DefaultOptionsKeyMap() OptionsKeyMap {
	return OptionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("left/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d", "enter", " "),
			key.WithHelp("right/enter", "change"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "defaults"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// optionRow is one editable line. change moves the value by dir (+1 or -1).
type optionRow struct {
	label  string
	cheat  bool
	value  func(c config.Config) string
	change func(c *config.Config, dir int)
}

// stepEnum moves cur by dir through values, wrapping around.
func stepEnum[T comparable](cur T, values []T, dir int) T {
	if dir < 0 {
		for range len(values) - 1 {
			cur = config.Cycle(cur, values)
		}
		return cur
	}
	return config.Cycle(cur, values)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

var optionRows = []optionRow{
	{
		label:  "Wall mode",
		value:  func(c config.Config) string { return string(c.Options.WallMode) },
		change: func(c *config.Config, d int) { c.Options.WallMode = stepEnum(c.Options.WallMode, config.WallModes, d) },
	},
	{
		label:  "Default mode",
		value:  func(c config.Config) string { return string(c.Options.GameMode) },
		change: func(c *config.Config, d int) { c.Options.GameMode = stepEnum(c.Options.GameMode, config.GameModes, d) },
	},
	{
		label:  "Enemy speed",
		value:  func(c config.Config) string { return string(c.Options.EnemySpeed) },
		change: func(c *config.Config, d int) { c.Options.EnemySpeed = stepEnum(c.Options.EnemySpeed, config.EnemySpeeds, d) },
	},
	{
		label: "Movement",
		value: func(c config.Config) string { return string(c.Options.MovementMode) },
		change: func(c *config.Config, d int) {
			c.Options.MovementMode = stepEnum(c.Options.MovementMode, config.MovementModes, d)
		},
	},
	{
		label:  "Sound",
		value:  func(c config.Config) string { return onOff(c.Options.SoundEnabled) },
		change: func(c *config.Config, _ int) { c.Options.SoundEnabled = !c.Options.SoundEnabled },
	},
	{
		label:  "Auto fire",
		value:  func(c config.Config) string { return onOff(c.Options.AutoFire) },
		change: func(c *config.Config, _ int) { c.Options.AutoFire = !c.Options.AutoFire },
	},
	{
		label:  "Difficulty",
		value:  func(c config.Config) string { return string(c.Options.Difficulty) },
		change: func(c *config.Config, d int) { c.Options.Difficulty = stepEnum(c.Options.Difficulty, config.Difficulties, d) },
	},
	{
		label: "Survival threshold",
		value: func(c config.Config) string { return fmt.Sprintf("%d deaths/min", c.Options.SurvivalThreshold) },
		change: func(c *config.Config, d int) {
			c.Options.SurvivalThreshold = min(config.MaxSurvivalThreshold,
				max(config.MinSurvivalThreshold, c.Options.SurvivalThreshold+5*d))
		},
	},
	{
		label: "Spawn rate",
		cheat: true,
		value: func(c config.Config) string { return fmt.Sprintf("%.0f frames", c.Cheats.SpawnRate) },
		change: func(c *config.Config, d int) {
			c.Cheats.SpawnRate = math.Min(config.MaxSpawnRate, math.Max(config.MinSpawnRate, c.Cheats.SpawnRate+5*float64(d)))
		},
	},
	{
		label: "Power-up chance",
		cheat: true,
		value: func(c config.Config) string { return fmt.Sprintf("%.0f%%", c.Cheats.PowerUpChance*100) },
		change: func(c *config.Config, d int) {
			v := math.Round((c.Cheats.PowerUpChance+0.05*float64(d))*100) / 100
			c.Cheats.PowerUpChance = math.Min(1, math.Max(0, v))
		},
	},
	{
		label: "Enemy speed x",
		cheat: true,
		value: func(c config.Config) string { return fmt.Sprintf("%.2f", c.Cheats.EnemySpeedMultiplier) },
		change: func(c *config.Config, d int) {
			c.Cheats.EnemySpeedMultiplier = math.Min(config.MaxSpeedMultiplier,
				math.Max(0.25, c.Cheats.EnemySpeedMultiplier+0.25*float64(d)))
		},
	},
	{
		label:  "God mode",
		cheat:  true,
		value:  func(c config.Config) string { return onOff(c.Cheats.GodMode) },
		change: func(c *config.Config, _ int) { c.Cheats.GodMode = !c.Cheats.GodMode },
	},
	{
		label: "Threshold override",
		cheat: true,
		value: func(c config.Config) string {
			if c.Cheats.SurvivalThresholdOverride == nil {
				return "OFF"
			}
			return fmt.Sprintf("%d deaths/min", *c.Cheats.SurvivalThresholdOverride)
		},
		change: stepOverride,
	},
}

// stepOverride walks OFF, then the current threshold, then up in steps of
// 5. Going below the minimum turns the override off again.
func stepOverride(c *config.Config, d int) {
	o := c.Cheats.SurvivalThresholdOverride
	if o == nil {
		if d > 0 {
			v := c.Options.SurvivalThreshold
			c.Cheats.SurvivalThresholdOverride = &v
		}
		return
	}
	v := *o + 5*d
	if v < config.MinSurvivalThreshold {
		c.Cheats.SurvivalThresholdOverride = nil
		return
	}
	v = min(v, config.MaxSurvivalThreshold)
	c.Cheats.SurvivalThresholdOverride = &v
}

var (
	optionsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	optionsCheatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	optionsStatus     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	optionsError      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// OptionsModel edits the options and cheats and can save them to the
// user's config file.
type OptionsModel struct {
	cfg      config.Config
	path     string
	cursor   int
	keys     OptionsKeyMap
	help     help.Model
	status   string
	failed   bool
	width    int
	height   int
	done     bool
	quitting bool
	readOnly bool // edits last for the session only
}

// NewOptionsModel creates an editor for cfg. path is where Save writes;
// empty means the user config file.
func NewOptionsModel(cfg config.Config, path string, width, height int) OptionsModel {
	return OptionsModel{
		cfg:    config.Normalize(cfg),
		path:   path,
		keys:   DefaultOptionsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
}

// Init initializes the options editor.
func (m OptionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the options editor.
func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor + len(optionRows) - 1) % len(optionRows)
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(optionRows)
		case key.Matches(msg, m.keys.Left):
			optionRows[m.cursor].change(&m.cfg, -1)
		case key.Matches(msg, m.keys.Right):
			optionRows[m.cursor].change(&m.cfg, 1)
		case key.Matches(msg, m.keys.Reset):
			m.cfg = config.Default()
			m.status = "Defaults restored"
		case key.Matches(msg, m.keys.Save):
			m.save()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *OptionsModel) save() {
	if m.readOnly {
		m.status, m.failed = "Saving is disabled in remote sessions", true
		return
	}
	if err := config.Save(m.path, m.cfg); err != nil {
		m.status, m.failed = err.Error(), true
		return
	}
	m.status, m.failed = "Saved", false
}

// View renders the options editor.
func (m OptionsModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(optionsTitleStyle.Render("OPTIONS"), m.width))
	b.WriteString("\n\n")

	for i, row := range optionRows {
		if row.cheat && (i == 0 || !optionRows[i-1].cheat) {
			b.WriteString("\n")
			b.WriteString(centerText(optionsCheatStyle.Render("-- cheats --"), m.width))
			b.WriteString("\n")
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-20s %s", cursor, row.label, row.value(m.cfg))
		if i == m.cursor {
			line = menuPickStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := optionsStatus
		if m.failed {
			style = optionsError
		}
		b.WriteString(centerText(style.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString(menuHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Config returns the edited configuration.
func (m OptionsModel) Config() config.Config {
	return m.cfg
}

// IsQuitting returns true if user wants to quit entirely.
func (m OptionsModel) IsQuitting() bool {
	return m.quitting
}

// IsDone returns true if user went back to the menu.
func (m OptionsModel) IsDone() bool {
	return m.done
}

// RunOptions runs the options editor and returns the edited config.
// goBack is false when the user quit.
func RunOptions(cfg config.Config, path string, width, height int) (config.Config, bool, error) {
	p := tea.NewProgram(NewOptionsModel(cfg, path, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return cfg, false, err
	}
	m, ok := final.(OptionsModel)
	if !ok {
		return cfg, false, nil
	}
	return m.Config(), m.IsDone(), nil
}
