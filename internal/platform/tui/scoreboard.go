package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-vortex/internal/registry"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

const (
	maxScores  = 100
	maxRecent  = 50
	tablePadW  = 6 // border and padding around the table
	tableExtra = 9 // title, tabs, stats and help lines
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewTopScores boardView = iota
	viewRecent
)

func (v boardView) String() string {
	if v == viewRecent {
		return "Recent matches"
	}
	return "High scores"
}

// boardSource is the part of the store the scoreboard reads.
type boardSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentMatches(gameID string, limit int) ([]storage.MatchRecord, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevMode key.Binding
	NextMode key.Binding
	View     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevMode, k.NextMode, k.View, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓", "scroll")),
		PrevMode: key.NewBinding(key.WithKeys("left", "h", "a", "shift+tab"), key.WithHelp("←", "prev mode")),
		NextMode: key.NewBinding(key.WithKeys("right", "l", "d", "tab"), key.WithHelp("→", "next mode")),
		View:     key.NewBinding(key.WithKeys("v", "enter"), key.WithHelp("v", "scores/matches")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("201")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).Padding(0, 1)
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// ScoreboardModel lists high scores and recorded matches per mode.
type ScoreboardModel struct {
	modes  []registry.GameInfo
	mode   int
	view   boardView
	source boardSource

	scores  []storage.ScoreEntry
	matches []storage.MatchRecord
	stats   *storage.GameStats

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over store, which may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var src boardSource
	if store != nil {
		src = store
	}
	return newScoreboard(src, width, height)
}

func newScoreboard(src boardSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		source: src,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// gameID returns the registry ID of the selected mode.
func (m ScoreboardModel) gameID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// reload fetches the selected mode's rows and rebuilds the table.
// Read errors leave the table empty.
func (m *ScoreboardModel) reload() {
	m.scores, m.matches, m.stats = nil, nil, nil
	if id := m.gameID(); m.source != nil && id != "" {
		switch m.view {
		case viewRecent:
			m.matches, _ = m.source.RecentMatches(id, maxRecent)
		default:
			m.scores, _ = m.source.TopScores(id, maxScores)
		}
		m.stats, _ = m.source.GetGameStats(id)
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) columns() []table.Column {
	date := max(m.width-tablePadW-50, 12)
	if m.view == viewRecent {
		return []table.Column{
			{Title: "Score", Width: 8},
			{Title: "Lvl", Width: 4},
			{Title: "Deaths", Width: 6},
			{Title: "DPM", Width: 6},
			{Title: "Ended", Width: 18},
			{Title: "Date", Width: min(date, 12)},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: min(date+24, 20)},
	}
}

func (m ScoreboardModel) rows() []table.Row {
	if m.view == viewRecent {
		rows := make([]table.Row, len(m.matches))
		for i, r := range m.matches {
			rows[i] = table.Row{
				fmt.Sprint(r.Score),
				fmt.Sprint(r.Level),
				fmt.Sprint(r.Deaths),
				fmt.Sprintf("%.1f", r.DPM),
				r.EndReason,
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m ScoreboardModel) buildTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-tableExtra, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("57")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("201")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// statsLine summarizes the recorded matches of the selected mode.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.Matches == 0 {
		return ""
	}
	line := fmt.Sprintf("Matches %d  Deaths %d (avg %.1f)  Max dpm %.1f  Spawned %d  Played %s",
		st.Matches, st.TotalDeaths, st.AvgDeaths, st.MaxDPM, st.TotalSpawned, st.TotalDuration.Round(time.Second))
	if n := st.EndReasons["survival_threshold"]; n > 0 {
		line += fmt.Sprintf("  Overrun %d", n)
	}
	return line
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.step(-1)
			return m, nil

		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the mode selection by dir, wrapping around.
func (m *ScoreboardModel) step(dir int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + dir + len(m.modes)) % len(m.modes)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(strings.ToUpper(m.view.String())), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boardFrameStyle.Render(m.tableContent()), m.width))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(boardStatsStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m ScoreboardModel) tableContent() string {
	if len(m.table.Rows()) == 0 {
		if m.view == viewRecent {
			return boardEmptyStyle.Render("No matches recorded yet.")
		}
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay a match to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
