package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glintlab/glint/internal/bulb"
	"github.com/glintlab/glint/internal/config"
	"github.com/glintlab/glint/internal/discovery"
)

// screen is the dashboard's current mode
type screen int

const (
	screenScanning screen = iota
	screenList
	screenEmpty
)

// Messages for async operations
type scanDoneMsg struct {
	records []*discovery.Record
	err     error
}

type toggleDoneMsg struct {
	index int
	on    bool
	err   error
}

// dashKeyMap defines key bindings for the dashboard
type dashKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Rescan, k.Quit},
	}
}

var defaultKeys = dashKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle power")),
	Rescan: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// bulbItem wraps a discovered bulb for use with bubbles/list
type bulbItem struct {
	record *discovery.Record
	alias  string
	power  bool
	busy   bool
}

// FilterValue implements list.Item; filter by id, alias, or model
func (b bulbItem) FilterValue() string {
	return b.record.ID() + " " + b.alias + " " + b.record.Model()
}

// Title returns the display name for list rendering
func (b bulbItem) Title() string {
	if b.alias != "" {
		return b.alias
	}
	return b.record.ID()
}

// Description returns the detail line for list rendering
func (b bulbItem) Description() string {
	state := PowerOffStyle.Render("off")
	if b.power {
		state = PowerOnStyle.Render("on")
	}
	if b.busy {
		state = SubtitleStyle.Render("...")
	}
	return fmt.Sprintf("%s  %s  %s", state, b.record.Model(), b.record.Location())
}

// Model is the dashboard's bubbletea model
type Model struct {
	screen   screen
	spinner  spinner.Model
	list     list.Model
	keys     dashKeyMap
	help     help.Model
	registry *config.Registry

	window     time.Duration
	timeout    time.Duration
	transition time.Duration

	status string
	err    error
	width  int
	height int
}

// NewModel creates the dashboard model from user preferences
func NewModel(registry *config.Registry) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(PrimaryColor).BorderLeftForeground(PrimaryColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(SubtleColor).BorderLeftForeground(PrimaryColor)

	lst := list.New(nil, delegate, 0, 0)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetShowHelp(false)

	prefs := registry.Preferences

	return Model{
		screen:     screenScanning,
		spinner:    sp,
		list:       lst,
		keys:       defaultKeys,
		help:       help.New(),
		registry:   registry,
		window:     prefs.ScanWindow(),
		timeout:    prefs.CommandTimeout(),
		transition: prefs.Transition(),
	}
}

// Init starts the spinner and the first scan
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanCmd(m.window))
}

// scanCmd runs one discovery cycle off the UI goroutine
func scanCmd(window time.Duration) tea.Cmd {
	return func() tea.Msg {
		records, err := discovery.ScanForBulbs(window)
		return scanDoneMsg{records: records, err: err}
	}
}

// toggleCmd flips one bulb's power off the UI goroutine
func toggleCmd(index int, item bulbItem, timeout, transition time.Duration) tea.Cmd {
	return func() tea.Msg {
		client, err := bulb.NewClient(item.record.Location())
		if err != nil {
			return toggleDoneMsg{index: index, on: item.power, err: err}
		}
		client.Timeout = timeout

		target := !item.power
		if err := client.SetPower(target, transition); err != nil {
			return toggleDoneMsg{index: index, on: item.power, err: err}
		}
		return toggleDoneMsg{index: index, on: target}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case spinner.TickMsg:
		if m.screen != screenScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanDoneMsg:
		return m.handleScanDone(msg)

	case toggleDoneMsg:
		return m.handleToggleDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.err = msg.err

	items := make([]list.Item, 0, len(msg.records))
	seen := make(map[string]bool)
	for _, record := range msg.records {
		id := record.ID()
		if id == "" || seen[id] {
			// Identity-less replies can't be controlled; duplicates
			// collapse to the first arrival
			continue
		}
		seen[id] = true

		alias := ""
		if cached := m.registry.GetBulb(id); cached != nil {
			alias = cached.Alias
		}
		m.registry.UpdateBulbSeen(id, record.Location(), record.Model())

		items = append(items, bulbItem{
			record: record,
			alias:  alias,
			power:  record.Power() == "on",
		})
	}

	if len(items) == 0 {
		m.screen = screenEmpty
		return m, nil
	}

	m.screen = screenList
	m.status = fmt.Sprintf("Found %d bulb(s)", len(items))
	return m, m.list.SetItems(items)
}

func (m Model) handleToggleDone(msg toggleDoneMsg) (tea.Model, tea.Cmd) {
	items := m.list.Items()
	if msg.index < 0 || msg.index >= len(items) {
		return m, nil
	}

	item := items[msg.index].(bulbItem)
	item.busy = false
	item.power = msg.on
	if msg.err != nil {
		m.err = msg.err
		m.status = ""
	} else {
		m.err = nil
		state := "off"
		if msg.on {
			state = "on"
		}
		m.status = fmt.Sprintf("%s → %s", item.Title(), state)
	}
	return m, m.list.SetItem(msg.index, item)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Rescan):
		if m.screen == screenScanning {
			return m, nil
		}
		m.screen = screenScanning
		m.status = ""
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, scanCmd(m.window))

	case key.Matches(msg, m.keys.Toggle):
		if m.screen != screenList {
			return m, nil
		}
		index := m.list.Index()
		item, ok := m.list.SelectedItem().(bulbItem)
		if !ok || item.busy {
			return m, nil
		}
		item.busy = true
		return m, tea.Batch(
			m.list.SetItem(index, item),
			toggleCmd(index, item, m.timeout, m.transition),
		)
	}

	if m.screen == screenList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard
func (m Model) View() string {
	header := TitleStyle.Render("GLINT") + "  " + SubtitleStyle.Render("LAN bulb dashboard")

	var body string
	switch m.screen {
	case screenScanning:
		body = fmt.Sprintf("\n %s Scanning for bulbs (%s window)...\n", m.spinner.View(), m.window)
	case screenEmpty:
		body = "\n No bulbs found.\n\n" +
			SubtitleStyle.Render(" Check that LAN Control is enabled in the vendor app,\n"+
				" then press r to rescan.") + "\n"
	case screenList:
		body = "\n" + m.list.View() + "\n"
	}

	var footer string
	if m.err != nil {
		footer = ErrStyle.Render(fmt.Sprintf("error: %v", m.err))
	} else if m.status != "" {
		footer = StatusStyle.Render(m.status)
	}

	return header + "\n" + body + "\n" + footer + "\n" + HelpStyle.Render(m.help.View(m.keys))
}

// Run launches the dashboard and blocks until the user quits. The
// refreshed bulb cache is saved on exit.
func Run(registry *config.Registry) error {
	model := NewModel(registry)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return registry.Save()
}
