package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
)

// Engine is the part of the stats service the dashboard reads.
type Engine interface {
	Today() model.Date
	Overview(ctx context.Context, userID string) (*stats.Overview, error)
	GoalProgress(ctx context.Context, userID string) (*stats.GoalProgress, error)
	Heatmap(ctx context.Context, userID string, year int) (*stats.Heatmap, error)
	OnThisDay(ctx context.Context, userID string) ([]stats.Memory, error)
}

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// dataMsg carries a freshly loaded snapshot.
type dataMsg struct {
	snapshot *Snapshot
}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// Snapshot is everything the dashboard shows, read in one load.
type Snapshot struct {
	Overview *stats.Overview
	Goal     *stats.GoalProgress
	Heatmap  *stats.Heatmap
	Memories []stats.Memory
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	data *Snapshot
	year int

	engine Engine
	userID string
	ctx    context.Context

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	// Configuration
	refreshInterval time.Duration
	maxMemories     int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Engine          Engine
	UserID          string
	Context         context.Context
	RefreshInterval time.Duration
	MaxMemories     int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Minute
	}
	if config.MaxMemories == 0 {
		config.MaxMemories = 3
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	return &DashboardModel{
		engine:          config.Engine,
		userID:          config.UserID,
		ctx:             config.Context,
		year:            config.Engine.Today().Year(),
		refreshInterval: config.RefreshInterval,
		maxMemories:     config.MaxMemories,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.loadCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Time(msg).After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, tea.Batch(m.tickCmd(), m.loadCmd())

	case dataMsg:
		m.data = msg.snapshot
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "r":
		m.setMessage("Refreshed", time.Second)
		return m, m.loadCmd()

	case "left", "h":
		if m.year > 1 {
			m.year--
		}
		return m, m.loadCmd()

	case "right", "l":
		if m.year < m.engine.Today().Year() {
			m.year++
			return m, m.loadCmd()
		}
		m.setMessage("Already showing the current year", 2*time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.data != nil {
		sections = append(sections,
			OverviewView(m.data.Overview, m.width),
			GoalView(m.data.Goal, m.width),
			HeatmapView(m.data.Heatmap, m.width),
			MemoriesView(m.data.Memories, m.width, m.maxMemories),
		)
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Diary")
	today := StyleSubtitle.Render(m.engine.Today().Time(time.UTC).Format("Monday, January 2 2006"))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", today)
}

// Load reads a snapshot for year. The reads run concurrently and any failure
// fails the whole snapshot.
func Load(ctx context.Context, engine Engine, userID string, year int) (*Snapshot, error) {
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Overview, err = engine.Overview(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		s.Goal, err = engine.GoalProgress(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		s.Heatmap, err = engine.Heatmap(gctx, userID, year)
		return err
	})
	g.Go(func() (err error) {
		s.Memories, err = engine.OnThisDay(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadCmd returns a command that loads a snapshot for the selected year.
func (m *DashboardModel) loadCmd() tea.Cmd {
	year := m.year
	return func() tea.Msg {
		snapshot, err := Load(m.ctx, m.engine, m.userID, year)
		if err != nil {
			return errMsg{err: err}
		}
		return dataMsg{snapshot: snapshot}
	}
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	if config.Context == nil {
		config.Context = context.Background()
	}
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen(), tea.WithContext(config.Context))
	_, err := p.Run()
	return err
}
