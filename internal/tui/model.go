// Package tui implements the richest display: an interactive dashboard
// with live progress bars, a usage-history chart and automatic reload
// when the daemon publishes a new snapshot.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/history"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/models"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/profile"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/store"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/widget"
)

type (
	// reloadMsg asks the model to rebuild its render model from the store.
	reloadMsg struct{}

	// snapshotChangedMsg is emitted by the shared-dir watcher when the
	// daemon rewrites a snapshot file.
	snapshotChangedMsg struct{}

	// tickMsg drives the periodic fallback refresh for hosts without a
	// working file watcher.
	tickMsg time.Time

	// historyMsg delivers freshly loaded chart points.
	historyMsg []history.Point
)

// Model is the dashboard's bubbletea model.
type Model struct {
	store    *store.Store
	profiles *profile.Store
	history  *history.Store
	watcher  *Watcher

	profileID string
	render    *widget.RenderModel
	points    []history.Point
	width     int
	height    int
	lastLoad  time.Time
}

// NewModel creates the dashboard model. history and watcher may be nil;
// the dashboard then renders without a chart or live reload.
func NewModel(st *store.Store, profiles *profile.Store, hist *history.Store, watcher *Watcher) Model {
	profileID := ""
	if active := profiles.GetActive(); active != nil {
		profileID = active.ID
	}
	return Model{
		store:     st,
		profiles:  profiles,
		history:   hist,
		watcher:   watcher,
		profileID: profileID,
	}
}

// Init loads the first render model and starts the watcher and tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return reloadMsg{} }, tick()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.WaitCmd())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, func() tea.Msg { return reloadMsg{} }
		case "p":
			m.profileID = m.nextProfileID()
			return m, func() tea.Msg { return reloadMsg{} }
		}
		return m, nil

	case reloadMsg:
		m.render = widget.BuildRenderModel(
			m.store.LoadSnapshot(m.profileID),
			m.store.LoadSettings(m.profileID),
			widget.KindLarge,
			time.Now(),
		)
		m.lastLoad = time.Now()
		return m, m.loadHistoryCmd()

	case snapshotChangedMsg:
		cmds := []tea.Cmd{func() tea.Msg { return reloadMsg{} }}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.WaitCmd())
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		return m, tea.Batch(func() tea.Msg { return reloadMsg{} }, tick())

	case historyMsg:
		m.points = msg
		return m, nil
	}

	return m, nil
}

func (m Model) loadHistoryCmd() tea.Cmd {
	if m.history == nil {
		return nil
	}
	hist, profileID := m.history, m.profileID
	return func() tea.Msg {
		points, err := hist.Recent(profileID, 24*time.Hour)
		if err != nil {
			return historyMsg(nil)
		}
		return historyMsg(points)
	}
}

// nextProfileID cycles through the tracked profiles.
func (m Model) nextProfileID() string {
	profiles := m.profiles.List()
	if len(profiles) == 0 {
		return m.profileID
	}
	for i, p := range profiles {
		if p.ID == m.profileID {
			return profiles[(i+1)%len(profiles)].ID
		}
	}
	return profiles[0].ID
}

// activeProfile returns the profile being displayed, if it exists.
func (m Model) activeProfile() *models.Profile {
	p, err := m.profiles.Get(m.profileID)
	if err != nil {
		return nil
	}
	return &p
}
