package tui

import (
	"context"
	"fmt"

	"ridecoach/internal/analysis"
	"ridecoach/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const ridesPageSize = 30

// RidesModel is the ride history list screen model
type RidesModel struct {
	store   *store.Store
	rides   []store.Ride
	cursor  int
	loading bool
	err     error
}

// NewRidesModel creates a new ride list model
func NewRidesModel(s *store.Store) RidesModel {
	return RidesModel{
		store:   s,
		loading: true,
	}
}

// Init initializes the rides screen
func (m RidesModel) Init() tea.Cmd {
	return m.loadRides
}

type ridesLoadedMsg struct {
	rides []store.Ride
	err   error
}

func (m RidesModel) loadRides() tea.Msg {
	rides, err := m.store.RecentRides(context.Background(), ridesPageSize)
	return ridesLoadedMsg{rides: rides, err: err}
}

// Update handles messages
func (m RidesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ridesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.rides = msg.rides
		if m.cursor >= len(m.rides) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rides)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			return m, m.loadRides
		}
	}
	return m, nil
}

// View renders the ride list
func (m RidesModel) View() string {
	if m.loading {
		return "\n  Loading rides..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.rides) == 0 {
		return "\n  No rides found. Press '3' to sync with Strava."
	}

	var sections []string

	title := cardTitleStyle.Render(fmt.Sprintf("Rides (most recent %d)", len(m.rides)))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %-24s  %6s  %7s  %6s  %6s  %5s",
		"Date", "Name", "Time", "Dist", "Elev", "Power", "TSS"))
	sections = append(sections, header)

	for i, r := range m.rides {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-10s  %-24s  %6s  %5.1fkm  %5.0fm  %6s  %5d",
			cursor,
			r.StartDate.Format("Jan 02"),
			truncateName(r.Name, 24),
			formatDuration(r.MovingTime),
			r.Distance/1000,
			r.ElevationGain,
			formatWatts(r.PowerReading()),
			analysis.EstimateTSS(r),
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render("\n  j/k: navigate  r: refresh  1: coach  3: sync")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
