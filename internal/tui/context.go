package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ridecoach/internal/analysis"
	"ridecoach/internal/coach"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// ContextModel is the coaching context screen model
type ContextModel struct {
	builder  *coach.Builder
	cc       *coach.CoachingContext
	viewport viewport.Model
	loading  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewContextModel creates a new coaching context model
func NewContextModel(b *coach.Builder, width, height int) ContextModel {
	m := ContextModel{
		builder: b,
		loading: true,
		width:   width,
		height:  height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the coaching context screen
func (m ContextModel) Init() tea.Cmd {
	return m.loadContext
}

type contextLoadedMsg struct {
	cc  *coach.CoachingContext
	err error
}

func (m ContextModel) loadContext() tea.Msg {
	cc, err := m.builder.Build(context.Background(), time.Now(), coach.Options{})
	return contextLoadedMsg{cc: cc, err: err}
}

// Update handles messages
func (m ContextModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contextLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.cc = msg.cc
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.cc != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadContext
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the coaching context screen
func (m ContextModel) View() string {
	if m.loading {
		return "\n  Building coaching context..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh  3: sync")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ContextModel) renderContent() string {
	if m.cc == nil {
		return "No data yet. Press '3' to sync with Strava."
	}

	var sections []string

	// Top row: training load and riding patterns side by side
	loadCard := m.renderLoadCard()
	patternsCard := m.renderPatternsCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, loadCard, "  ", patternsCard)
	sections = append(sections, topRow)

	sections = append(sections, m.renderPerformanceCard())

	if hasLoadHistory(m.cc.Load.WeeklyTSS) {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderRecentRides())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ContextModel) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")
	load := m.cc.Load

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%d", load.CTL), ""),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%d", load.ATL), ""),
		RenderMetric("Form (TSB)", fmt.Sprintf("%+d", load.TSB), ""),
		RenderMetric("Trend", string(load.Trend), ""),
		"",
		mutedStyle.Render(analysis.FormDescription(load.TSB)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ContextModel) renderPatternsCard() string {
	title := cardTitleStyle.Render("Riding Patterns")
	p := m.cc.Patterns

	lastRide := fmt.Sprintf("%d days ago", p.DaysSinceLastRide)
	if p.DaysSinceLastRide == 0 {
		lastRide = "today"
	} else if p.DaysSinceLastRide >= analysis.NoRecentRide {
		lastRide = "none in 12 weeks"
	}

	lines := []string{
		RenderMetric("Rides per week", fmt.Sprintf("%.1f", p.AvgRidesPerWeek), ""),
		RenderMetric("Avg ride length", fmt.Sprintf("%.0f min", p.AvgRideMinutes), ""),
		RenderMetric("Consistency", fmt.Sprintf("%d/100", p.ConsistencyScore), ""),
		RenderMetric("Last ride", lastRide, ""),
		RenderMetric("Last rest day", fmt.Sprintf("%d days ago", p.DaysSinceRestDay), ""),
	}

	if len(p.PreferredDays) > 0 {
		lines = append(lines, "", mutedStyle.Render("Usually rides: "+strings.Join(p.PreferredDays, ", ")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(42).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ContextModel) renderPerformanceCard() string {
	title := cardTitleStyle.Render("Performance")
	perf := m.cc.Performance

	lines := []string{
		RenderMetric("Avg power", formatWatts(perf.AvgWeightedPower), ""),
		RenderMetric("Best 20min power", formatWatts(perf.Best20MinPower), ""),
		RenderMetric("Power trend", string(perf.Trend), ""),
		RenderMetric("FTP setting", fmt.Sprintf("%.0fW", m.cc.Profile.FTPWatts), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ContextModel) renderChart() string {
	title := cardTitleStyle.Render("Weekly TSS - Oldest to Newest")

	// WeeklyTSS is ordered current week first; the chart reads left to right
	tss := m.cc.Load.WeeklyTSS
	data := make([]float64, len(tss))
	for i, v := range tss {
		data[len(tss)-1-i] = float64(v)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m ContextModel) renderRecentRides() string {
	title := cardTitleStyle.Render("Recent Rides")

	if len(m.cc.RecentRides) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No rides yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-20s  %6s  %7s  %6s  %5s  %-10s",
		"Date", "Name", "Time", "Dist", "Power", "TSS", "Type"))

	var rows []string
	rows = append(rows, header)

	for _, r := range m.cc.RecentRides {
		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-20s  %5.1fh  %5.1fkm  %6s  %5d  %-10s",
			r.Date.Format("Jan 02"),
			truncateName(r.Name, 20),
			r.Hours,
			r.DistanceKm,
			formatWatts(r.Power),
			r.TSS,
			r.Type,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func hasLoadHistory(weeklyTSS []int) bool {
	for _, v := range weeklyTSS {
		if v > 0 {
			return true
		}
	}
	return false
}

func formatWatts(w *float64) string {
	if w == nil {
		return "-"
	}
	return fmt.Sprintf("%.0fW", *w)
}

func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
