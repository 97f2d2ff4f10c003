package tui

import (
	"ridecoach/internal/coach"
	"ridecoach/internal/service"
	"ridecoach/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenCoach Screen = iota
	ScreenRides
	ScreenSync
)

// App is the root Bubble Tea model
type App struct {
	screen Screen

	// Screen models
	coachScreen ContextModel
	rides       RidesModel
	syncScreen  SyncModel

	// Services
	store       *store.Store
	builder     *coach.Builder
	syncService *service.SyncService

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(s *store.Store, builder *coach.Builder, syncService *service.SyncService) *App {
	return &App{
		screen:      ScreenCoach,
		store:       s,
		builder:     builder,
		syncService: syncService,
		coachScreen: NewContextModel(builder, 0, 0),
		rides:       NewRidesModel(s),
		syncScreen:  NewSyncModel(syncService),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.coachScreen.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless a sync is running)
		if a.screen != ScreenSync || !a.syncScreen.syncing {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenCoach
				a.coachScreen = NewContextModel(a.builder, a.width, a.height)
				return a, a.coachScreen.Init()
			case "2":
				a.screen = ScreenRides
				return a, a.rides.Init()
			case "3", "s":
				if a.screen != ScreenSync {
					a.screen = ScreenSync
					return a, a.syncScreen.Init()
				}
				// Let 's' fall through to the sync screen when already there
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case SyncCompleteMsg:
		// Rebuild the coaching context from the fresh ride history
		a.screen = ScreenCoach
		a.coachScreen = NewContextModel(a.builder, a.width, a.height)
		return a, a.coachScreen.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenCoach:
		var m tea.Model
		m, cmd = a.coachScreen.Update(msg)
		a.coachScreen = m.(ContextModel)
	case ScreenRides:
		var m tea.Model
		m, cmd = a.rides.Update(msg)
		a.rides = m.(RidesModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenCoach:
		content = a.coachScreen.View()
	case ScreenRides:
		content = a.rides.View()
	case ScreenSync:
		content = a.syncScreen.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("ridecoach - Cycling Training Load")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Coach", ScreenCoach},
		{"2", "Rides", ScreenRides},
		{"3", "Sync", ScreenSync},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// SyncCompleteMsg is sent when sync finishes
type SyncCompleteMsg struct{}
