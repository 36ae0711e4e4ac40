package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/infra/config"
	"github.com/CrestNiraj12/igreply/infra/editor"
	"github.com/CrestNiraj12/igreply/tui/accountform"
	"github.com/CrestNiraj12/igreply/tui/common"
	"github.com/CrestNiraj12/igreply/tui/dashboard"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Accounts     app.AccountService
	Comments     app.CommentService
	Handshake    accountform.HandshakeFunc
	Editor       *editor.EnvEditor
	PollInterval time.Duration
	StatePath    string         // Empty disables UI state persistence
	State        config.UIState // Loaded at startup
}

type activeView int

const (
	dashboardView activeView = iota
	formView
)

type stateSavedMsg struct {
	err error
}

// App is the root Bubble Tea model. It routes between sub-views and owns the
// blocking alert.
type App struct {
	deps      Deps
	active    activeView
	dashboard dashboard.Model
	form      accountform.Model
	keys      common.KeyMap
	state     config.UIState
	alert     string // Blocking alert; swallows input until dismissed
	status    string // Transient status message
	width     int
	height    int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: dashboardView,
		dashboard: dashboard.New(deps.Accounts, deps.Comments, dashboard.Options{
			PollInterval:       deps.PollInterval,
			PreferredAccountID: deps.State.SelectedAccountID,
			Editor:             deps.Editor,
		}),
		keys:  common.DefaultKeyMap(),
		state: deps.State,
	}
}

// Init delegates to the dashboard.
func (a App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case common.AlertMsg:
		a.alert = msg.Text
		return a, nil

	case dashboard.OpenFormMsg:
		a.active = formView
		a.status = ""
		a.form = accountform.New(a.deps.Accounts, a.deps.Handshake, a.state.DirectToken)
		return a, a.form.Init()

	case accountform.ClosedMsg:
		a.active = dashboardView
		return a, nil

	case accountform.DoneMsg:
		a.active = dashboardView
		a.alert = common.AccountAdded(msg.Username)
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(dashboard.AccountAddedMsg{ID: msg.AccountID})
		return a, cmd

	case accountform.ModeChangedMsg:
		a.state.DirectToken = msg.DirectToken
		return a, a.saveState()

	case dashboard.SelectionChangedMsg:
		a.state.SelectedAccountID = msg.AccountID
		return a, a.saveState()

	case stateSavedMsg:
		if msg.err != nil {
			log.Printf("save ui state: %v", msg.err)
			a.status = "Could not save preferences."
		}
		return a, nil
	}

	// Everything else (results, ticks, blinks) reaches the dashboard so its
	// polling keeps running behind the form; the form only while it is open.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.dashboard, cmd = a.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	if a.active == formView {
		a.form, cmd = a.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.alert != "" {
		switch msg.String() {
		case "enter", "esc", " ", "q":
			a.alert = ""
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.active {
	case formView:
		a.form, cmd = a.form.Update(msg)
	case dashboardView:
		if key.Matches(msg, a.keys.Quit) && !a.dashboard.Capturing() {
			return a, tea.Quit
		}
		a.status = ""
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

func (a App) saveState() tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	st := a.state
	return func() tea.Msg {
		return stateSavedMsg{err: config.SaveUIState(path, st)}
	}
}

// View renders the active sub-model, or the blocking alert over it.
func (a App) View() string {
	if a.alert != "" {
		box := common.AlertStyle.Render(a.alert + "\n\n" + common.TimestampStyle.Render("enter: OK"))
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	var s string
	switch a.active {
	case dashboardView:
		s = a.dashboard.View()
	case formView:
		s = a.form.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return s
}
