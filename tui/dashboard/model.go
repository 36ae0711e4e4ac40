package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/editor"
	"github.com/CrestNiraj12/igreply/tui/card"
	"github.com/CrestNiraj12/igreply/tui/common"
)

const (
	defaultPollInterval = 30 * time.Second
	commentLimit        = 100
	syncLimit           = 10

	noAccountText = "Select an account first."
)

// --- Messages ---

// AccountAddedMsg tells the dashboard a new account was linked: accounts are
// reloaded and id becomes the selection.
type AccountAddedMsg struct {
	ID string
}

// SelectionChangedMsg is emitted whenever the selected account changes.
type SelectionChangedMsg struct {
	AccountID string
}

// OpenFormMsg asks the root model to show the add-account form.
type OpenFormMsg struct{}

type accountsLoadedMsg struct {
	accounts []domain.Account
	selectID string
	err      error
}

type commentsLoadedMsg struct {
	accountID string
	reqSeq    int
	comments  []domain.Comment
	err       error
}

type pollTickMsg struct {
	gen int
}

type syncResultMsg struct {
	accountID string
	result    domain.SyncResult
	err       error
}

// --- Model ---

// Options configures a dashboard.
type Options struct {
	PollInterval       time.Duration
	PreferredAccountID string            // Selected first when present in the account list
	Editor             *editor.EnvEditor // Optional, enables $EDITOR drafts on cards
}

// Model is the page controller: it owns the account selection, the comment
// list with its filter, and the polling and sync loops.
type Model struct {
	accounts     app.AccountService
	comments     app.CommentService
	editor       *editor.EnvEditor
	keys         common.KeyMap
	pollInterval time.Duration

	accountList []domain.Account
	selectedID  string
	preferredID string

	items   []domain.Comment
	cards   map[string]card.Model // Keyed by comment ID so drafts survive re-fetches
	cursor  int
	loading bool
	syncing bool
	err     string // Last load failure, cleared by the next successful load
	syncErr string // Last sync failure, cleared when a sync starts

	filter    textinput.Model
	filtering bool

	reqSeq  int // Latest dispatched comment fetch
	pollGen int // Bumped on every selection change; stale ticks are dropped

	spinner spinner.Model
	width   int
	height  int
}

// New creates a dashboard with injected dependencies.
func New(accounts app.AccountService, comments app.CommentService, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E1306C"))

	f := textinput.New()
	f.Placeholder = "Search by text or username"
	f.Prompt = "/ "
	f.Width = 40

	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return Model{
		accounts:     accounts,
		comments:     comments,
		editor:       opts.Editor,
		keys:         common.DefaultKeyMap(),
		pollInterval: interval,
		preferredID:  opts.PreferredAccountID,
		cards:        map[string]card.Model{},
		filter:       f,
		spinner:      s,
	}
}

// Init loads the account list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadAccounts(""), m.spinner.Tick)
}

// Accounts returns the loaded accounts.
func (m Model) Accounts() []domain.Account { return m.accountList }

// SelectedAccountID returns the selected account, or "" when none.
func (m Model) SelectedAccountID() string { return m.selectedID }

// Comments returns the full, unfiltered comment list.
func (m Model) Comments() []domain.Comment { return m.items }

// Visible returns the comments that pass the current filter.
func (m Model) Visible() []domain.Comment {
	return domain.FilterComments(m.items, m.filter.Value())
}

// Loading reports whether a comment fetch is in flight.
func (m Model) Loading() bool { return m.loading }

// Syncing reports whether a sync is in flight.
func (m Model) Syncing() bool { return m.syncing }

// Err returns the visible error region text.
func (m Model) Err() string {
	if m.syncErr != "" {
		return m.syncErr
	}
	return m.err
}

// Filter returns the current filter text.
func (m Model) Filter() string { return m.filter.Value() }

// Capturing reports whether text input owns the keyboard, so global keys
// like quit must not fire.
func (m Model) Capturing() bool {
	if m.filtering {
		return true
	}
	c, ok := m.selectedCard()
	return ok && c.Replying()
}

func (m Model) selectedAccount() (domain.Account, bool) {
	for _, a := range m.accountList {
		if a.ID == m.selectedID {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (m Model) hasAccount(id string) bool {
	if id == "" {
		return false
	}
	for _, a := range m.accountList {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (m Model) selectedCard() (card.Model, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return card.Model{}, false
	}
	c, ok := m.cards[visible[m.cursor].ID]
	return c, ok
}
