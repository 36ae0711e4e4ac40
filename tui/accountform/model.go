package accountform

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/auth"
	"github.com/CrestNiraj12/igreply/tui/common"
)

const missingFieldsText = "Enter an account name and access token."

// HandshakeFunc runs the OAuth popup flow for authURL until it completes or
// ctx is cancelled.
type HandshakeFunc func(ctx context.Context, authURL string) (auth.Outcome, error)

// --- Messages ---

// DoneMsg is sent when an account was linked. Username is only known for
// accounts linked through OAuth.
type DoneMsg struct {
	AccountID string
	Username  string
}

// ClosedMsg is sent when the user dismisses the form.
type ClosedMsg struct{}

// ModeChangedMsg reports the add-account mode so it can be remembered.
type ModeChangedMsg struct {
	DirectToken bool
}

type authURLMsg struct {
	url domain.AuthURL
	err error
}

type handshakeDoneMsg struct {
	outcome auth.Outcome
	err     error
}

type createResultMsg struct {
	account domain.Account
	err     error
}

// --- Model ---

const (
	nameField = iota
	tokenField
)

// Model is the add-account form. OAuth and direct-token modes are mutually
// exclusive; the draft fields only apply to direct-token mode.
type Model struct {
	accounts    app.AccountService
	handshake   HandshakeFunc
	keys        common.KeyMap
	useOAuth    bool
	name        textinput.Model
	token       textinput.Model
	focus       int
	submitting  bool
	handshaking bool
	cancel      context.CancelFunc
}

// New creates the form. directToken selects the initial mode.
func New(accounts app.AccountService, handshake HandshakeFunc, directToken bool) Model {
	name := textinput.New()
	name.Placeholder = "Account name"
	name.CharLimit = 100
	name.Width = 40

	token := textinput.New()
	token.Placeholder = "Access token"
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.Width = 40

	if directToken {
		name.Focus()
	}

	return Model{
		accounts:  accounts,
		handshake: handshake,
		keys:      common.DefaultKeyMap(),
		useOAuth:  !directToken,
		name:      name,
		token:     token,
	}
}

// Init starts the cursor blink in direct-token mode.
func (m Model) Init() tea.Cmd {
	if m.useOAuth {
		return nil
	}
	return textinput.Blink
}

// UsesOAuth reports whether the form is in OAuth mode.
func (m Model) UsesOAuth() bool { return m.useOAuth }

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool { return m.submitting }

// Handshaking reports whether the OAuth window is open.
func (m Model) Handshaking() bool { return m.handshaking }

// Name returns the name draft.
func (m Model) Name() string { return m.name.Value() }

// Token returns the token draft.
func (m Model) Token() string { return m.token.Value() }

// Update handles input and request results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authURLMsg:
		if msg.err != nil {
			m.submitting = false
			return m, common.Alert(common.ErrorText(msg.err, common.FallbackLoginURL))
		}
		return m.startHandshake(msg.url.URL)

	case handshakeDoneMsg:
		return m.handshakeDone(msg)

	case createResultMsg:
		m.submitting = false
		if msg.err != nil {
			return m, common.Alert(common.ErrorText(msg.err, common.FallbackAddAccount))
		}
		m = m.reset()
		id := msg.account.ID
		return m, func() tea.Msg { return DoneMsg{AccountID: id} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		if m.handshaking {
			// The handshake reports back as abandoned; nothing is shown.
			m.cancel()
			return m, nil
		}
		if m.submitting {
			return m, nil
		}
		m = m.reset()
		return m, func() tea.Msg { return ClosedMsg{} }
	}
	if m.submitting || m.handshaking {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleMode):
		return m.toggleMode()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Confirm):
		if !m.useOAuth && m.focus == nameField {
			return m.focusField(tokenField)
		}
		return m.submit()
	case !m.useOAuth && (key.Matches(msg, m.keys.Down) && msg.Type != tea.KeyRunes):
		return m.focusField(tokenField)
	case !m.useOAuth && (key.Matches(msg, m.keys.Up) && msg.Type != tea.KeyRunes):
		return m.focusField(nameField)
	}

	if m.useOAuth {
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	if m.useOAuth {
		return m, nil
	}
	var cmd tea.Cmd
	if m.focus == nameField {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.token, cmd = m.token.Update(msg)
	}
	return m, cmd
}

func (m Model) focusField(field int) (Model, tea.Cmd) {
	m.focus = field
	if field == nameField {
		m.token.Blur()
		cmd := m.name.Focus()
		return m, cmd
	}
	m.name.Blur()
	cmd := m.token.Focus()
	return m, cmd
}

func (m Model) toggleMode() (Model, tea.Cmd) {
	m.useOAuth = !m.useOAuth
	direct := !m.useOAuth
	notify := func() tea.Msg { return ModeChangedMsg{DirectToken: direct} }
	if m.useOAuth {
		m.name.Blur()
		m.token.Blur()
		return m, notify
	}
	m, focus := m.focusField(nameField)
	return m, tea.Batch(focus, notify)
}

func (m Model) submit() (Model, tea.Cmd) {
	accounts := m.accounts
	if m.useOAuth {
		m.submitting = true
		return m, func() tea.Msg {
			u, err := accounts.AuthURL(context.Background())
			return authURLMsg{url: u, err: err}
		}
	}

	name := strings.TrimSpace(m.name.Value())
	token := strings.TrimSpace(m.token.Value())
	if name == "" || token == "" {
		return m, common.Alert(missingFieldsText)
	}

	m.submitting = true
	return m, func() tea.Msg {
		acc, err := accounts.CreateAccount(context.Background(), name, token)
		return createResultMsg{account: acc, err: err}
	}
}

func (m Model) startHandshake(authURL string) (Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.handshaking = true

	run := m.handshake
	return m, func() tea.Msg {
		outcome, err := run(ctx, authURL)
		return handshakeDoneMsg{outcome: outcome, err: err}
	}
}

func (m Model) handshakeDone(msg handshakeDoneMsg) (Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.handshaking = false
	m.submitting = false

	if msg.err != nil {
		return m, common.Alert("Login failed: " + msg.err.Error())
	}

	o := msg.outcome
	if o.State != auth.Completed {
		return m, nil
	}
	if !o.Succeeded() {
		return m, common.Alert("Login failed: " + o.Message.Error)
	}
	m = m.reset()
	done := DoneMsg{AccountID: o.Message.AccountID, Username: o.Message.Username}
	return m, func() tea.Msg { return done }
}

// reset clears the draft and puts the form back in its idle state. The mode
// is kept.
func (m Model) reset() Model {
	m.name.Reset()
	m.token.Reset()
	m.submitting = false
	m.handshaking = false
	if !m.useOAuth {
		m.focus = nameField
		m.token.Blur()
		m.name.Focus()
	}
	return m
}
