package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/editor"
	"github.com/CrestNiraj12/igreply/tui/common"
)

const emptyReplyText = "Please enter a reply."

// --- Messages ---

// ReplyResultMsg is sent when a reply submission finishes.
type ReplyResultMsg struct {
	CommentID string
	Err       error
}

// RefreshMsg asks the owner of the card to re-fetch comments after a reply.
type RefreshMsg struct {
	CommentID string
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	commentID string
	tmpPath   string
	err       error
}

// --- Model ---

// Model renders one comment and owns its reply draft.
type Model struct {
	comment    domain.Comment
	accountID  string
	comments   app.CommentService
	editor     *editor.EnvEditor // nil disables ctrl+e
	keys       common.KeyMap
	replying   bool
	draft      textarea.Model
	submitting bool
	err        string
}

// New creates a card for comment. accountID scopes the reply; empty means
// the backend default account.
func New(comment domain.Comment, comments app.CommentService, accountID string) Model {
	ta := textarea.New()
	ta.Placeholder = "Write a reply..."
	ta.SetWidth(72)
	ta.SetHeight(3)

	return Model{
		comment:   comment,
		accountID: accountID,
		comments:  comments,
		keys:      common.DefaultKeyMap(),
		draft:     ta,
	}
}

// WithComment swaps in a re-fetched copy of the comment, keeping the draft.
func (m Model) WithComment(c domain.Comment) Model {
	m.comment = c
	return m
}

// WithEditor enables drafting the reply in an external editor.
func (m Model) WithEditor(ed *editor.EnvEditor) Model {
	m.editor = ed
	return m
}

// Comment returns the rendered comment.
func (m Model) Comment() domain.Comment { return m.comment }

// Replying reports whether the reply form is open.
func (m Model) Replying() bool { return m.replying }

// Submitting reports whether a reply is in flight.
func (m Model) Submitting() bool { return m.submitting }

// Draft returns the current reply text.
func (m Model) Draft() string { return m.draft.Value() }

// Err returns the inline error, if any.
func (m Model) Err() string { return m.err }

// OpenReply opens the reply form and focuses the draft.
func (m Model) OpenReply() (Model, tea.Cmd) {
	m.replying = true
	cmd := m.draft.Focus()
	return m, cmd
}

// Update handles key input while the reply form is open, and reply results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReplyResultMsg:
		if msg.CommentID != m.comment.ID {
			return m, nil
		}
		m.submitting = false
		if msg.Err != nil {
			// Keep the draft so the user can retry without retyping.
			m.err = common.ErrorText(msg.Err, common.FallbackReply)
			return m, nil
		}
		m.draft.Reset()
		m.draft.Blur()
		m.replying = false
		m.err = ""
		id := m.comment.ID
		return m, func() tea.Msg { return RefreshMsg{CommentID: id} }

	case editorFinishedMsg:
		if msg.commentID != m.comment.ID {
			return m, nil
		}
		if msg.err != nil {
			m.err = fmt.Sprintf("Editor failed: %v", msg.err)
			return m, nil
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			m.err = fmt.Sprintf("Editor failed: %v", err)
			return m, nil
		}
		m.draft.SetValue(content)
		m.err = ""
		return m, nil

	case tea.KeyMsg:
		if !m.replying || m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.replying = false
			m.draft.Reset()
			m.draft.Blur()
			m.err = ""
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Editor) && m.editor != nil:
			return m.launchEditor()
		}
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(msg)
		return m, cmd
	}

	if m.replying {
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	text := m.draft.Value()
	if strings.TrimSpace(text) == "" {
		m.err = emptyReplyText
		return m, nil
	}

	m.submitting = true
	m.err = ""

	comments := m.comments
	id := m.comment.ID
	accountID := m.accountID
	return m, func() tea.Msg {
		_, err := comments.Reply(context.Background(), id, text, accountID)
		return ReplyResultMsg{CommentID: id, Err: err}
	}
}

// launchEditor hands the draft to $EDITOR; tea.ExecProcess suspends the
// program until the editor exits.
func (m Model) launchEditor() (Model, tea.Cmd) {
	cmd, tmpPath, err := m.editor.Cmd(m.draft.Value(), "@"+m.comment.Username)
	if err != nil {
		m.err = fmt.Sprintf("Editor failed: %v", err)
		return m, nil
	}
	id := m.comment.ID
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{commentID: id, tmpPath: tmpPath, err: err}
	})
}
