package card

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/backend"
	"github.com/CrestNiraj12/igreply/infra/editor"
)

type replyCall struct {
	commentID, message, accountID string
}

type stubComments struct {
	calls []replyCall
	err   error
}

func (s *stubComments) ListComments(context.Context, app.CommentQuery) ([]domain.Comment, error) {
	return nil, nil
}
func (s *stubComments) GetComment(context.Context, string, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}
func (s *stubComments) DeleteComment(context.Context, string, string) error { return nil }
func (s *stubComments) Sync(context.Context, app.SyncQuery) (domain.SyncResult, error) {
	return domain.SyncResult{}, nil
}
func (s *stubComments) Reply(_ context.Context, commentID, message, accountID string) (domain.ReplyAck, error) {
	s.calls = append(s.calls, replyCall{commentID, message, accountID})
	if s.err != nil {
		return domain.ReplyAck{}, s.err
	}
	return domain.ReplyAck{Success: true}, nil
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func ctrlD() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlD} }

func newCard(svc *stubComments) Model {
	m := New(domain.Comment{ID: "c1", Text: "nice post", Username: "alice"}, svc, "acct-1")
	m, _ = m.OpenReply()
	return m
}

func TestSubmit_EmptyDraftGuardedLocally(t *testing.T) {
	svc := &stubComments{}
	m := newCard(svc)
	m = typeText(m, "   ")

	m, cmd := m.Update(ctrlD())
	if cmd != nil {
		t.Fatalf("whitespace draft must not dispatch a request")
	}
	if m.Err() == "" || m.Submitting() || !m.Replying() {
		t.Fatalf("expected inline error with form still open")
	}
	if len(svc.calls) != 0 {
		t.Fatalf("reply endpoint must not be called")
	}
}

func TestSubmit_SuccessClearsDraftAndRequestsRefresh(t *testing.T) {
	svc := &stubComments{}
	m := newCard(svc)
	m = typeText(m, "thanks!")

	m, cmd := m.Update(ctrlD())
	if !m.Submitting() || cmd == nil {
		t.Fatalf("expected in-flight submission")
	}
	result := cmd()
	if len(svc.calls) != 1 || svc.calls[0] != (replyCall{"c1", "thanks!", "acct-1"}) {
		t.Fatalf("unexpected reply calls: %#v", svc.calls)
	}

	m, cmd = m.Update(result)
	if m.Replying() || m.Submitting() || m.Draft() != "" || m.Err() != "" {
		t.Fatalf("success should close and clear the form: replying=%v draft=%q err=%q", m.Replying(), m.Draft(), m.Err())
	}
	if cmd == nil {
		t.Fatalf("expected refresh request")
	}
	if msg, ok := cmd().(RefreshMsg); !ok || msg.CommentID != "c1" {
		t.Fatalf("expected RefreshMsg for c1")
	}
}

func TestSubmit_FailureKeepsDraftAndShowsDetail(t *testing.T) {
	svc := &stubComments{err: &backend.APIError{Status: 500, Detail: "Error posting reply: rate limited"}}
	m := newCard(svc)
	m = typeText(m, "thanks!")

	m, cmd := m.Update(ctrlD())
	m, cmd = m.Update(cmd())
	if cmd != nil {
		t.Fatalf("failure must not request a refresh")
	}
	if !m.Replying() || m.Draft() != "thanks!" {
		t.Fatalf("failure must keep form open with draft, got replying=%v draft=%q", m.Replying(), m.Draft())
	}
	if m.Err() != "Error posting reply: rate limited" {
		t.Fatalf("unexpected inline error: %q", m.Err())
	}
}

func TestSubmit_FailureWithoutDetailUsesFallback(t *testing.T) {
	svc := &stubComments{err: errors.New("dial tcp: connection refused")}
	m := newCard(svc)
	m = typeText(m, "hi")
	m, cmd := m.Update(ctrlD())
	m, _ = m.Update(cmd())
	if !strings.Contains(m.Err(), "Failed") {
		t.Fatalf("expected fallback error text, got %q", m.Err())
	}
}

func TestCancel_ClearsDraftAndError(t *testing.T) {
	m := newCard(&stubComments{})
	m = typeText(m, "half written")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Replying() || m.Draft() != "" || m.Err() != "" {
		t.Fatalf("cancel should reset the form")
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newCard(&stubComments{})
	m = typeText(m, "hi")
	m, _ = m.Update(ctrlD())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Replying() || !m.Submitting() {
		t.Fatalf("cancel must be disabled while submitting")
	}
}

func TestReplyResultForOtherCommentIgnored(t *testing.T) {
	m := newCard(&stubComments{})
	m = typeText(m, "hi")
	m, _ = m.Update(ctrlD())
	m, _ = m.Update(ReplyResultMsg{CommentID: "other"})
	if !m.Submitting() {
		t.Fatalf("result for another comment must not touch this card")
	}
}

func TestView_RendersRepliesAndLikes(t *testing.T) {
	c := domain.Comment{
		ID: "c1", Text: "love it", Username: "alice", LikeCount: 3,
		Replies: []domain.Reply{{ID: "r1", Text: "thank you", Username: "shop"}},
	}
	out := New(c, &stubComments{}, "").View(true, 60)
	for _, want := range []string{"@alice", "♥ 3", "love it", "@shop", "thank you"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	c.LikeCount = 0
	if strings.Contains(New(c, &stubComments{}, "").View(false, 60), "♥") {
		t.Fatalf("zero likes should not render a like count")
	}
}

func TestEditorFinished_LoadsDraft(t *testing.T) {
	m := newCard(&stubComments{}).WithEditor(editor.NewEnvEditor())
	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte("  written elsewhere \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, _ = m.Update(editorFinishedMsg{commentID: "c1", tmpPath: path})
	if m.Draft() != "written elsewhere" || m.Err() != "" {
		t.Fatalf("expected draft from editor, got %q (err %q)", m.Draft(), m.Err())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed")
	}
}

func TestEditorFinished_ErrorKeepsDraft(t *testing.T) {
	m := newCard(&stubComments{}).WithEditor(editor.NewEnvEditor())
	m = typeText(m, "keep me")
	m, _ = m.Update(editorFinishedMsg{commentID: "c1", err: errors.New("exit status 1")})
	if m.Draft() != "keep me" || !strings.Contains(m.Err(), "Editor failed") {
		t.Fatalf("unexpected state: draft=%q err=%q", m.Draft(), m.Err())
	}
}
