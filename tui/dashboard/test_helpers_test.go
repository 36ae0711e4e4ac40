package dashboard

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/tui/common"
)

type stubAccounts struct {
	list []domain.Account
	err  error
}

func (s *stubAccounts) ListAccounts(context.Context) ([]domain.Account, error) { return s.list, s.err }
func (s *stubAccounts) CreateAccount(context.Context, string, string) (domain.Account, error) {
	return domain.Account{}, nil
}
func (s *stubAccounts) AuthURL(context.Context) (domain.AuthURL, error) { return domain.AuthURL{}, nil }
func (s *stubAccounts) DeleteAccount(context.Context, string) error     { return nil }

type stubComments struct {
	mu        sync.Mutex
	byAccount map[string][]domain.Comment
	listErr   error
	listed    []app.CommentQuery
	synced    []app.SyncQuery
	syncRes   domain.SyncResult
	syncErr   error
}

func (s *stubComments) ListComments(_ context.Context, q app.CommentQuery) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listed = append(s.listed, q)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byAccount[q.AccountID], nil
}
func (s *stubComments) GetComment(context.Context, string, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}
func (s *stubComments) DeleteComment(context.Context, string, string) error { return nil }
func (s *stubComments) Reply(context.Context, string, string, string) (domain.ReplyAck, error) {
	return domain.ReplyAck{Success: true}, nil
}
func (s *stubComments) Sync(_ context.Context, q app.SyncQuery) (domain.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced = append(s.synced, q)
	return s.syncRes, s.syncErr
}

func testAccounts() []domain.Account {
	return []domain.Account{
		{ID: "a1", Name: "Shop", Username: "shop"},
		{ID: "a2", Name: "Cafe", Username: "cafe"},
	}
}

func testComments() map[string][]domain.Comment {
	return map[string][]domain.Comment{
		"a1": {
			{ID: "c1", Text: "Love this", Username: "alice"},
			{ID: "c2", Text: "Price?", Username: "bob"},
		},
		"a2": {
			{ID: "c3", Text: "Open on sunday?", Username: "carol"},
		},
	}
}

// drain executes cmd and everything it batches, feeding messages that belong
// to the dashboard back into Update. Ticks and spinner frames are collected
// instead of run.
func drain(t *testing.T, m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case accountsLoadedMsg, commentsLoadedMsg, syncResultMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
		out = append(out, msg)
	}
	return m, out
}

func alerts(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if a, ok := msg.(common.AlertMsg); ok {
			out = append(out, a.Text)
		}
	}
	return out
}

// loaded returns a dashboard that finished its initial account and comment
// loads.
func loaded(t *testing.T, accounts *stubAccounts, comments *stubComments, opts Options) Model {
	t.Helper()
	m := New(accounts, comments, opts)
	m, _ = drain(t, m, m.loadAccounts(""))
	return m
}
