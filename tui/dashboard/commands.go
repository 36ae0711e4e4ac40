package dashboard

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/app"
)

func (m Model) loadAccounts(selectID string) tea.Cmd {
	accounts := m.accounts
	return func() tea.Msg {
		list, err := accounts.ListAccounts(context.Background())
		if err != nil {
			log.Printf("load accounts: %v", err)
		}
		return accountsLoadedMsg{accounts: list, selectID: selectID, err: err}
	}
}

func (m Model) fetchComments(accountID string, seq int) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		list, err := comments.ListComments(context.Background(), app.CommentQuery{
			AccountID: accountID,
			Limit:     commentLimit,
		})
		if err != nil {
			log.Printf("load comments account=%s: %v", accountID, err)
		}
		return commentsLoadedMsg{accountID: accountID, reqSeq: seq, comments: list, err: err}
	}
}

func (m Model) syncComments(accountID string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		res, err := comments.Sync(context.Background(), app.SyncQuery{
			AccountID: accountID,
			Limit:     syncLimit,
		})
		if err != nil {
			log.Printf("sync account=%s: %v", accountID, err)
		}
		return syncResultMsg{accountID: accountID, result: res, err: err}
	}
}

func (m Model) scheduleTick(gen int) tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func selectionChanged(id string) tea.Cmd {
	return func() tea.Msg { return SelectionChangedMsg{AccountID: id} }
}
