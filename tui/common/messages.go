package common

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/backend"
)

// AlertMsg asks the root model to show a blocking alert.
type AlertMsg struct {
	Text string
}

// Alert returns a Cmd that raises a blocking alert.
func Alert(text string) tea.Cmd {
	return func() tea.Msg { return AlertMsg{Text: text} }
}

// Generic messages used when the backend gives no detail.
const (
	FallbackLoadComments = "Failed to load comments."
	FallbackSync         = "Sync failed."
	FallbackAddAccount   = "Failed to add account."
	FallbackLoginURL     = "Failed to get the Instagram login URL."
	FallbackReply        = "Failed to post reply."
	FallbackLoadAccounts = "Failed to load accounts."
)

// ErrorText returns the backend-provided detail carried by err, or fallback.
func ErrorText(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

const noMediaHelp = "\n\n⚠ Important:\n" +
	"The Instagram Graph API only returns posts published after the account was converted to a Business account.\n\n" +
	"To fix this:\n" +
	"1. Publish a new post after converting to a Business account\n" +
	"2. Leave a comment on that post\n" +
	"3. Run sync again"

// SyncSummary renders the message shown after a completed sync.
func SyncSummary(res domain.SyncResult) string {
	msg := fmt.Sprintf("Sync complete! Imported %d comments.", res.SyncedCount)
	if res.NoMedia() {
		msg += noMediaHelp
	}
	return msg
}

// AccountAdded renders the confirmation for a newly linked account.
func AccountAdded(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Account added."
	}
	return "Account added: @" + username
}
