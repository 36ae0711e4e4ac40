package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/infra/backend"
	"github.com/CrestNiraj12/igreply/tui/card"
)

var fastPoll = Options{PollInterval: time.Millisecond}

func runeKey(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestInit_SelectsFirstAccountAndFetches(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)

	if m.SelectedAccountID() != "a1" {
		t.Fatalf("expected first account selected, got %q", m.SelectedAccountID())
	}
	if len(comments.listed) != 1 || comments.listed[0].AccountID != "a1" || comments.listed[0].Limit != commentLimit {
		t.Fatalf("unexpected fetches: %#v", comments.listed)
	}
	if len(m.Comments()) != 2 || m.Loading() {
		t.Fatalf("expected comments loaded, got %d loading=%v", len(m.Comments()), m.Loading())
	}
}

func TestInit_PrefersRememberedAccount(t *testing.T) {
	opts := fastPoll
	opts.PreferredAccountID = "a2"
	m := loaded(t, &stubAccounts{list: testAccounts()}, &stubComments{byAccount: testComments()}, opts)
	if m.SelectedAccountID() != "a2" {
		t.Fatalf("expected remembered account, got %q", m.SelectedAccountID())
	}

	opts.PreferredAccountID = "gone"
	m = loaded(t, &stubAccounts{list: testAccounts()}, &stubComments{byAccount: testComments()}, opts)
	if m.SelectedAccountID() != "a1" {
		t.Fatalf("missing remembered account should fall back to first, got %q", m.SelectedAccountID())
	}
}

func TestInit_NoAccountsMeansNoFetch(t *testing.T) {
	comments := &stubComments{}
	m := loaded(t, &stubAccounts{}, comments, fastPoll)
	if m.SelectedAccountID() != "" || len(comments.listed) != 0 {
		t.Fatalf("expected no selection and no fetch")
	}
}

func TestAccountsLoadFailureSetsError(t *testing.T) {
	m := loaded(t, &stubAccounts{err: errors.New("boom")}, &stubComments{}, fastPoll)
	if m.Err() == "" {
		t.Fatalf("expected visible error")
	}
}

func TestSwitchAccount_ReplacesListWithNewAccountComments(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)

	m, cmd := m.Update(runeKey("]"))
	if m.SelectedAccountID() != "a2" || len(m.Comments()) != 0 || !m.Loading() {
		t.Fatalf("switch should clear the list and start loading")
	}
	m, msgs := drain(t, m, cmd)

	last := comments.listed[len(comments.listed)-1]
	if last.AccountID != "a2" {
		t.Fatalf("expected fetch for a2, got %q", last.AccountID)
	}
	if got := m.Comments(); len(got) != 1 || got[0].ID != "c3" {
		t.Fatalf("expected a2 comments, got %#v", got)
	}
	var changed bool
	for _, msg := range msgs {
		if sc, ok := msg.(SelectionChangedMsg); ok && sc.AccountID == "a2" {
			changed = true
		}
	}
	if !changed {
		t.Fatalf("expected SelectionChangedMsg")
	}

	m, _ = m.Update(runeKey("["))
	if m.SelectedAccountID() != "a1" {
		t.Fatalf("expected [ to go back to a1")
	}
}

func TestStaleCommentResponsesAreDiscarded(t *testing.T) {
	m := loaded(t, &stubAccounts{list: testAccounts()}, &stubComments{byAccount: testComments()}, fastPoll)
	m, _ = m.Update(runeKey("]")) // now a2, fetch in flight

	late := commentsLoadedMsg{accountID: "a1", reqSeq: m.reqSeq - 1, comments: testComments()["a1"]}
	m, _ = m.Update(late)
	if len(m.Comments()) != 0 || !m.Loading() {
		t.Fatalf("response for previous account must be dropped")
	}

	old := commentsLoadedMsg{accountID: "a2", reqSeq: m.reqSeq - 1, comments: []domain.Comment{{ID: "old"}}}
	m, _ = m.Update(old)
	if len(m.Comments()) != 0 {
		t.Fatalf("superseded response must be dropped")
	}

	current := commentsLoadedMsg{accountID: "a2", reqSeq: m.reqSeq, comments: testComments()["a2"]}
	m, _ = m.Update(current)
	if len(m.Comments()) != 1 || m.Loading() {
		t.Fatalf("current response should apply")
	}
}

func TestPollTick_FetchesAndReschedules(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
	before := len(comments.listed)

	m, cmd := m.Update(pollTickMsg{gen: m.pollGen})
	_, msgs := drain(t, m, cmd)
	if len(comments.listed) != before+1 {
		t.Fatalf("expected poll fetch")
	}
	var rescheduled bool
	for _, msg := range msgs {
		if tick, ok := msg.(pollTickMsg); ok && tick.gen == m.pollGen {
			rescheduled = true
		}
	}
	if !rescheduled {
		t.Fatalf("expected next tick scheduled")
	}
}

func TestPollTick_OldGenerationDropped(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
	gen := m.pollGen
	m, cmd := m.Update(runeKey("]"))
	m, _ = drain(t, m, cmd)
	if m.pollGen != gen+1 {
		t.Fatalf("selection change must bump poll generation")
	}
	before := len(comments.listed)

	m, cmd = m.Update(pollTickMsg{gen: gen})
	if cmd != nil || len(comments.listed) != before {
		t.Fatalf("tick from previous selection must be ignored")
	}
}

func TestPollTick_SkippedWhileLoading(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
	m, _ = m.Update(runeKey("r"))
	seq := m.reqSeq

	m, cmd := m.Update(pollTickMsg{gen: m.pollGen})
	if m.reqSeq != seq || cmd == nil {
		t.Fatalf("tick during a fetch should only reschedule")
	}
}

func TestSync_WithoutAccountAlertsAndSkipsCall(t *testing.T) {
	comments := &stubComments{}
	m := loaded(t, &stubAccounts{}, comments, fastPoll)

	m, cmd := m.Update(runeKey("s"))
	_, msgs := drain(t, m, cmd)
	if got := alerts(msgs); len(got) != 1 || got[0] != noAccountText {
		t.Fatalf("expected select-account alert, got %v", got)
	}
	if len(comments.synced) != 0 || m.Syncing() {
		t.Fatalf("sync endpoint must not be called")
	}
}

func TestSync_SummaryAndRefetch(t *testing.T) {
	tests := []struct {
		name     string
		result   domain.SyncResult
		wantHelp bool
	}{
		{
			name:     "no media diagnostic",
			result:   domain.SyncResult{Success: true, SyncedCount: 0, Message: "No media found for this account"},
			wantHelp: true,
		},
		{
			name:   "imported count",
			result: domain.SyncResult{Success: true, SyncedCount: 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			comments := &stubComments{byAccount: testComments(), syncRes: tc.result}
			m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
			before := len(comments.listed)

			m, cmd := m.Update(runeKey("s"))
			if !m.Syncing() {
				t.Fatalf("expected syncing")
			}
			m, again := m.Update(runeKey("s"))
			if again != nil {
				t.Fatalf("second sync while in flight must be ignored")
			}
			m, msgs := drain(t, m, cmd)

			if len(comments.synced) != 1 || comments.synced[0].AccountID != "a1" || comments.synced[0].Limit != syncLimit {
				t.Fatalf("unexpected sync calls: %#v", comments.synced)
			}
			if len(comments.listed) != before+1 {
				t.Fatalf("sync should re-fetch comments")
			}
			got := alerts(msgs)
			if len(got) != 1 {
				t.Fatalf("expected one summary alert, got %v", got)
			}
			wantCount := "Imported " + map[bool]string{true: "0", false: "5"}[tc.wantHelp] + " comments."
			if !strings.Contains(got[0], wantCount) {
				t.Fatalf("summary %q missing %q", got[0], wantCount)
			}
			if strings.Contains(got[0], "Business account") != tc.wantHelp {
				t.Fatalf("diagnostic presence mismatch in %q", got[0])
			}
			if m.Syncing() {
				t.Fatalf("syncing flag should clear")
			}
		})
	}
}

func TestSync_FailureSetsErrorAndStillRefetches(t *testing.T) {
	comments := &stubComments{
		byAccount: testComments(),
		syncErr:   &backend.APIError{Status: 500, Detail: "Instagram token expired"},
	}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
	before := len(comments.listed)

	m, cmd := m.Update(runeKey("s"))
	m, msgs := drain(t, m, cmd)
	if len(alerts(msgs)) != 0 {
		t.Fatalf("sync failure uses the error region, not an alert")
	}
	if m.Err() != "Instagram token expired" {
		t.Fatalf("unexpected error region: %q", m.Err())
	}
	if len(comments.listed) != before+1 {
		t.Fatalf("sync completion should re-fetch comments")
	}
}

func TestRefreshIgnoredWhileSyncing(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
	m, _ = m.Update(runeKey("s"))
	seq := m.reqSeq
	m, cmd := m.Update(runeKey("r"))
	if cmd != nil || m.reqSeq != seq {
		t.Fatalf("refresh must be ignored during sync")
	}
}

func TestLoadFailureShowsDetail(t *testing.T) {
	comments := &stubComments{listErr: &backend.APIError{Status: 404, Detail: "Account not found"}}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)
	if m.Err() != "Account not found" || m.Loading() {
		t.Fatalf("unexpected state err=%q loading=%v", m.Err(), m.Loading())
	}
}

func TestFilter_NarrowsVisibleComments(t *testing.T) {
	m := loaded(t, &stubAccounts{list: testAccounts()}, &stubComments{byAccount: testComments()}, fastPoll)

	m, _ = m.Update(runeKey("/"))
	if !m.Capturing() {
		t.Fatalf("filter input should capture keys")
	}
	m, _ = m.Update(runeKey("BOB"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Visible(); len(got) != 1 || got[0].ID != "c2" {
		t.Fatalf("expected only bob's comment, got %#v", got)
	}
	if len(m.Comments()) != 2 {
		t.Fatalf("filter must not change the underlying list")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.Visible()) != 2 {
		t.Fatalf("esc should clear the filter")
	}
}

func TestAccountAdded_ReloadsAndSelectsNewAccount(t *testing.T) {
	accounts := &stubAccounts{list: testAccounts()}
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, accounts, comments, fastPoll)

	accounts.list = append(accounts.list, domain.Account{ID: "a3", Name: "New"})
	m, cmd := m.Update(AccountAddedMsg{ID: "a3"})
	m, _ = drain(t, m, cmd)
	if m.SelectedAccountID() != "a3" || len(m.Accounts()) != 3 {
		t.Fatalf("expected new account selected, got %q", m.SelectedAccountID())
	}
	if last := comments.listed[len(comments.listed)-1]; last.AccountID != "a3" {
		t.Fatalf("expected fetch for new account")
	}
}

func TestRefreshRequestKeepsOpenDrafts(t *testing.T) {
	comments := &stubComments{byAccount: testComments()}
	m := loaded(t, &stubAccounts{list: testAccounts()}, comments, fastPoll)

	m, _ = m.Update(runeKey("j"))
	m, _ = m.Update(runeKey("c"))
	m, _ = m.Update(runeKey("draft"))
	if !m.Capturing() {
		t.Fatalf("open reply form should capture keys")
	}
	m, _ = m.Update(runeKey("k"))
	if m.cursor != 1 {
		t.Fatalf("keys must go to the reply form while it is open")
	}

	before := len(comments.listed)
	m, cmd := m.Update(card.RefreshMsg{CommentID: "c1"})
	m, _ = drain(t, m, cmd)
	if len(comments.listed) != before+1 {
		t.Fatalf("refresh request should re-fetch")
	}
	if got := m.cards["c2"].Draft(); got != "draftk" {
		t.Fatalf("draft should survive a re-fetch, got %q", got)
	}
}

func TestView_States(t *testing.T) {
	m := loaded(t, &stubAccounts{}, &stubComments{}, fastPoll)
	if !strings.Contains(m.View(), "press a to add one") {
		t.Fatalf("expected empty-account hint")
	}

	m = loaded(t, &stubAccounts{list: testAccounts()}, &stubComments{byAccount: map[string][]domain.Comment{}}, fastPoll)
	if !strings.Contains(m.View(), "No comments.") {
		t.Fatalf("expected empty comment state")
	}

	m = loaded(t, &stubAccounts{list: testAccounts()}, &stubComments{byAccount: testComments()}, fastPoll)
	out := m.View()
	for _, want := range []string{"Shop (@shop)", "2 comments", "@alice", "Love this"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	m, _ = m.Update(runeKey("/"))
	m, _ = m.Update(runeKey("zzz"))
	if !strings.Contains(m.View(), "No matching comments.") {
		t.Fatalf("expected no-match state")
	}
}
