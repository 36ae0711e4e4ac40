package dashboard

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/igreply/tui/card"
	"github.com/CrestNiraj12/igreply/tui/common"
)

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case accountsLoadedMsg:
		return m.handleAccountsLoaded(msg)

	case commentsLoadedMsg:
		return m.handleCommentsLoaded(msg), nil

	case pollTickMsg:
		return m.handlePollTick(msg)

	case syncResultMsg:
		return m.handleSyncResult(msg)

	case AccountAddedMsg:
		return m, m.loadAccounts(msg.ID)

	case card.RefreshMsg:
		return m.refresh()

	case card.ReplyResultMsg:
		return m.updateCard(msg.CommentID, msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Remaining messages (cursor blink, editor results) go to the focused
	// inputs.
	if m.filtering {
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	if c, ok := m.selectedCard(); ok {
		return m.updateCard(c.Comment().ID, msg)
	}
	return m, nil
}

func (m Model) handleAccountsLoaded(msg accountsLoadedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.err = common.ErrorText(msg.err, common.FallbackLoadAccounts)
		return m, nil
	}
	m.accountList = msg.accounts

	target := ""
	switch {
	case m.hasAccount(msg.selectID):
		target = msg.selectID
	case m.hasAccount(m.selectedID):
		target = m.selectedID
	case m.hasAccount(m.preferredID):
		target = m.preferredID
	case len(m.accountList) > 0:
		target = m.accountList[0].ID
	}

	if target == m.selectedID {
		return m, nil
	}
	return m.selectAccount(target)
}

// selectAccount makes id the selection, drops the old comment list, restarts
// polling and fetches immediately. An empty id stops polling.
func (m Model) selectAccount(id string) (Model, tea.Cmd) {
	m.selectedID = id
	m.items = nil
	m.cards = map[string]card.Model{}
	m.cursor = 0
	m.err = ""
	m.syncErr = ""
	m.pollGen++

	if id == "" {
		m.loading = false
		return m, selectionChanged(id)
	}

	m.reqSeq++
	m.loading = true
	return m, tea.Batch(
		m.fetchComments(id, m.reqSeq),
		m.scheduleTick(m.pollGen),
		selectionChanged(id),
	)
}

func (m Model) handleCommentsLoaded(msg commentsLoadedMsg) Model {
	if msg.accountID != m.selectedID || msg.reqSeq != m.reqSeq {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.err = common.ErrorText(msg.err, common.FallbackLoadComments)
		return m
	}
	m.err = ""
	m.items = msg.comments

	cards := make(map[string]card.Model, len(msg.comments))
	for _, c := range msg.comments {
		if existing, ok := m.cards[c.ID]; ok {
			cards[c.ID] = existing.WithComment(c)
			continue
		}
		cards[c.ID] = card.New(c, m.comments, m.selectedID).WithEditor(m.editor)
	}
	m.cards = cards
	m.clampCursor()
	return m
}

func (m Model) handlePollTick(msg pollTickMsg) (Model, tea.Cmd) {
	if msg.gen != m.pollGen || m.selectedID == "" {
		return m, nil
	}
	next := m.scheduleTick(m.pollGen)
	if m.loading || m.syncing {
		return m, next
	}
	m.reqSeq++
	m.loading = true
	return m, tea.Batch(m.fetchComments(m.selectedID, m.reqSeq), next)
}

// refresh re-fetches comments for the selection. A newer fetch supersedes
// any in flight.
func (m Model) refresh() (Model, tea.Cmd) {
	if m.selectedID == "" {
		return m, nil
	}
	m.reqSeq++
	m.loading = true
	return m, m.fetchComments(m.selectedID, m.reqSeq)
}

func (m Model) startSync() (Model, tea.Cmd) {
	if m.syncing {
		return m, nil
	}
	if m.selectedID == "" {
		return m, common.Alert(noAccountText)
	}
	m.syncing = true
	m.syncErr = ""
	return m, m.syncComments(m.selectedID)
}

func (m Model) handleSyncResult(msg syncResultMsg) (Model, tea.Cmd) {
	m.syncing = false

	var report tea.Cmd
	if msg.err != nil {
		m.syncErr = common.ErrorText(msg.err, common.FallbackSync)
	} else {
		report = common.Alert(common.SyncSummary(msg.result))
	}

	if msg.accountID != m.selectedID {
		return m, report
	}
	m, fetch := m.refresh()
	return m, tea.Batch(fetch, report)
}

func (m Model) updateCard(id string, msg tea.Msg) (Model, tea.Cmd) {
	c, ok := m.cards[id]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	c, cmd = c.Update(msg)
	m.cards[id] = c
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) cycleAccount(step int) (Model, tea.Cmd) {
	n := len(m.accountList)
	if n < 2 {
		return m, nil
	}
	idx := 0
	for i, a := range m.accountList {
		if a.ID == m.selectedID {
			idx = i
			break
		}
	}
	next := m.accountList[((idx+step)%n+n)%n]
	return m.selectAccount(next.ID)
}
