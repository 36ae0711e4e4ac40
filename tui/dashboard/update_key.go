package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if c, ok := m.selectedCard(); ok && c.Replying() {
		return m.updateCard(c.Comment().ID, msg)
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.loading || m.syncing {
			return m, nil
		}
		return m.refresh()

	case key.Matches(msg, m.keys.Sync):
		return m.startSync()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Reply):
		c, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		c, cmd := c.OpenReply()
		m.cards[c.Comment().ID] = c
		return m, cmd

	case key.Matches(msg, m.keys.AddAccount):
		return m, func() tea.Msg { return OpenFormMsg{} }

	case key.Matches(msg, m.keys.NextAccount):
		return m.cycleAccount(1)

	case key.Matches(msg, m.keys.PrevAccount):
		return m.cycleAccount(-1)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.filter.Value() != "" {
			m.filter.Reset()
			m.clampCursor()
		}
		return m, nil
	}

	return m, nil
}

// handleFilterKey edits the search box. enter keeps the filter, esc clears it.
func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}
