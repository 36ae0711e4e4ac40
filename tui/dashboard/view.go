package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/tui/common"
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(" " + m.filter.View() + "\n")
	}

	if msg := m.Err(); msg != "" {
		b.WriteString(" " + common.ErrorStyle.Render("Error: "+msg) + "\n")
	}

	b.WriteString(m.renderBody())
	b.WriteString("\n" + common.StatusBarStyle.Render(m.renderHelp()))
	return b.String()
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render(domain.AppTitle)

	label := common.TaglineStyle.Render("no account, press a to add one")
	if a, ok := m.selectedAccount(); ok {
		label = common.AccountStyle.Render(a.Label())
		if len(m.accountList) > 1 {
			label += common.TaglineStyle.Render(fmt.Sprintf("[ ] switch (%d accounts)", len(m.accountList)))
		}
	}

	status := ""
	switch {
	case m.syncing:
		status = m.spinner.View() + " Syncing..."
	case m.loading && len(m.items) > 0:
		status = m.spinner.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", label, "  ", status)
}

func (m Model) renderBody() string {
	if m.selectedID == "" {
		return ""
	}
	if m.loading && len(m.items) == 0 {
		return " " + m.spinner.View() + " Loading comments...\n"
	}

	visible := m.Visible()
	count := fmt.Sprintf("%d comments", len(m.items))
	if m.filter.Value() != "" {
		count = fmt.Sprintf("%d of %d comments", len(visible), len(m.items))
	}
	out := " " + common.TimestampStyle.Render(count) + "\n"

	if len(visible) == 0 {
		empty := "No comments."
		if len(m.items) > 0 {
			empty = "No matching comments."
		}
		return out + " " + common.ContentStyle.Render(empty) + "\n"
	}

	width := m.width - 4
	rendered := make([]string, len(visible))
	for i, c := range visible {
		cm, ok := m.cards[c.ID]
		if !ok {
			continue
		}
		rendered[i] = cm.View(i == m.cursor, width)
	}
	return out + strings.Join(m.window(rendered), "\n") + "\n"
}

// window returns the slice of rendered cards that fits the terminal height
// while keeping the cursor card on screen.
func (m Model) window(rendered []string) []string {
	budget := m.height - 8
	if m.height == 0 || budget <= 0 || m.cursor >= len(rendered) {
		return rendered
	}

	start, end := m.cursor, m.cursor+1
	used := lipgloss.Height(rendered[m.cursor])
	for end < len(rendered) {
		h := lipgloss.Height(rendered[end])
		if used+h > budget {
			break
		}
		used += h
		end++
	}
	for start > 0 {
		h := lipgloss.Height(rendered[start-1])
		if used+h > budget {
			break
		}
		used += h
		start--
	}
	return rendered[start:end]
}

func (m Model) renderHelp() string {
	if m.filtering {
		return "  enter: apply • esc: clear"
	}
	if c, ok := m.selectedCard(); ok && c.Replying() {
		return "  writing a reply"
	}
	return "  j/k: move • c: reply • /: search • r: refresh • s: sync • a: add account • q: quit"
}
