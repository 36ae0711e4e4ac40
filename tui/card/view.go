package card

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/igreply/tui/common"
)

// View renders the card. width is the available content width; 0 disables
// wrapping hints.
func (m Model) View(selected bool, width int) string {
	var b strings.Builder

	c := m.comment
	header := common.AuthorStyle.Render("@" + c.Username)
	if c.LikeCount > 0 {
		header += "  " + common.LikeStyle.Render(fmt.Sprintf("♥ %d", c.LikeCount))
	}
	if ts := common.FormatTime(c.CreatedAt); ts != "" {
		header += "  " + common.TimestampStyle.Render(ts)
	}
	b.WriteString(header + "\n")
	b.WriteString(common.ContentStyle.Width(max(width, 0)).Render(c.Text))

	for _, r := range c.Replies {
		line := "↳ @" + r.Username + " " + r.Text
		b.WriteString("\n" + common.ReplyStyle.Render(common.Truncate(line, width-2)))
	}

	if m.replying {
		b.WriteString("\n\n" + m.draft.View())
		if m.err != "" {
			b.WriteString("\n" + common.ErrorStyle.Render(m.err))
		}
		hint := "ctrl+d: send • esc: cancel"
		if m.editor != nil {
			hint = "ctrl+d: send • ctrl+e: $EDITOR • esc: cancel"
		}
		if m.submitting {
			hint = "Sending..."
		}
		b.WriteString("\n" + common.TimestampStyle.Render(hint))
	}

	if selected {
		return common.SelectedStyle.Render(b.String())
	}
	return common.UnselectedStyle.Render(b.String())
}
