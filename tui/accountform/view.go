package accountform

import (
	"strings"

	"github.com/CrestNiraj12/igreply/domain"
	"github.com/CrestNiraj12/igreply/tui/common"
)

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render(domain.AppTitle))
	b.WriteString("  Add account\n\n")

	oauth, direct := common.ActionInactiveStyle, common.ActionActiveStyle
	if m.useOAuth {
		oauth, direct = common.ActionActiveStyle, common.ActionInactiveStyle
	}
	b.WriteString(oauth.Render("Instagram login") + direct.Render("Access token") + "\n\n")

	if m.useOAuth {
		switch {
		case m.handshaking:
			b.WriteString(common.ContentStyle.Render("Waiting for Instagram login in your browser..."))
		case m.submitting:
			b.WriteString(common.ContentStyle.Render("Getting login URL..."))
		default:
			b.WriteString(common.ContentStyle.Render("Press enter to log in with Instagram in your browser."))
		}
	} else {
		b.WriteString(m.name.View() + "\n")
		b.WriteString(m.token.View())
		if m.submitting {
			b.WriteString("\n\n" + common.ContentStyle.Render("Adding account..."))
		}
	}

	hint := "tab: switch method • enter: submit • esc: close"
	if m.handshaking {
		hint = "esc: cancel login"
	}
	b.WriteString("\n" + common.StatusBarStyle.Render(hint))
	return b.String()
}
