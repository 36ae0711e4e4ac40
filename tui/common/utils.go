package common

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// FormatTime renders a timestamp for display. Zero times render as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

// Truncate cuts s to width terminal cells, appending an ellipsis when cut.
// Newlines are flattened so the result always fits one line.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
