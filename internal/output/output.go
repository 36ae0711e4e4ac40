package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/CrestNiraj12/igreply/domain"
)

// ErrInvalidFormat is returned for an unknown --format value.
var ErrInvalidFormat = errors.New("invalid --format value (want json or plain)")

// DefaultFormat is plain on a terminal and json when piped.
func DefaultFormat() string {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "plain"
	}
	return "json"
}

// Normalize lowercases format and fills in the default. It fails on values
// other than json and plain.
func Normalize(format string) (string, error) {
	format = strings.TrimSpace(strings.ToLower(format))
	if format == "" {
		format = DefaultFormat()
	}
	switch format {
	case "json", "plain":
		return format, nil
	}
	return "", ErrInvalidFormat
}

type accountRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"user_id,omitempty"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	IsActive  bool   `json:"is_active"`
}

type replyRow struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

type commentRow struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id,omitempty"`
	Text      string     `json:"text"`
	Username  string     `json:"username"`
	CreatedAt string     `json:"created_at,omitempty"`
	LikeCount int        `json:"like_count"`
	Replies   []replyRow `json:"replies"`
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Accounts prints the account list.
func Accounts(w io.Writer, accounts []domain.Account, format string) error {
	if format == "json" {
		rows := make([]accountRow, 0, len(accounts))
		for _, a := range accounts {
			rows = append(rows, accountRow{
				ID: a.ID, Name: a.Name, UserID: a.UserID, Username: a.Username,
				CreatedAt: stamp(a.CreatedAt), IsActive: a.IsActive,
			})
		}
		return printJSON(w, map[string]any{"accounts": rows})
	}

	for _, a := range accounts {
		active := ""
		if !a.IsActive {
			active = " (inactive)"
		}
		if _, err := fmt.Fprintf(w, "%s %s%s\n", a.ID, a.Label(), active); err != nil {
			return err
		}
	}
	return nil
}

// Comments prints comments with their replies.
func Comments(w io.Writer, comments []domain.Comment, format string) error {
	if format == "json" {
		rows := make([]commentRow, 0, len(comments))
		for _, c := range comments {
			row := commentRow{
				ID: c.ID, PostID: c.PostID, Text: c.Text, Username: c.Username,
				CreatedAt: stamp(c.CreatedAt), LikeCount: c.LikeCount,
				Replies: make([]replyRow, 0, len(c.Replies)),
			}
			for _, r := range c.Replies {
				row.Replies = append(row.Replies, replyRow{
					ID: r.ID, Text: r.Text, Username: r.Username, CreatedAt: stamp(r.CreatedAt),
				})
			}
			rows = append(rows, row)
		}
		return printJSON(w, map[string]any{"comments": rows})
	}

	for _, c := range comments {
		line := fmt.Sprintf("%s @%s", c.ID, c.Username)
		if c.LikeCount > 0 {
			line += fmt.Sprintf(" ♥%d", c.LikeCount)
		}
		if ts := stamp(c.CreatedAt); ts != "" {
			line += " " + ts
		}
		if _, err := fmt.Fprintf(w, "%s\n  %s\n", line, flatten(c.Text)); err != nil {
			return err
		}
		for _, r := range c.Replies {
			if _, err := fmt.Fprintf(w, "  ↳ @%s %s\n", r.Username, flatten(r.Text)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sync prints a sync summary.
func Sync(w io.Writer, res domain.SyncResult, format string) error {
	if format == "json" {
		return printJSON(w, map[string]any{
			"success":      res.Success,
			"synced_count": res.SyncedCount,
			"message":      res.Message,
		})
	}
	_, err := fmt.Fprintf(w, "synced %d comments\n", res.SyncedCount)
	if err == nil && res.Message != "" {
		_, err = fmt.Fprintln(w, res.Message)
	}
	return err
}

// Reply prints a reply acknowledgement.
func Reply(w io.Writer, ack domain.ReplyAck, format string) error {
	if format == "json" {
		return printJSON(w, map[string]any{
			"success":      ack.Success,
			"instagram_id": ack.InstagramID,
			"note":         ack.Note,
		})
	}
	msg := "reply posted"
	if ack.InstagramID != "" {
		msg += " (" + ack.InstagramID + ")"
	}
	_, err := fmt.Fprintln(w, msg)
	if err == nil && ack.Note != "" {
		_, err = fmt.Fprintln(w, ack.Note)
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
