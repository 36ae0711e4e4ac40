package backend

import (
	"strings"
	"time"

	"github.com/CrestNiraj12/igreply/domain"
)

// Wire shapes of the backend's JSON payloads.

type wireAccount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

type wireReply struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
	CreatedAt string `json:"created_at"`
}

type wireComment struct {
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	Text      string      `json:"text"`
	Username  string      `json:"username"`
	Timestamp string      `json:"timestamp"`
	CreatedAt string      `json:"created_at"`
	LikeCount *int        `json:"like_count"`
	Replies   []wireReply `json:"replies"`
}

type wireSyncResult struct {
	Success     bool   `json:"success"`
	SyncedCount int    `json:"synced_count"`
	Message     string `json:"message"`
}

type wireReplyAck struct {
	Success     bool   `json:"success"`
	InstagramID string `json:"instagram_id"`
	Note        string `json:"note"`
}

type wireAuthURL struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// Backend timestamps come from both Instagram (with zone offset, no colon)
// and the backend itself (naive ISO, sometimes with a trailing Z).
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTime returns the zero time for empty or unrecognized values.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapAccount(a wireAccount) domain.Account {
	return domain.Account{
		ID:        a.ID,
		Name:      a.Name,
		UserID:    a.UserID,
		Username:  a.Username,
		CreatedAt: parseTime(a.CreatedAt),
		IsActive:  a.IsActive,
	}
}

func mapComment(c wireComment) domain.Comment {
	out := domain.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Text:      c.Text,
		Username:  c.Username,
		Timestamp: parseTime(c.Timestamp),
		CreatedAt: parseTime(c.CreatedAt),
	}
	if c.LikeCount != nil {
		out.LikeCount = *c.LikeCount
	}
	if len(c.Replies) > 0 {
		out.Replies = make([]domain.Reply, 0, len(c.Replies))
		for _, r := range c.Replies {
			out.Replies = append(out.Replies, domain.Reply{
				ID:        r.ID,
				Text:      r.Text,
				Username:  r.Username,
				Timestamp: parseTime(r.Timestamp),
				CreatedAt: parseTime(r.CreatedAt),
			})
		}
	}
	return out
}
