package domain

import (
	"strings"
	"time"
)

// Comment is a platform comment attached to a post.
type Comment struct {
	ID        string
	PostID    string
	Text      string
	Username  string
	Timestamp time.Time
	CreatedAt time.Time
	LikeCount int
	Replies   []Reply
}

// Reply is a reply the backend recorded under a comment.
type Reply struct {
	ID        string
	Text      string
	Username  string
	Timestamp time.Time
	CreatedAt time.Time
}

// ReplyAck is the backend acknowledgement of a posted reply.
type ReplyAck struct {
	Success     bool
	InstagramID string
	Note        string
}

// SyncResult summarizes a backend synchronization run.
type SyncResult struct {
	Success     bool
	SyncedCount int
	Message     string
}

// NoMediaMarker is the prefix the backend uses when an account has no importable media.
const NoMediaMarker = "No media found"

// NoMedia reports whether the sync came back empty because no media was visible.
func (r SyncResult) NoMedia() bool {
	return r.SyncedCount == 0 && strings.Contains(r.Message, NoMediaMarker)
}

// Matches reports whether the comment's text or username contains filter,
// ignoring case. An empty filter matches everything.
func (c Comment) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(c.Text), f) ||
		strings.Contains(strings.ToLower(c.Username), f)
}

// FilterComments returns the comments matching filter, preserving order.
// The input slice is returned unchanged when filter is empty.
func FilterComments(comments []Comment, filter string) []Comment {
	if filter == "" {
		return comments
	}
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.Matches(filter) {
			out = append(out, c)
		}
	}
	return out
}
