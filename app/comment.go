package app

import (
	"context"

	"github.com/CrestNiraj12/igreply/domain"
)

// CommentQuery selects a page of comments. Empty ids are omitted.
type CommentQuery struct {
	AccountID string
	PostID    string
	Limit     int
	Offset    int
}

// SyncQuery scopes a synchronization run. Empty ids are omitted.
type SyncQuery struct {
	AccountID string
	MediaID   string
	Limit     int
}

// CommentService reads, answers and synchronizes comments.
type CommentService interface {
	ListComments(ctx context.Context, q CommentQuery) ([]domain.Comment, error)
	GetComment(ctx context.Context, id, accountID string) (domain.Comment, error)
	DeleteComment(ctx context.Context, id, accountID string) error

	// Reply posts message as a reply to the comment.
	Reply(ctx context.Context, commentID, message, accountID string) (domain.ReplyAck, error)

	// Sync pulls new comments from the platform into backend storage.
	Sync(ctx context.Context, q SyncQuery) (domain.SyncResult, error)
}
