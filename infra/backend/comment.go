package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/igreply/app"
	"github.com/CrestNiraj12/igreply/domain"
)

const (
	defaultCommentLimit = 100
	defaultSyncLimit    = 10
)

// commentService implements app.CommentService against the backend.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the REST API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

func accountQuery(accountID string) url.Values {
	q := url.Values{}
	if accountID != "" {
		q.Set("account_id", accountID)
	}
	return q
}

func commentPath(id string) string {
	return "/api/comments/" + url.PathEscape(id)
}

func (s *commentService) ListComments(ctx context.Context, cq app.CommentQuery) ([]domain.Comment, error) {
	limit := cq.Limit
	if limit <= 0 {
		limit = defaultCommentLimit
	}
	offset := max(cq.Offset, 0)

	q := accountQuery(cq.AccountID)
	if cq.PostID != "" {
		q.Set("post_id", cq.PostID)
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	data, err := s.client.Get(ctx, "/api/comments", q)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}

	var comments []wireComment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}

	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, mapComment(c))
	}
	return out, nil
}

func (s *commentService) GetComment(ctx context.Context, id, accountID string) (domain.Comment, error) {
	data, err := s.client.Get(ctx, commentPath(id), accountQuery(accountID))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("fetching comment: %w", err)
	}

	var c wireComment
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment: %w", err)
	}
	return mapComment(c), nil
}

func (s *commentService) DeleteComment(ctx context.Context, id, accountID string) error {
	if _, err := s.client.Delete(ctx, commentPath(id), accountQuery(accountID)); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

func (s *commentService) Reply(ctx context.Context, commentID, message, accountID string) (domain.ReplyAck, error) {
	body := map[string]string{"message": message}
	data, err := s.client.Post(ctx, commentPath(commentID)+"/reply", accountQuery(accountID), body)
	if err != nil {
		return domain.ReplyAck{}, fmt.Errorf("replying to comment: %w", err)
	}

	var ack wireReplyAck
	if err := json.Unmarshal(data, &ack); err != nil {
		return domain.ReplyAck{}, fmt.Errorf("parsing reply response: %w", err)
	}
	return domain.ReplyAck{
		Success:     ack.Success,
		InstagramID: ack.InstagramID,
		Note:        ack.Note,
	}, nil
}

func (s *commentService) Sync(ctx context.Context, sq app.SyncQuery) (domain.SyncResult, error) {
	limit := sq.Limit
	if limit <= 0 {
		limit = defaultSyncLimit
	}

	q := accountQuery(sq.AccountID)
	if sq.MediaID != "" {
		q.Set("media_id", sq.MediaID)
	}
	q.Set("limit", strconv.Itoa(limit))

	data, err := s.client.Post(ctx, "/api/comments/sync", q, nil)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("syncing comments: %w", err)
	}

	var res wireSyncResult
	if err := json.Unmarshal(data, &res); err != nil {
		return domain.SyncResult{}, fmt.Errorf("parsing sync response: %w", err)
	}
	return domain.SyncResult{
		Success:     res.Success,
		SyncedCount: res.SyncedCount,
		Message:     res.Message,
	}, nil
}
