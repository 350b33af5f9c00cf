package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

const commentColumns = `id, parent_id, post_id, member_id, content, cue, status, counters, edit_history, created, last_edited`

func (s *Storage) CreateComment(ctx context.Context, c *domain.Comment) error {
	cue := c.Cue
	if cue == nil {
		cue = []domain.MemberId{}
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (id, parent_id, post_id, member_id, content, cue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created, last_edited`,
		c.Id, c.ParentId, c.PostId, c.MemberId, c.Content, pq.Array(cue), c.Status,
	).Scan(&c.CreatedTime, &c.LastEditedTime)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// ListComments returns the direct children of parentId, oldest first.
func (s *Storage) ListComments(ctx context.Context, parentId string, limit int) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE parent_id = $1 ORDER BY created, id LIMIT $2",
		parentId, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

// EditComment replaces content and cue and appends the edit to the history.
// Deleted comments cannot be edited.
func (s *Storage) EditComment(ctx context.Context, id domain.CommentId, edit domain.CommentEdit) error {
	if edit.Cue == nil {
		edit.Cue = []domain.MemberId{}
	}
	entry, err := json.Marshal([]domain.CommentEdit{edit})
	if err != nil {
		return fmt.Errorf("failed to encode edit: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE comments
		SET content = $2, cue = $3, status = $4, last_edited = $5,
			edit_history = edit_history || $6::jsonb
		WHERE id = $1 AND status >= 0`,
		id, edit.Content, pq.Array(edit.Cue), domain.StatusEdited, edit.EditedTime, entry)
	if err != nil {
		return fmt.Errorf("failed to edit comment: %w", err)
	}
	return requireAffected(res, internal_errors.Forbidden("Comment is deleted"))
}

// DeleteComment marks the comment deleted. Only the first call succeeds.
func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE comments SET status = $2 WHERE id = $1 AND status >= 0",
		id, domain.StatusDeleted)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireAffected(res, internal_errors.Forbidden("Comment is already deleted"))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var (
		c        domain.Comment
		cue      []string
		counters []byte
		history  []byte
	)
	if err := row.Scan(&c.Id, &c.ParentId, &c.PostId, &c.MemberId, &c.Content, pq.Array(&cue),
		&c.Status, &counters, &history, &c.CreatedTime, &c.LastEditedTime); err != nil {
		return nil, err
	}
	c.Cue = cue

	var err error
	if c.Counters, err = scanCounters(counters); err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &c.EditHistory); err != nil {
			return nil, fmt.Errorf("failed to decode edit history: %w", err)
		}
	}
	return &c, nil
}

func requireAffected(res sql.Result, notAffected error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notAffected
	}
	return nil
}
