package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plaza-dev/plaza/shared/domain"
)

// GetAttitude returns the member's record for the post, or a neutral record
// if none exists yet.
func (s *Storage) GetAttitude(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error) {
	record, err := s.getAttitude(ctx, s.db, memberId, postId, false)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.AttitudeRecord{
			MemberId:               memberId,
			PostId:                 postId,
			CommentAttitudeMapping: map[domain.CommentId]domain.Attitude{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attitude record: %w", err)
	}
	return record, nil
}

// UpdateAttitude reads the slot selected by commentId (empty for the post
// itself) under a row lock, passes it to decide and stores the returned
// value. Concurrent requests of one member on one post are serialised.
func (s *Storage) UpdateAttitude(
	ctx context.Context,
	memberId domain.MemberId,
	postId domain.PostId,
	commentId domain.CommentId,
	decide func(previous domain.Attitude) (domain.Attitude, error),
) error {
	return s.withTx(ctx, func(q Querier) error {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO attitudes (member_id, post_id) VALUES ($1, $2)
			ON CONFLICT (member_id, post_id) DO NOTHING`,
			memberId, postId); err != nil {
			return fmt.Errorf("failed to create attitude record: %w", err)
		}

		record, err := s.getAttitude(ctx, q, memberId, postId, true)
		if err != nil {
			return fmt.Errorf("failed to lock attitude record: %w", err)
		}

		next, err := decide(record.Get(commentId))
		if err != nil {
			return err
		}
		record.Set(commentId, next)

		mapping, err := json.Marshal(record.CommentAttitudeMapping)
		if err != nil {
			return fmt.Errorf("failed to encode comment attitudes: %w", err)
		}
		if _, err := q.ExecContext(ctx, `
			UPDATE attitudes SET attitude = $3, comment_attitudes = $4::jsonb, updated = now()
			WHERE member_id = $1 AND post_id = $2`,
			memberId, postId, record.Attitude, mapping); err != nil {
			return fmt.Errorf("failed to update attitude record: %w", err)
		}
		return nil
	})
}

func (s *Storage) getAttitude(ctx context.Context, q Querier, memberId domain.MemberId, postId domain.PostId, forUpdate bool) (*domain.AttitudeRecord, error) {
	query := "SELECT attitude, comment_attitudes FROM attitudes WHERE member_id = $1 AND post_id = $2"
	if forUpdate {
		query += " FOR UPDATE"
	}

	record := domain.AttitudeRecord{MemberId: memberId, PostId: postId}
	var mapping []byte
	if err := q.QueryRowContext(ctx, query, memberId, postId).Scan(&record.Attitude, &mapping); err != nil {
		return nil, err
	}
	record.CommentAttitudeMapping = map[domain.CommentId]domain.Attitude{}
	if len(mapping) > 0 {
		if err := json.Unmarshal(mapping, &record.CommentAttitudeMapping); err != nil {
			return nil, fmt.Errorf("failed to decode comment attitudes: %w", err)
		}
	}
	return &record, nil
}
