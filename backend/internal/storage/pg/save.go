package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plaza-dev/plaza/shared/domain"
)

func (s *Storage) IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx,
		"SELECT is_active FROM saves WHERE member_id = $1 AND post_id = $2",
		memberId, postId).Scan(&active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get save record: %w", err)
	}
	return active, nil
}

// ToggleSave flips the save record and returns the new state. The first call
// for a pair creates an active record. created is the time of the latest
// save and survives an undo.
func (s *Storage) ToggleSave(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO saves AS s (member_id, post_id, is_active) VALUES ($1, $2, TRUE)
		ON CONFLICT (member_id, post_id) DO UPDATE SET
			is_active = NOT s.is_active,
			created = CASE WHEN s.is_active THEN s.created ELSE now() END
		RETURNING is_active`,
		memberId, postId).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("failed to toggle save: %w", err)
	}
	return active, nil
}
