package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

func (s *Storage) GetMember(ctx context.Context, id domain.MemberId) (*domain.Member, error) {
	return s.getMember(ctx, s.db, id)
}

func (s *Storage) getMember(ctx context.Context, q Querier, id domain.MemberId) (*domain.Member, error) {
	var m domain.Member
	err := q.QueryRowContext(ctx,
		"SELECT id, nickname, status, created FROM members WHERE id = $1", id,
	).Scan(&m.Id, &m.Nickname, &m.Status, &m.CreatedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Member not found")
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

// SaveMember inserts or refreshes a member row. Members are owned by the
// auth provider; this is how its sync job and the tests seed them.
func (s *Storage) SaveMember(ctx context.Context, m domain.Member) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (id, nickname, status) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET nickname = EXCLUDED.nickname, status = EXCLUDED.status`,
		m.Id, m.Nickname, m.Status)
	if err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}
