package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

func (s *Storage) CreatePost(ctx context.Context, post *domain.Post) error {
	topics := post.TopicIds
	if topics == nil {
		topics = []domain.TopicId{}
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, member_id, title, content, channel_id, topic_ids, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created`,
		post.Id, post.MemberId, post.Title, post.Content, post.ChannelId, pq.Array(topics), post.Status,
	).Scan(&post.CreatedTime)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return s.getPost(ctx, s.db, id)
}

func (s *Storage) getPost(ctx context.Context, q Querier, id domain.PostId) (*domain.Post, error) {
	var (
		p        domain.Post
		topics   []string
		counters []byte
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, member_id, title, content, channel_id, topic_ids, status, counters, created
		FROM posts WHERE id = $1`, id,
	).Scan(&p.Id, &p.MemberId, &p.Title, &p.Content, &p.ChannelId, pq.Array(&topics), &p.Status, &counters, &p.CreatedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	p.TopicIds = topics
	if p.Counters, err = scanCounters(counters); err != nil {
		return nil, err
	}
	return &p, nil
}
