package service

import (
	"context"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

type SaveService interface {
	IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error)
	Toggle(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error)
}

type Save struct {
	storage SaveStorage
	effects *fanout.Effects
}

type SaveStorage interface {
	MemberStorage
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error)
	ToggleSave(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error)
}

func NewSave(storage SaveStorage, effects *fanout.Effects) SaveService {
	return &Save{storage: storage, effects: effects}
}

func (s *Save) IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	if domain.CategoryOf(postId) != domain.CategoryPost {
		return false, internal_errors.BadRequest("Invalid post id")
	}
	return s.storage.IsSaved(ctx, memberId, postId)
}

// Toggle saves the post, or undoes an earlier save. It returns the new state.
func (s *Save) Toggle(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	if domain.CategoryOf(postId) != domain.CategoryPost {
		return false, internal_errors.BadRequest("Invalid post id")
	}
	if _, err := activeMember(ctx, s.storage, memberId); err != nil {
		return false, err
	}
	post, err := s.storage.GetPost(ctx, postId)
	if err != nil {
		return false, err
	}
	if !domain.IsActive(post.Status) {
		return false, internal_errors.Forbidden("Post is deleted")
	}

	saved, err := s.storage.ToggleSave(ctx, memberId, postId)
	if err != nil {
		return false, err
	}

	var notices []domain.Notice
	if saved {
		n := domain.NewNotice(post.MemberId, domain.NoticeSave, memberId, post.Id, "")
		n.PostTitle = post.Title
		notices = append(notices, n)
	}
	s.effects.Run(ctx, "save", fanout.SavePlan(memberId, saved, post), notices...)

	return saved, nil
}
