package service

import (
	"context"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

type FollowService interface {
	IsFollowing(ctx context.Context, follower, followed domain.MemberId) (bool, error)
	Follow(ctx context.Context, follower, followed domain.MemberId) error
	Unfollow(ctx context.Context, follower, followed domain.MemberId) error
}

type Follow struct {
	members MemberStorage
	follows FollowStorage
	effects *fanout.Effects
}

type FollowStorage interface {
	IsFollowing(ctx context.Context, follower, followed domain.MemberId) (bool, error)
	// SetFollowing returns the state before the write.
	SetFollowing(ctx context.Context, follower, followed domain.MemberId, active bool) (bool, error)
}

func NewFollow(members MemberStorage, follows FollowStorage, effects *fanout.Effects) FollowService {
	return &Follow{members: members, follows: follows, effects: effects}
}

func (s *Follow) IsFollowing(ctx context.Context, follower, followed domain.MemberId) (bool, error) {
	if domain.CategoryOf(followed) != domain.CategoryMember {
		return false, internal_errors.BadRequest("Invalid member id")
	}
	return s.follows.IsFollowing(ctx, follower, followed)
}

func (s *Follow) Follow(ctx context.Context, follower, followed domain.MemberId) error {
	return s.set(ctx, follower, followed, true)
}

func (s *Follow) Unfollow(ctx context.Context, follower, followed domain.MemberId) error {
	return s.set(ctx, follower, followed, false)
}

// set is idempotent: repeating a follow or unfollow changes no counter and
// sends no notice.
func (s *Follow) set(ctx context.Context, follower, followed domain.MemberId, active bool) error {
	if domain.CategoryOf(followed) != domain.CategoryMember {
		return internal_errors.BadRequest("Invalid member id")
	}
	if follower == followed {
		return internal_errors.BadRequest("Cannot follow yourself")
	}
	if _, err := activeMember(ctx, s.members, follower); err != nil {
		return err
	}
	if _, err := s.members.GetMember(ctx, followed); err != nil {
		return err
	}

	previous, err := s.follows.SetFollowing(ctx, follower, followed, active)
	if err != nil {
		return err
	}
	if previous == active {
		return nil
	}

	var notices []domain.Notice
	if active {
		notices = append(notices, domain.NewNotice(followed, domain.NoticeFollow, follower, "", ""))
	}
	s.effects.Run(ctx, "follow", fanout.FollowPlan(follower, followed, active), notices...)
	return nil
}
