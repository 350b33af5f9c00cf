package service

import (
	"context"

	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
	"github.com/plaza-dev/plaza/shared/logger"
)

type BlockingService interface {
	Block(ctx context.Context, blocker, blocked domain.MemberId) error
	Unblock(ctx context.Context, blocker, blocked domain.MemberId) error
}

type Blocking struct {
	members  MemberStorage
	blocking BlockingStorage
}

type BlockingStorage interface {
	SetBlocking(ctx context.Context, blocker, blocked domain.MemberId, active bool) error
}

func NewBlocking(members MemberStorage, blocking BlockingStorage) BlockingService {
	return &Blocking{members: members, blocking: blocking}
}

// Block stops notices initiated by blocked from reaching blocker.
func (s *Blocking) Block(ctx context.Context, blocker, blocked domain.MemberId) error {
	if err := s.check(ctx, blocker, blocked); err != nil {
		return err
	}
	if err := s.blocking.SetBlocking(ctx, blocker, blocked, true); err != nil {
		return err
	}
	logger.Log.Info("member blocked", "blocker", blocker, "blocked", blocked)
	return nil
}

func (s *Blocking) Unblock(ctx context.Context, blocker, blocked domain.MemberId) error {
	if err := s.check(ctx, blocker, blocked); err != nil {
		return err
	}
	return s.blocking.SetBlocking(ctx, blocker, blocked, false)
}

func (s *Blocking) check(ctx context.Context, blocker, blocked domain.MemberId) error {
	if domain.CategoryOf(blocked) != domain.CategoryMember {
		return internal_errors.BadRequest("Invalid member id")
	}
	if blocker == blocked {
		return internal_errors.BadRequest("Cannot block yourself")
	}
	_, err := s.members.GetMember(ctx, blocked)
	return err
}
