package service

import (
	"context"

	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

type MemberStorage interface {
	GetMember(ctx context.Context, id domain.MemberId) (*domain.Member, error)
}

// activeMember loads the caller and rejects suspended members.
func activeMember(ctx context.Context, storage MemberStorage, id domain.MemberId) (*domain.Member, error) {
	member, err := storage.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.Suspended() {
		return nil, internal_errors.Forbidden("Member is suspended")
	}
	return member, nil
}
