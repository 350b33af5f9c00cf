package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	effects, rec := newTestEffects()
	svc := NewFollow(seeded(t), rec, effects)

	require.NoError(t, svc.Follow(ctx, actorId, authorId))
	following, err := svc.IsFollowing(ctx, actorId, authorId)
	require.NoError(t, err)
	assert.True(t, following)

	assert.Equal(t, []string{domain.FieldFollowingCount}, rec.fields(domain.MemberStatistics, actorId))
	assert.Equal(t, []string{domain.FieldFollowerCount}, rec.fields(domain.MemberStatistics, authorId))
	require.Len(t, rec.notices, 1)
	assert.Equal(t, domain.NoticeFollow, rec.notices[0].Category)
	assert.Equal(t, authorId, rec.notices[0].MemberId)
	assert.Equal(t, domain.NewNoticeId(domain.NoticeFollow, actorId, "", ""), rec.notices[0].NoticeId)
	assert.Equal(t, []string{domain.NoticeFollow}, rec.fields(domain.NotificationStatistics, authorId))

	t.Run("repeat changes nothing", func(t *testing.T) {
		rec.reset()
		require.NoError(t, svc.Follow(ctx, actorId, authorId))
		assert.Empty(t, rec.increments)
		assert.Empty(t, rec.notices)
	})

	t.Run("unfollow counts the undo without a notice", func(t *testing.T) {
		rec.reset()
		require.NoError(t, svc.Unfollow(ctx, actorId, authorId))
		assert.Equal(t, []string{domain.FieldUndoFollowingCount}, rec.fields(domain.MemberStatistics, actorId))
		assert.Equal(t, []string{domain.FieldUndoFollowerCount}, rec.fields(domain.MemberStatistics, authorId))
		assert.Empty(t, rec.notices)

		rec.reset()
		require.NoError(t, svc.Unfollow(ctx, actorId, authorId))
		assert.Empty(t, rec.increments)
	})
}

func TestFollowBlockedNoNotice(t *testing.T) {
	ctx := context.Background()
	effects, rec := newTestEffects()
	rec.blocked[authorId+actorId] = true
	svc := NewFollow(seeded(t), rec, effects)

	require.NoError(t, svc.Follow(ctx, actorId, authorId))
	assert.Empty(t, rec.notices)
	assert.Equal(t, []string{domain.FieldFollowerCount}, rec.fields(domain.MemberStatistics, authorId), "counters still move")
}

func TestFollowErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		setup    func(s *MockStorage)
		follower domain.MemberId
		followed domain.MemberId
		status   int
	}{
		{name: "self", follower: actorId, followed: actorId, status: http.StatusBadRequest},
		{name: "not a member id", follower: actorId, followed: postId, status: http.StatusBadRequest},
		{name: "unknown member", follower: actorId, followed: "MNOBODY00001", status: http.StatusNotFound},
		{
			name:     "suspended follower",
			setup:    func(s *MockStorage) { s.addMember("MSUSPENDED01", -1) },
			follower: "MSUSPENDED01", followed: authorId, status: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := seeded(t)
			if tc.setup != nil {
				tc.setup(storage)
			}
			effects, rec := newTestEffects()
			err := NewFollow(storage, rec, effects).Follow(ctx, tc.follower, tc.followed)
			requireStatus(t, err, tc.status)
			assert.Empty(t, rec.following)
			assert.Empty(t, rec.increments)
		})
	}
}
