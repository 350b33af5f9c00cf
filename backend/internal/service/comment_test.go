package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComment(t *testing.T) (CommentService, *MockStorage, *recorder) {
	t.Helper()
	storage := seeded(t)
	effects, rec := newTestEffects()
	return NewComment(storage, testContentPolicy(), effects, 50), storage, rec
}

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, rec := newTestComment(t)

	c, err := svc.Create(ctx, domain.CommentCreationData{ParentId: postId, Author: actorId, Content: " hi <script>x</script>", Cue: []domain.MemberId{thirdId, thirdId}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.Id, domain.CommentPrefix))
	assert.Equal(t, postId, c.PostId)
	assert.Equal(t, "hi", c.Content)
	assert.Equal(t, []domain.MemberId{thirdId}, c.Cue)

	assert.Equal(t, []string{domain.FieldCommentCount}, rec.fields(domain.MemberStatistics, actorId))
	assert.Equal(t, []string{domain.FieldCommentCount}, rec.fields(domain.PostRecords, postId))
	assert.Equal(t, []string{domain.FieldCommentCount}, rec.fields(domain.ChannelStatistics, "CH01"))
	assert.Equal(t, []string{domain.FieldCommentCount}, rec.fields(domain.TopicStatistics, "T1"))

	require.Len(t, rec.notices, 2)
	assert.Equal(t, authorId, rec.notices[0].MemberId)
	assert.Equal(t, domain.NoticeReply, rec.notices[0].Category)
	assert.Equal(t, thirdId, rec.notices[1].MemberId)
	assert.Equal(t, domain.NoticeCue, rec.notices[1].Category)
}

func TestCommentCreateSubcomment(t *testing.T) {
	ctx := context.Background()
	svc, storage, rec := newTestComment(t)
	storage.addComment(&domain.Comment{Id: "C0000000000A", ParentId: postId, PostId: postId, MemberId: thirdId, Status: domain.StatusActive})

	c, err := svc.Create(ctx, domain.CommentCreationData{ParentId: "C0000000000A", Author: actorId, Content: "reply", Cue: []domain.MemberId{thirdId}})
	require.NoError(t, err)

	assert.True(t, c.IsSubcomment())
	assert.Equal(t, postId, c.PostId)
	assert.Equal(t, []string{domain.FieldSubcommentCount}, rec.fields(domain.CommentRecords, "C0000000000A"))
	assert.Equal(t, []string{domain.FieldCommentCount}, rec.fields(domain.PostRecords, postId))

	require.Len(t, rec.notices, 1, "cue of the parent author is folded into the reply")
	assert.Equal(t, thirdId, rec.notices[0].MemberId)
	assert.Equal(t, domain.NoticeReply, rec.notices[0].Category)
}

func TestCommentCreateOwnPostNoReplyNotice(t *testing.T) {
	svc, _, rec := newTestComment(t)

	_, err := svc.Create(context.Background(), domain.CommentCreationData{ParentId: postId, Author: authorId, Content: "mine"})
	require.NoError(t, err)
	assert.Empty(t, rec.notices)
}

func TestCommentCreateErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		setup  func(s *MockStorage)
		data   domain.CommentCreationData
		status int
	}{
		{name: "subcomment parent", data: domain.CommentCreationData{ParentId: "D0000000000A", Author: actorId, Content: "x"}, status: http.StatusBadRequest},
		{name: "member parent", data: domain.CommentCreationData{ParentId: authorId, Author: actorId, Content: "x"}, status: http.StatusBadRequest},
		{name: "empty content", data: domain.CommentCreationData{ParentId: postId, Author: actorId, Content: "<b></b>  "}, status: http.StatusBadRequest},
		{name: "too long", data: domain.CommentCreationData{ParentId: postId, Author: actorId, Content: strings.Repeat("a", 21)}, status: http.StatusBadRequest},
		{name: "bad cue", data: domain.CommentCreationData{ParentId: postId, Author: actorId, Content: "x", Cue: []domain.MemberId{postId}}, status: http.StatusBadRequest},
		{name: "missing parent", data: domain.CommentCreationData{ParentId: "PMISSING0001", Author: actorId, Content: "x"}, status: http.StatusNotFound},
		{
			name:   "suspended author",
			setup:  func(s *MockStorage) { s.addMember("MSUSPENDED01", -1) },
			data:   domain.CommentCreationData{ParentId: postId, Author: "MSUSPENDED01", Content: "x"},
			status: http.StatusForbidden,
		},
		{
			name: "deleted parent comment",
			setup: func(s *MockStorage) {
				s.addComment(&domain.Comment{Id: "CDELETED0001", PostId: postId, MemberId: authorId, Status: domain.StatusDeleted})
			},
			data:   domain.CommentCreationData{ParentId: "CDELETED0001", Author: actorId, Content: "x"},
			status: http.StatusForbidden,
		},		{
			name: "comment under a deleted post",
			setup: func(s *MockStorage) {
				s.addPost(&domain.Post{Id: "PDELETED0001", MemberId: authorId, ChannelId: "CH01", Status: domain.StatusDeleted})
				s.addComment(&domain.Comment{Id: "C0000000000A", ParentId: "PDELETED0001", PostId: "PDELETED0001", MemberId: authorId, Status: domain.StatusActive})
			},
			data:   domain.CommentCreationData{ParentId: "C0000000000A", Author: actorId, Content: "x"},
			status: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, storage, rec := newTestComment(t)
			if tc.setup != nil {
				tc.setup(storage)
			}
			_, err := svc.Create(ctx, tc.data)
			requireStatus(t, err, tc.status)
			assert.Empty(t, rec.increments)
		})
	}
}

func TestCommentEdit(t *testing.T) {
	ctx := context.Background()
	svc, storage, rec := newTestComment(t)
	storage.addComment(&domain.Comment{Id: "C0000000000A", ParentId: postId, PostId: postId, MemberId: actorId, Content: "v1", Status: domain.StatusActive})

	require.NoError(t, svc.Edit(ctx, domain.CommentEditData{Id: "C0000000000A", Editor: actorId, Content: "v2"}))

	c, err := svc.Get(ctx, "C0000000000A")
	require.NoError(t, err)
	assert.Equal(t, "v2", c.Content)
	assert.Equal(t, domain.StatusEdited, c.Status)
	require.Len(t, c.EditHistory, 1)
	assert.Equal(t, []string{domain.FieldCommentEditCount}, rec.fields(domain.MemberStatistics, actorId))

	err = svc.Edit(ctx, domain.CommentEditData{Id: "C0000000000A", Editor: thirdId, Content: "v3"})
	requireStatus(t, err, http.StatusForbidden)
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()
	svc, storage, rec := newTestComment(t)
	storage.addComment(&domain.Comment{Id: "C0000000000A", ParentId: postId, PostId: postId, MemberId: actorId, Status: domain.StatusActive})
	storage.addComment(&domain.Comment{Id: "D0000000000A", ParentId: "C0000000000A", PostId: postId, MemberId: actorId, Status: domain.StatusActive})

	requireStatus(t, svc.Delete(ctx, "C0000000000A", thirdId), http.StatusForbidden)

	require.NoError(t, svc.Delete(ctx, "D0000000000A", actorId))
	assert.Equal(t, []string{domain.FieldSubcommentDeleteCount}, rec.fields(domain.CommentRecords, "C0000000000A"))
	assert.Equal(t, []string{domain.FieldCommentDeleteCount}, rec.fields(domain.PostRecords, postId))
	assert.Equal(t, []string{domain.FieldCommentDeleteCount}, rec.fields(domain.MemberStatistics, actorId))

	rec.reset()
	requireStatus(t, svc.Delete(ctx, "D0000000000A", actorId), http.StatusForbidden)
	assert.Empty(t, rec.increments, "second delete counts nothing")

	requireStatus(t, svc.Edit(ctx, domain.CommentEditData{Id: "D0000000000A", Editor: actorId, Content: "x"}), http.StatusForbidden)
}

func TestCommentListAndGet(t *testing.T) {
	ctx := context.Background()
	svc, storage, _ := newTestComment(t)
	storage.addComment(&domain.Comment{Id: "C0000000000A", ParentId: postId, PostId: postId, MemberId: actorId, Status: domain.StatusActive})

	list, err := svc.List(ctx, postId)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, "D0000000000A")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Get(ctx, postId)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Get(ctx, "CMISSING0001")
	requireStatus(t, err, http.StatusNotFound)
}
