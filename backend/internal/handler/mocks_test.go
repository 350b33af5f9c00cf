package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/domain"
	mw "github.com/plaza-dev/plaza/shared/middleware"
)

const (
	testMember = "MACTOR000001"
	testPost   = "P0000000000A"
)

type MockAttitudeService struct {
	MockGet     func(memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error)
	MockExpress func(memberId domain.MemberId, targetId string, requested domain.Attitude) (fanout.Transition, error)
	expressed   int
}

func (m *MockAttitudeService) Get(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error) {
	if m.MockGet != nil {
		return m.MockGet(memberId, postId)
	}
	return &domain.AttitudeRecord{CommentAttitudeMapping: map[domain.CommentId]domain.Attitude{}}, nil
}

func (m *MockAttitudeService) Express(ctx context.Context, memberId domain.MemberId, targetId string, requested domain.Attitude) (fanout.Transition, error) {
	m.expressed++
	if m.MockExpress != nil {
		return m.MockExpress(memberId, targetId, requested)
	}
	return fanout.Resolve(0, requested)
}

type MockCommentService struct {
	MockCreate func(data domain.CommentCreationData) (*domain.Comment, error)
	MockGet    func(id domain.CommentId) (*domain.Comment, error)
	MockList   func(parentId string) ([]domain.Comment, error)
	MockEdit   func(data domain.CommentEditData) error
	MockDelete func(id domain.CommentId, memberId domain.MemberId) error
}

func (m *MockCommentService) Create(ctx context.Context, data domain.CommentCreationData) (*domain.Comment, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return &domain.Comment{Id: "C0000000000A"}, nil
}

func (m *MockCommentService) Get(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.Comment{Id: id, Status: domain.StatusActive}, nil
}

func (m *MockCommentService) List(ctx context.Context, parentId string) ([]domain.Comment, error) {
	if m.MockList != nil {
		return m.MockList(parentId)
	}
	return []domain.Comment{}, nil
}

func (m *MockCommentService) Edit(ctx context.Context, data domain.CommentEditData) error {
	if m.MockEdit != nil {
		return m.MockEdit(data)
	}
	return nil
}

func (m *MockCommentService) Delete(ctx context.Context, id domain.CommentId, memberId domain.MemberId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id, memberId)
	}
	return nil
}

type MockSaveService struct {
	MockIsSaved func(memberId domain.MemberId, postId domain.PostId) (bool, error)
	MockToggle  func(memberId domain.MemberId, postId domain.PostId) (bool, error)
}

func (m *MockSaveService) IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	if m.MockIsSaved != nil {
		return m.MockIsSaved(memberId, postId)
	}
	return false, nil
}

func (m *MockSaveService) Toggle(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	if m.MockToggle != nil {
		return m.MockToggle(memberId, postId)
	}
	return true, nil
}

type MockPostService struct {
	MockCreate func(data domain.PostCreationData) (*domain.Post, error)
	MockGet    func(id domain.PostId) (*domain.Post, error)
}

func (m *MockPostService) Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return &domain.Post{Id: testPost}, nil
}

func (m *MockPostService) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.Post{Id: id, Status: domain.StatusActive}, nil
}

type MockNoticeService struct {
	MockList     func(memberId domain.MemberId, category domain.NoticeCategory) ([]domain.Notice, error)
	MockCounters func(memberId domain.MemberId) (domain.Counters, error)
}

func (m *MockNoticeService) List(ctx context.Context, memberId domain.MemberId, category domain.NoticeCategory) ([]domain.Notice, error) {
	if m.MockList != nil {
		return m.MockList(memberId, category)
	}
	return []domain.Notice{}, nil
}

func (m *MockNoticeService) Counters(ctx context.Context, memberId domain.MemberId) (domain.Counters, error) {
	if m.MockCounters != nil {
		return m.MockCounters(memberId)
	}
	return domain.Counters{}, nil
}

type MockBlockingService struct {
	MockBlock   func(blocker, blocked domain.MemberId) error
	MockUnblock func(blocker, blocked domain.MemberId) error
}

func (m *MockBlockingService) Block(ctx context.Context, blocker, blocked domain.MemberId) error {
	if m.MockBlock != nil {
		return m.MockBlock(blocker, blocked)
	}
	return nil
}

func (m *MockBlockingService) Unblock(ctx context.Context, blocker, blocked domain.MemberId) error {
	if m.MockUnblock != nil {
		return m.MockUnblock(blocker, blocked)
	}
	return nil
}

type MockFollowService struct {
	MockIsFollowing func(follower, followed domain.MemberId) (bool, error)
	MockFollow      func(follower, followed domain.MemberId) error
	MockUnfollow    func(follower, followed domain.MemberId) error
}

func (m *MockFollowService) IsFollowing(ctx context.Context, follower, followed domain.MemberId) (bool, error) {
	if m.MockIsFollowing != nil {
		return m.MockIsFollowing(follower, followed)
	}
	return false, nil
}

func (m *MockFollowService) Follow(ctx context.Context, follower, followed domain.MemberId) error {
	if m.MockFollow != nil {
		return m.MockFollow(follower, followed)
	}
	return nil
}

func (m *MockFollowService) Unfollow(ctx context.Context, follower, followed domain.MemberId) error {
	if m.MockUnfollow != nil {
		return m.MockUnfollow(follower, followed)
	}
	return nil
}

type MockHealthChecker struct {
	err error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

type testServices struct {
	attitude *MockAttitudeService
	comment  *MockCommentService
	save     *MockSaveService
	post     *MockPostService
	notice   *MockNoticeService
	blocking *MockBlockingService
	follow   *MockFollowService
}

func newTestHandler() (*Handler, *testServices) {
	ts := &testServices{
		attitude: &MockAttitudeService{},
		comment:  &MockCommentService{},
		save:     &MockSaveService{},
		post:     &MockPostService{},
		notice:   &MockNoticeService{},
		blocking: &MockBlockingService{},
		follow:   &MockFollowService{},
	}
	h := New(Services{
		Attitude: ts.attitude,
		Comment:  ts.comment,
		Save:     ts.save,
		Post:     ts.post,
		Notice:   ts.notice,
		Blocking: ts.blocking,
		Follow:   ts.follow,
	}, &config.Config{})
	return h, ts
}

// withMember stands in for the auth middleware.
func withMember(memberId domain.MemberId) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if memberId != "" {
				r = mw.WithMemberId(r, memberId)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func testRouter(h *Handler, memberId domain.MemberId) *chi.Mux {
	r := chi.NewRouter()
	r.Use(withMember(memberId))
	r.Get("/v1/attitude/on/{id}", h.GetAttitude)
	r.Post("/v1/attitude/on/{id}", h.ExpressAttitude)
	r.Post("/v1/comment/on/{parentId}", h.CreateComment)
	r.Get("/v1/comment/id/{commentId}", h.GetComment)
	r.Put("/v1/comment/id/{commentId}", h.EditComment)
	r.Delete("/v1/comment/id/{commentId}", h.DeleteComment)
	r.Get("/v1/comment/s/of/{parentId}", h.ListComments)
	r.Get("/v1/save/{postId}", h.GetSave)
	r.Post("/v1/save/{postId}", h.ToggleSave)
	r.Post("/v1/creation", h.CreatePost)
	r.Get("/v1/creation/id/{postId}", h.GetPost)
	r.Get("/v1/notice/of/{category}", h.ListNotices)
	r.Get("/v1/notification", h.GetNotification)
	r.Post("/v1/block/{memberId}", h.BlockMember)
	r.Delete("/v1/block/{memberId}", h.UnblockMember)
	r.Get("/v1/follow/{memberId}", h.GetFollow)
	r.Post("/v1/follow/{memberId}", h.FollowMember)
	r.Delete("/v1/follow/{memberId}", h.UnfollowMember)
	return r
}
