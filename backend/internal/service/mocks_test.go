package service

import (
	"context"
	"sync"
	"testing"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

const (
	actorId  = "MACTOR000001"
	authorId = "MAUTHOR00001"
	thirdId  = "MTHIRD000001"
	postId   = "P0000000000A"
)

// MockStorage keeps members, posts, comments, attitudes and saves in memory.
// Setting a func field overrides the in-memory behaviour of that method.
type MockStorage struct {
	mu        sync.Mutex
	members   map[domain.MemberId]*domain.Member
	posts     map[domain.PostId]*domain.Post
	comments  map[domain.CommentId]*domain.Comment
	attitudes map[string]*domain.AttitudeRecord
	saves     map[string]bool

	getPostFunc        func(id domain.PostId) (*domain.Post, error)
	updateAttitudeFunc func(memberId domain.MemberId, postId domain.PostId, commentId domain.CommentId) error
	createCommentFunc  func(c *domain.Comment) error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		members:   map[domain.MemberId]*domain.Member{},
		posts:     map[domain.PostId]*domain.Post{},
		comments:  map[domain.CommentId]*domain.Comment{},
		attitudes: map[string]*domain.AttitudeRecord{},
		saves:     map[string]bool{},
	}
}

func (m *MockStorage) addMember(id domain.MemberId, status int) {
	m.members[id] = &domain.Member{Id: id, Status: status}
}

func (m *MockStorage) addPost(p *domain.Post) {
	m.posts[p.Id] = p
}

func (m *MockStorage) addComment(c *domain.Comment) {
	m.comments[c.Id] = c
}

func (m *MockStorage) GetMember(ctx context.Context, id domain.MemberId) (*domain.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[id]
	if !ok {
		return nil, internal_errors.NotFound("Member not found")
	}
	return member, nil
}

func (m *MockStorage) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.getPostFunc != nil {
		return m.getPostFunc(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, internal_errors.NotFound("Post not found")
	}
	return p, nil
}

func (m *MockStorage) CreatePost(ctx context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[p.Id] = p
	return nil
}

func (m *MockStorage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, internal_errors.NotFound("Comment not found")
	}
	copied := *c
	return &copied, nil
}

func (m *MockStorage) CreateComment(ctx context.Context, c *domain.Comment) error {
	if m.createCommentFunc != nil {
		return m.createCommentFunc(c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[c.Id] = c
	return nil
}

func (m *MockStorage) ListComments(ctx context.Context, parentId string, limit int) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Comment{}
	for _, c := range m.comments {
		if c.ParentId == parentId && len(out) < limit {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockStorage) EditComment(ctx context.Context, id domain.CommentId, edit domain.CommentEdit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.comments[id]
	if !domain.IsActive(c.Status) {
		return internal_errors.Forbidden("Comment is deleted")
	}
	c.Content, c.Cue, c.Status = edit.Content, edit.Cue, domain.StatusEdited
	c.EditHistory = append(c.EditHistory, edit)
	return nil
}

func (m *MockStorage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.comments[id]
	if !domain.IsActive(c.Status) {
		return internal_errors.Forbidden("Comment is already deleted")
	}
	c.Status = domain.StatusDeleted
	return nil
}

func (m *MockStorage) GetAttitude(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.attitudes[memberId+postId]; ok {
		return r, nil
	}
	return &domain.AttitudeRecord{MemberId: memberId, PostId: postId, CommentAttitudeMapping: map[domain.CommentId]domain.Attitude{}}, nil
}

func (m *MockStorage) UpdateAttitude(ctx context.Context, memberId domain.MemberId, postId domain.PostId, commentId domain.CommentId, decide func(domain.Attitude) (domain.Attitude, error)) error {
	if m.updateAttitudeFunc != nil {
		return m.updateAttitudeFunc(memberId, postId, commentId)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.attitudes[memberId+postId]
	if !ok {
		r = &domain.AttitudeRecord{MemberId: memberId, PostId: postId}
	}
	next, err := decide(r.Get(commentId))
	if err != nil {
		return err
	}
	r.Set(commentId, next)
	m.attitudes[memberId+postId] = r
	return nil
}

func (m *MockStorage) IsSaved(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[memberId+postId], nil
}

func (m *MockStorage) ToggleSave(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[memberId+postId] = !m.saves[memberId+postId]
	return m.saves[memberId+postId], nil
}

// recorder captures the side effects written through fanout.
type recorder struct {
	mu         sync.Mutex
	increments []domain.Increment
	notices    []domain.Notice
	blocked    map[string]bool
	following  map[string]bool
}

func (r *recorder) Increment(ctx context.Context, inc domain.Increment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.increments = append(r.increments, inc)
	return nil
}

func (r *recorder) PutNotice(ctx context.Context, n domain.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

func (r *recorder) IsBlocked(ctx context.Context, blocker, blocked domain.MemberId) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocked[blocker+blocked], nil
}

func (r *recorder) IsFollowing(ctx context.Context, follower, followed domain.MemberId) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.following[follower+followed], nil
}

func (r *recorder) SetFollowing(ctx context.Context, follower, followed domain.MemberId, active bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.following[follower+followed]
	r.following[follower+followed] = active
	return previous, nil
}

func (r *recorder) SetBlocking(ctx context.Context, blocker, blocked domain.MemberId, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked[blocker+blocked] = active
	return nil
}

// fields returns the fields incremented on collection/key, in order.
func (r *recorder) fields(c domain.Collection, key string) []string {
	var out []string
	for _, inc := range r.increments {
		if inc.Collection == c && inc.Key == key {
			out = append(out, inc.Fields...)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.increments = nil
	r.notices = nil
}

func newTestEffects() (*fanout.Effects, *recorder) {
	rec := &recorder{blocked: map[string]bool{}, following: map[string]bool{}}
	applier := fanout.NewApplier(rec)
	return fanout.NewEffects(fanout.SyncRunner{}, applier, fanout.NewNotifier(rec, rec, applier)), rec
}

func testContentPolicy() *ContentPolicy {
	return NewContentPolicy(&config.Config{Public: config.Public{CommentMaxLength: 20, PostTitleMaxLen: 10}})
}

// seeded returns storage with actor, author, third member and one post by
// author with a channel and one topic.
func seeded(t *testing.T) *MockStorage {
	t.Helper()
	s := NewMockStorage()
	s.addMember(actorId, domain.StatusActive)
	s.addMember(authorId, domain.StatusActive)
	s.addMember(thirdId, domain.StatusActive)
	s.addPost(&domain.Post{Id: postId, MemberId: authorId, Title: "hello", ChannelId: "CH01", TopicIds: []domain.TopicId{"T1"}, Status: domain.StatusActive})
	return s
}
