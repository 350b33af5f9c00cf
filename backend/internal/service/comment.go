package service

import (
	"context"
	"time"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
	"github.com/plaza-dev/plaza/shared/utils"
)

type CommentService interface {
	Create(ctx context.Context, data domain.CommentCreationData) (*domain.Comment, error)
	Get(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	List(ctx context.Context, parentId string) ([]domain.Comment, error)
	Edit(ctx context.Context, data domain.CommentEditData) error
	Delete(ctx context.Context, id domain.CommentId, memberId domain.MemberId) error
}

type Comment struct {
	storage   CommentStorage
	content   *ContentPolicy
	effects   *fanout.Effects
	listLimit int
}

type CommentStorage interface {
	MemberStorage
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	CreateComment(ctx context.Context, c *domain.Comment) error
	GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	ListComments(ctx context.Context, parentId string, limit int) ([]domain.Comment, error)
	EditComment(ctx context.Context, id domain.CommentId, edit domain.CommentEdit) error
	DeleteComment(ctx context.Context, id domain.CommentId) error
}

func NewComment(storage CommentStorage, content *ContentPolicy, effects *fanout.Effects, listLimit int) CommentService {
	return &Comment{storage: storage, content: content, effects: effects, listLimit: listLimit}
}

// Create adds a comment under a post or a subcomment under a top-level
// comment. Deeper nesting is not allowed.
func (s *Comment) Create(ctx context.Context, data domain.CommentCreationData) (*domain.Comment, error) {
	prefix := ""
	switch domain.CategoryOf(data.ParentId) {
	case domain.CategoryPost:
		prefix = domain.CommentPrefix
	case domain.CategoryComment:
		prefix = domain.SubcommentPrefix
	default:
		return nil, internal_errors.BadRequest("Invalid parent id")
	}

	if _, err := activeMember(ctx, s.storage, data.Author); err != nil {
		return nil, err
	}

	content, err := s.content.Comment(data.Content)
	if err != nil {
		return nil, err
	}
	cue, err := s.content.Cue(data.Cue)
	if err != nil {
		return nil, err
	}

	post, parentAuthor, err := s.loadParent(ctx, data.ParentId)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Id:       utils.NewId(prefix),
		ParentId: data.ParentId,
		PostId:   post.Id,
		MemberId: data.Author,
		Content:  content,
		Cue:      cue,
		Status:   domain.StatusActive,
	}
	if err := s.storage.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	notices := []domain.Notice{s.notice(parentAuthor, domain.NoticeReply, comment, post)}
	for _, cued := range cue {
		if cued == parentAuthor {
			continue
		}
		notices = append(notices, s.notice(cued, domain.NoticeCue, comment, post))
	}
	s.effects.Run(ctx, "comment_create", fanout.CommentCreationPlan(comment, post), notices...)

	return comment, nil
}

// loadParent returns the owning post and the author of the parent entity.
func (s *Comment) loadParent(ctx context.Context, parentId string) (*domain.Post, domain.MemberId, error) {
	if domain.CategoryOf(parentId) == domain.CategoryPost {
		post, err := s.storage.GetPost(ctx, parentId)
		if err != nil {
			return nil, "", err
		}
		if !domain.IsActive(post.Status) {
			return nil, "", internal_errors.Forbidden("Post is deleted")
		}
		return post, post.MemberId, nil
	}

	parent, err := s.storage.GetComment(ctx, parentId)
	if err != nil {
		return nil, "", err
	}
	if !domain.IsActive(parent.Status) {
		return nil, "", internal_errors.Forbidden("Comment is deleted")
	}
	post, err := s.storage.GetPost(ctx, parent.PostId)
	if err != nil {
		return nil, "", err
	}
	if !domain.IsActive(post.Status) {
		return nil, "", internal_errors.Forbidden("Post is deleted")
	}
	return post, parent.MemberId, nil
}

func (s *Comment) notice(recipient domain.MemberId, category domain.NoticeCategory, c *domain.Comment, post *domain.Post) domain.Notice {
	n := domain.NewNotice(recipient, category, c.MemberId, post.Id, c.Id)
	n.PostTitle = post.Title
	n.Brief = brief(c.Content)
	return n
}

func (s *Comment) Get(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	if !domain.CategoryOf(id).IsComment() {
		return nil, internal_errors.BadRequest("Invalid comment id")
	}
	return s.storage.GetComment(ctx, id)
}

func (s *Comment) List(ctx context.Context, parentId string) ([]domain.Comment, error) {
	switch domain.CategoryOf(parentId) {
	case domain.CategoryPost, domain.CategoryComment:
	default:
		return nil, internal_errors.BadRequest("Invalid parent id")
	}
	return s.storage.ListComments(ctx, parentId, s.listLimit)
}

func (s *Comment) Edit(ctx context.Context, data domain.CommentEditData) error {
	comment, err := s.ownComment(ctx, data.Id, data.Editor)
	if err != nil {
		return err
	}

	content, err := s.content.Comment(data.Content)
	if err != nil {
		return err
	}
	cue, err := s.content.Cue(data.Cue)
	if err != nil {
		return err
	}

	edit := domain.CommentEdit{Content: content, Cue: cue, EditedTime: time.Now().UTC()}
	if err := s.storage.EditComment(ctx, comment.Id, edit); err != nil {
		return err
	}

	s.effects.Run(ctx, "comment_edit", fanout.CommentEditPlan(comment))
	return nil
}

// Delete marks the comment deleted. Counters that already include it are
// left as they are; delete counters record the removal.
func (s *Comment) Delete(ctx context.Context, id domain.CommentId, memberId domain.MemberId) error {
	comment, err := s.ownComment(ctx, id, memberId)
	if err != nil {
		return err
	}
	post, err := s.storage.GetPost(ctx, comment.PostId)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteComment(ctx, comment.Id); err != nil {
		return err
	}

	s.effects.Run(ctx, "comment_delete", fanout.CommentDeletionPlan(comment, post))
	return nil
}

// ownComment loads a live comment written by memberId.
func (s *Comment) ownComment(ctx context.Context, id domain.CommentId, memberId domain.MemberId) (*domain.Comment, error) {
	if !domain.CategoryOf(id).IsComment() {
		return nil, internal_errors.BadRequest("Invalid comment id")
	}
	if _, err := activeMember(ctx, s.storage, memberId); err != nil {
		return nil, err
	}
	comment, err := s.storage.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.MemberId != memberId {
		return nil, internal_errors.Forbidden("Not the author of the comment")
	}
	if !domain.IsActive(comment.Status) {
		return nil, internal_errors.Forbidden("Comment is deleted")
	}
	return comment, nil
}
