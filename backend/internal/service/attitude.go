package service

import (
	"context"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

type AttitudeService interface {
	Get(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error)
	Express(ctx context.Context, memberId domain.MemberId, targetId string, requested domain.Attitude) (fanout.Transition, error)
}

type Attitude struct {
	storage AttitudeStorage
	effects *fanout.Effects
}

type AttitudeStorage interface {
	MemberStorage
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	GetAttitude(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error)
	UpdateAttitude(ctx context.Context, memberId domain.MemberId, postId domain.PostId, commentId domain.CommentId, decide func(previous domain.Attitude) (domain.Attitude, error)) error
}

func NewAttitude(storage AttitudeStorage, effects *fanout.Effects) AttitudeService {
	return &Attitude{storage: storage, effects: effects}
}

func (s *Attitude) Get(ctx context.Context, memberId domain.MemberId, postId domain.PostId) (*domain.AttitudeRecord, error) {
	if domain.CategoryOf(postId) != domain.CategoryPost {
		return nil, internal_errors.BadRequest("Invalid post id")
	}
	return s.storage.GetAttitude(ctx, memberId, postId)
}

// Express applies requested (like or dislike) to a post or comment and
// returns the resulting transition. Counters and notices follow
// asynchronously once the record is stored.
func (s *Attitude) Express(ctx context.Context, memberId domain.MemberId, targetId string, requested domain.Attitude) (fanout.Transition, error) {
	if requested != domain.Like && requested != domain.Dislike {
		return fanout.Transition{}, internal_errors.BadRequest("Invalid attitude")
	}

	category := domain.CategoryOf(targetId)
	if category != domain.CategoryPost && !category.IsComment() {
		return fanout.Transition{}, internal_errors.BadRequest("Invalid target id")
	}

	if _, err := activeMember(ctx, s.storage, memberId); err != nil {
		return fanout.Transition{}, err
	}

	target, post, comment, err := s.loadTarget(ctx, category, targetId)
	if err != nil {
		return fanout.Transition{}, err
	}

	var commentId domain.CommentId
	if comment != nil {
		commentId = comment.Id
	}

	var transition fanout.Transition
	err = s.storage.UpdateAttitude(ctx, memberId, post.Id, commentId, func(previous domain.Attitude) (domain.Attitude, error) {
		tr, err := fanout.Resolve(previous, requested)
		if err != nil {
			return 0, err
		}
		transition = tr
		return tr.Next, nil
	})
	if err != nil {
		return fanout.Transition{}, err
	}

	var notices []domain.Notice
	if transition.NotifiesLike(memberId, target.AuthorId) {
		notice := domain.NewNotice(target.AuthorId, domain.NoticeLike, memberId, post.Id, commentId)
		notice.PostTitle = post.Title
		if comment != nil {
			notice.Brief = brief(comment.Content)
		}
		notices = append(notices, notice)
	}
	s.effects.Run(ctx, "attitude", fanout.AttitudePlan(memberId, transition, target), notices...)

	return transition, nil
}

// loadTarget resolves the entity an attitude is expressed on together with
// its owning post. Deleted targets are rejected.
func (s *Attitude) loadTarget(ctx context.Context, category domain.Category, id string) (fanout.Target, *domain.Post, *domain.Comment, error) {
	if category == domain.CategoryPost {
		post, err := s.storage.GetPost(ctx, id)
		if err != nil {
			return fanout.Target{}, nil, nil, err
		}
		if !domain.IsActive(post.Status) {
			return fanout.Target{}, nil, nil, internal_errors.Forbidden("Post is deleted")
		}
		return fanout.Target{
			Category:  category,
			Id:        post.Id,
			PostId:    post.Id,
			AuthorId:  post.MemberId,
			ChannelId: post.ChannelId,
			TopicIds:  post.TopicIds,
		}, post, nil, nil
	}

	comment, err := s.storage.GetComment(ctx, id)
	if err != nil {
		return fanout.Target{}, nil, nil, err
	}
	if !domain.IsActive(comment.Status) {
		return fanout.Target{}, nil, nil, internal_errors.Forbidden("Comment is deleted")
	}
	post, err := s.storage.GetPost(ctx, comment.PostId)
	if err != nil {
		return fanout.Target{}, nil, nil, err
	}
	if !domain.IsActive(post.Status) {
		return fanout.Target{}, nil, nil, internal_errors.Forbidden("Post is deleted")
	}
	return fanout.Target{
		Category: category,
		Id:       comment.Id,
		PostId:   post.Id,
		AuthorId: comment.MemberId,
	}, post, comment, nil
}
