package service

import (
	"context"

	"github.com/plaza-dev/plaza/backend/internal/fanout"
	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
	"github.com/plaza-dev/plaza/shared/utils"
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error)
	Get(ctx context.Context, id domain.PostId) (*domain.Post, error)
}

type Post struct {
	storage PostStorage
	content *ContentPolicy
	effects *fanout.Effects
}

type PostStorage interface {
	MemberStorage
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
}

func NewPost(storage PostStorage, content *ContentPolicy, effects *fanout.Effects) PostService {
	return &Post{storage: storage, content: content, effects: effects}
}

func (s *Post) Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	if _, err := activeMember(ctx, s.storage, data.Author); err != nil {
		return nil, err
	}

	title, err := s.content.Title(data.Title)
	if err != nil {
		return nil, err
	}
	body, err := s.content.Body(data.Content)
	if err != nil {
		return nil, err
	}
	topics, err := s.content.Topics(data.TopicIds)
	if err != nil {
		return nil, err
	}
	if data.ChannelId != "" && !validId(data.ChannelId, domain.CategoryUnknown) {
		return nil, internal_errors.BadRequest("Invalid channel id")
	}

	post := &domain.Post{
		Id:        utils.NewId(domain.PostPrefix),
		MemberId:  data.Author,
		Title:     title,
		Content:   body,
		ChannelId: data.ChannelId,
		TopicIds:  topics,
		Status:    domain.StatusActive,
	}
	if err := s.storage.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.effects.Run(ctx, "post_create", fanout.PostCreationPlan(post))
	return post, nil
}

func (s *Post) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if domain.CategoryOf(id) != domain.CategoryPost {
		return nil, internal_errors.BadRequest("Invalid post id")
	}
	return s.storage.GetPost(ctx, id)
}
