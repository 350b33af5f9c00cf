package api

import "github.com/plaza-dev/plaza/shared/domain"

type CreatePostRequest struct {
	Title     string           `json:"title" validate:"required"`
	Content   string           `json:"content" validate:"required"`
	ChannelId domain.ChannelId `json:"channelId"`
	TopicIds  []domain.TopicId `json:"topicIds" validate:"max=5"`
}

type CreatePostResponse struct {
	PostId domain.PostId `json:"postId"`
}

type PostView struct {
	PostId              domain.PostId    `json:"postId"`
	MemberId            domain.MemberId  `json:"memberId"`
	Title               string           `json:"title"`
	Content             string           `json:"content"`
	ChannelId           domain.ChannelId `json:"channelId"`
	TopicIds            []domain.TopicId `json:"topicIds"`
	Status              int              `json:"status"`
	LikedCount          int64            `json:"likedCount"`
	DislikedCount       int64            `json:"dislikedCount"`
	CommentCount        int64            `json:"commentCount"`
	SavedCount          int64            `json:"savedCount"`
	CreatedTimeBySecond int64            `json:"createdTimeBySecond"`
}

func NewPostView(p *domain.Post) PostView {
	v := PostView{
		PostId:              p.Id,
		MemberId:            p.MemberId,
		Title:               p.Title,
		Content:             p.Content,
		ChannelId:           p.ChannelId,
		TopicIds:            p.TopicIds,
		Status:              p.Status,
		LikedCount:          net(p.Counters, "totalLikedCount", "totalUndoLikedCount"),
		DislikedCount:       net(p.Counters, "totalDislikedCount", "totalUndoDislikedCount"),
		CommentCount:        net(p.Counters, domain.FieldCommentCount, domain.FieldCommentDeleteCount),
		SavedCount:          net(p.Counters, domain.FieldSavedCount, domain.FieldUndoSavedCount),
		CreatedTimeBySecond: unixOrZero(p.CreatedTime),
	}
	if v.TopicIds == nil {
		v.TopicIds = []domain.TopicId{}
	}
	if !domain.IsActive(p.Status) {
		v.Title = ""
		v.Content = ""
	}
	return v
}
