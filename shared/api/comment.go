package api

import (
	"time"

	"github.com/plaza-dev/plaza/shared/domain"
)

type CreateCommentRequest struct {
	Content string            `json:"content" validate:"required"`
	Cue     []domain.MemberId `json:"cue,omitempty"`
}

type EditCommentRequest struct {
	Content string            `json:"content" validate:"required"`
	Cue     []domain.MemberId `json:"cue,omitempty"`
}

type CreateCommentResponse struct {
	CommentId domain.CommentId `json:"commentId"`
}

// CommentView is what other members may see of a comment. Deleted comments
// keep their place but lose content and cue.
type CommentView struct {
	CommentId              domain.CommentId  `json:"commentId"`
	ParentId               string            `json:"parentId"`
	PostId                 domain.PostId     `json:"postId"`
	MemberId               domain.MemberId   `json:"memberId"`
	Content                string            `json:"content"`
	Cue                    []domain.MemberId `json:"cue"`
	Status                 int               `json:"status"`
	LikedCount             int64             `json:"likedCount"`
	DislikedCount          int64             `json:"dislikedCount"`
	SubcommentCount        int64             `json:"subcommentCount,omitempty"`
	Edited                 bool              `json:"edited"`
	CreatedTimeBySecond    int64             `json:"createdTimeBySecond"`
	LastEditedTimeBySecond int64             `json:"lastEditedTimeBySecond"`
}

func NewCommentView(c *domain.Comment) CommentView {
	v := CommentView{
		CommentId:              c.Id,
		ParentId:               c.ParentId,
		PostId:                 c.PostId,
		MemberId:               c.MemberId,
		Content:                c.Content,
		Cue:                    c.Cue,
		Status:                 c.Status,
		LikedCount:             net(c.Counters, "totalLikedCount", "totalUndoLikedCount"),
		DislikedCount:          net(c.Counters, "totalDislikedCount", "totalUndoDislikedCount"),
		Edited:                 c.Status == domain.StatusEdited,
		CreatedTimeBySecond:    unixOrZero(c.CreatedTime),
		LastEditedTimeBySecond: unixOrZero(c.LastEditedTime),
	}
	if !c.IsSubcomment() {
		v.SubcommentCount = net(c.Counters, domain.FieldSubcommentCount, domain.FieldSubcommentDeleteCount)
	}
	if !domain.IsActive(c.Status) {
		v.Content = ""
		v.Cue = []domain.MemberId{}
	}
	if v.Cue == nil {
		v.Cue = []domain.MemberId{}
	}
	return v
}

type CommentListResponse struct {
	Comments []CommentView `json:"comments"`
}

func NewCommentListResponse(comments []domain.Comment) CommentListResponse {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, NewCommentView(&comments[i]))
	}
	return CommentListResponse{Comments: views}
}

// net is a total minus its undo counter, never below zero.
func net(c domain.Counters, total, undo string) int64 {
	n := c.Get(total) - c.Get(undo)
	if n < 0 {
		return 0
	}
	return n
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
