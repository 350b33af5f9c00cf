package domain

import "time"

type NoticeCategory = string

const (
	NoticeLike   NoticeCategory = "like"
	NoticeSave   NoticeCategory = "save"
	NoticeReply  NoticeCategory = "reply"
	NoticeCue    NoticeCategory = "cue"
	NoticeFollow NoticeCategory = "follow"
)

var NoticeCategories = []NoticeCategory{NoticeLike, NoticeSave, NoticeReply, NoticeCue, NoticeFollow}

func IsNoticeCategory(c string) bool {
	for _, nc := range NoticeCategories {
		if nc == c {
			return true
		}
	}
	return false
}

// Notice is one notification event for MemberId. Records with the same
// NoticeId replace each other, so repeated events collapse into one.
type Notice struct {
	MemberId    MemberId       `dynamodbav:"MemberId" json:"memberId"`
	NoticeId    NoticeId       `dynamodbav:"NoticeId" json:"noticeId"`
	Category    NoticeCategory `dynamodbav:"Category" json:"category"`
	InitiateId  MemberId       `dynamodbav:"InitiateId" json:"initiateId"`
	PostId      PostId         `dynamodbav:"PostId" json:"postId"`
	PostTitle   string         `dynamodbav:"PostTitle" json:"postTitle"`
	CommentId   CommentId      `dynamodbav:"CommentId" json:"commentId,omitempty"`
	Brief       string         `dynamodbav:"Brief" json:"brief,omitempty"`
	CreatedTime int64          `dynamodbav:"CreatedTime" json:"createdTime"`
	IsActive    bool           `dynamodbav:"IsActive" json:"-"`
}

// NewNoticeId derives the deterministic composite id of a notice.
func NewNoticeId(category NoticeCategory, initiateId MemberId, postId PostId, commentId CommentId) NoticeId {
	return category + initiateId + postId + commentId
}

func NewNotice(recipient MemberId, category NoticeCategory, initiateId MemberId, postId PostId, commentId CommentId) Notice {
	return Notice{
		MemberId:    recipient,
		NoticeId:    NewNoticeId(category, initiateId, postId, commentId),
		Category:    category,
		InitiateId:  initiateId,
		PostId:      postId,
		CommentId:   commentId,
		CreatedTime: time.Now().UnixMilli(),
		IsActive:    true,
	}
}
