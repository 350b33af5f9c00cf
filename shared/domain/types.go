package domain

import "strings"

type (
	MemberId  = string
	PostId    = string
	CommentId = string
	ChannelId = string
	TopicId   = string
	NoticeId  = string
)

// Id prefixes. A comment id starting with SubcommentPrefix belongs to a
// subcomment whose parent is a top-level comment.
const (
	MemberPrefix     = "M"
	PostPrefix       = "P"
	CommentPrefix    = "C"
	SubcommentPrefix = "D"
)

const (
	IdMinLength = 8
	IdMaxLength = 24
)

// Category is the kind of entity an id refers to.
type Category string

const (
	CategoryPost       Category = "post"
	CategoryComment    Category = "comment"
	CategorySubcomment Category = "subcomment"
	CategoryMember     Category = "member"
	CategoryUnknown    Category = ""
)

// CategoryOf infers the category from the id prefix. Ids that are too short,
// too long or contain anything but ASCII letters and digits are unknown.
func CategoryOf(id string) Category {
	if len(id) < IdMinLength || len(id) > IdMaxLength {
		return CategoryUnknown
	}
	for _, c := range id {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return CategoryUnknown
		}
	}
	switch {
	case strings.HasPrefix(id, PostPrefix):
		return CategoryPost
	case strings.HasPrefix(id, CommentPrefix):
		return CategoryComment
	case strings.HasPrefix(id, SubcommentPrefix):
		return CategorySubcomment
	case strings.HasPrefix(id, MemberPrefix):
		return CategoryMember
	}
	return CategoryUnknown
}

func (c Category) IsComment() bool {
	return c == CategoryComment || c == CategorySubcomment
}

// Status codes shared by posts and comments.
// Non-negative values are active variants, negative values are deleted.
const (
	StatusActive  = 200
	StatusEdited  = 201
	StatusDeleted = -1
)

func IsActive(status int) bool {
	return status >= 0
}
