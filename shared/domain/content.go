package domain

import "time"

// Counters is a bag of additive statistics, e.g. "totalLikedCount": 3.
// A missing key reads as zero.
type Counters map[string]int64

func (c Counters) Get(field string) int64 {
	return c[field]
}

type Post struct {
	Id          PostId
	MemberId    MemberId
	Title       string
	Content     string
	ChannelId   ChannelId
	TopicIds    []TopicId
	Status      int
	Counters    Counters
	CreatedTime time.Time
}

type PostCreationData struct {
	Author    MemberId
	Title     string
	Content   string
	ChannelId ChannelId
	TopicIds  []TopicId
}

type Comment struct {
	Id             CommentId
	ParentId       string // post id for comments, comment id for subcomments
	PostId         PostId
	MemberId       MemberId
	Content        string
	Cue            []MemberId
	Status         int
	Counters       Counters
	EditHistory    []CommentEdit
	CreatedTime    time.Time
	LastEditedTime time.Time
}

type CommentEdit struct {
	Content    string     `json:"content"`
	Cue        []MemberId `json:"cue"`
	EditedTime time.Time  `json:"editedTime"`
}

type CommentCreationData struct {
	ParentId string
	Author   MemberId
	Content  string
	Cue      []MemberId
}

type CommentEditData struct {
	Id      CommentId
	Editor  MemberId
	Content string
	Cue     []MemberId
}

// IsSubcomment reports whether the comment hangs under another comment.
func (c *Comment) IsSubcomment() bool {
	return CategoryOf(c.Id) == CategorySubcomment
}

type SaveRecord struct {
	MemberId    MemberId
	PostId      PostId
	IsActive    bool
	CreatedTime time.Time
}
