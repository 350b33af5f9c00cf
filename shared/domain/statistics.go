package domain

// Collection names a set of counter-bearing records.
type Collection string

const (
	MemberStatistics       Collection = "member_statistics"
	ChannelStatistics      Collection = "channel_statistics"
	TopicStatistics        Collection = "topic_statistics"
	NotificationStatistics Collection = "notification_statistics"
	PostRecords            Collection = "posts"
	CommentRecords         Collection = "comments"
)

// IsStatistics reports whether records of c are created on first increment.
// Post and comment records must already exist.
func (c Collection) IsStatistics() bool {
	switch c {
	case MemberStatistics, ChannelStatistics, TopicStatistics, NotificationStatistics:
		return true
	}
	return false
}

// Increment adds one to every field of the record Key in Collection.
type Increment struct {
	Collection Collection
	Key        string
	Fields     []string
}

// Counter field names
const (
	FieldCommentCount          = "totalCommentCount"
	FieldCommentEditCount      = "totalCommentEditCount"
	FieldCommentDeleteCount    = "totalCommentDeleteCount"
	FieldSubcommentCount       = "totalSubcommentCount"
	FieldSubcommentDeleteCount = "totalSubcommentDeleteCount"
	FieldCreationCount         = "totalCreationCount"
	FieldSavedCount            = "totalSavedCount"
	FieldUndoSavedCount        = "totalUndoSavedCount"
	FieldCreationSavedCount    = "totalCreationSavedCount"
	FieldCreationUndoSaved     = "totalCreationUndoSavedCount"
	FieldFollowingCount        = "totalFollowingCount"
	FieldUndoFollowingCount    = "totalUndoFollowingCount"
	FieldFollowerCount         = "totalFollowerCount"
	FieldUndoFollowerCount     = "totalUndoFollowerCount"
)
