package domain

type Attitude = int

const (
	Dislike Attitude = -1
	Neutral Attitude = 0
	Like    Attitude = 1
)

func IsValidAttitude(a Attitude) bool {
	return a >= Dislike && a <= Like
}

// AttitudeRecord is the stance of one member towards one post and the
// comments under it. A missing comment key means Neutral.
type AttitudeRecord struct {
	MemberId               MemberId               `json:"memberId"`
	PostId                 PostId                 `json:"postId"`
	Attitude               Attitude               `json:"attitude"`
	CommentAttitudeMapping map[CommentId]Attitude `json:"commentAttitudeMapping"`
}

// Get returns the stored attitude for the post itself (empty commentId) or for
// a comment under the post.
func (r *AttitudeRecord) Get(commentId CommentId) Attitude {
	if r == nil {
		return Neutral
	}
	if commentId == "" {
		return r.Attitude
	}
	return r.CommentAttitudeMapping[commentId]
}

// Set stores the attitude in the slot selected by commentId.
func (r *AttitudeRecord) Set(commentId CommentId, a Attitude) {
	if commentId == "" {
		r.Attitude = a
		return
	}
	if r.CommentAttitudeMapping == nil {
		r.CommentAttitudeMapping = make(map[CommentId]Attitude)
	}
	r.CommentAttitudeMapping[commentId] = a
}
