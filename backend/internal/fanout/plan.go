package fanout

import (
	"github.com/plaza-dev/plaza/shared/domain"
)

// Target is what an attitude is expressed on. For comments PostId is the
// owning post; ChannelId and TopicIds are only read for posts.
type Target struct {
	Category  domain.Category
	Id        string
	PostId    domain.PostId
	AuthorId  domain.MemberId
	ChannelId domain.ChannelId
	TopicIds  []domain.TopicId
}

func fields(prefix string, stems []string) []string {
	out := make([]string, len(stems))
	for i, s := range stems {
		out[i] = prefix + s + "Count"
	}
	return out
}

// AttitudePlan lists the counter increments that follow from transition t of
// actor on target.
func AttitudePlan(actor domain.MemberId, t Transition, target Target) []domain.Increment {
	stems := t.counters()
	if len(stems) == 0 {
		return nil
	}

	authorPrefix := "totalCreation"
	entity := domain.PostRecords
	if target.Category.IsComment() {
		authorPrefix = "totalComment"
		entity = domain.CommentRecords
	}

	plan := []domain.Increment{
		{Collection: domain.MemberStatistics, Key: actor, Fields: fields("total", stems)},
		{Collection: domain.MemberStatistics, Key: target.AuthorId, Fields: fields(authorPrefix, stems)},
		{Collection: entity, Key: target.Id, Fields: fields("total", stems)},
	}
	if target.Category != domain.CategoryPost {
		return plan
	}
	if target.ChannelId != "" {
		plan = append(plan, domain.Increment{Collection: domain.ChannelStatistics, Key: target.ChannelId, Fields: fields("total", stems)})
	}
	for _, topicId := range target.TopicIds {
		plan = append(plan, domain.Increment{Collection: domain.TopicStatistics, Key: topicId, Fields: fields("total", stems)})
	}
	return plan
}

// postScope adds field to the channel and every topic of post.
func postScope(post *domain.Post, field string) []domain.Increment {
	var plan []domain.Increment
	if post.ChannelId != "" {
		plan = append(plan, domain.Increment{Collection: domain.ChannelStatistics, Key: post.ChannelId, Fields: []string{field}})
	}
	for _, topicId := range post.TopicIds {
		plan = append(plan, domain.Increment{Collection: domain.TopicStatistics, Key: topicId, Fields: []string{field}})
	}
	return plan
}

// CommentCreationPlan counts a new comment or subcomment. A subcomment also
// counts towards the post's comment total.
func CommentCreationPlan(comment *domain.Comment, post *domain.Post) []domain.Increment {
	plan := []domain.Increment{
		{Collection: domain.MemberStatistics, Key: comment.MemberId, Fields: []string{domain.FieldCommentCount}},
	}
	if comment.IsSubcomment() {
		plan = append(plan, domain.Increment{Collection: domain.CommentRecords, Key: comment.ParentId, Fields: []string{domain.FieldSubcommentCount}})
	}
	plan = append(plan, domain.Increment{Collection: domain.PostRecords, Key: post.Id, Fields: []string{domain.FieldCommentCount}})
	return append(plan, postScope(post, domain.FieldCommentCount)...)
}

// CommentDeletionPlan counts a soft delete. Totals are never decremented;
// readers subtract the delete counters.
func CommentDeletionPlan(comment *domain.Comment, post *domain.Post) []domain.Increment {
	plan := []domain.Increment{
		{Collection: domain.MemberStatistics, Key: comment.MemberId, Fields: []string{domain.FieldCommentDeleteCount}},
	}
	if comment.IsSubcomment() {
		plan = append(plan, domain.Increment{Collection: domain.CommentRecords, Key: comment.ParentId, Fields: []string{domain.FieldSubcommentDeleteCount}})
	}
	plan = append(plan, domain.Increment{Collection: domain.PostRecords, Key: post.Id, Fields: []string{domain.FieldCommentDeleteCount}})
	return append(plan, postScope(post, domain.FieldCommentDeleteCount)...)
}

func CommentEditPlan(comment *domain.Comment) []domain.Increment {
	return []domain.Increment{
		{Collection: domain.MemberStatistics, Key: comment.MemberId, Fields: []string{domain.FieldCommentEditCount}},
	}
}

// SavePlan counts a save (saved true) or an undo of a save.
func SavePlan(actor domain.MemberId, saved bool, post *domain.Post) []domain.Increment {
	entityField, actorField, authorField := domain.FieldUndoSavedCount, domain.FieldUndoSavedCount, domain.FieldCreationUndoSaved
	if saved {
		entityField, actorField, authorField = domain.FieldSavedCount, domain.FieldSavedCount, domain.FieldCreationSavedCount
	}
	return []domain.Increment{
		{Collection: domain.PostRecords, Key: post.Id, Fields: []string{entityField}},
		{Collection: domain.MemberStatistics, Key: actor, Fields: []string{actorField}},
		{Collection: domain.MemberStatistics, Key: post.MemberId, Fields: []string{authorField}},
	}
}

// FollowPlan counts a follow (active true) or an unfollow on both members.
func FollowPlan(follower, followed domain.MemberId, active bool) []domain.Increment {
	followingField, followerField := domain.FieldUndoFollowingCount, domain.FieldUndoFollowerCount
	if active {
		followingField, followerField = domain.FieldFollowingCount, domain.FieldFollowerCount
	}
	return []domain.Increment{
		{Collection: domain.MemberStatistics, Key: follower, Fields: []string{followingField}},
		{Collection: domain.MemberStatistics, Key: followed, Fields: []string{followerField}},
	}
}

func PostCreationPlan(post *domain.Post) []domain.Increment {
	plan := []domain.Increment{
		{Collection: domain.MemberStatistics, Key: post.MemberId, Fields: []string{domain.FieldCreationCount}},
	}
	return append(plan, postScope(post, domain.FieldCreationCount)...)
}
