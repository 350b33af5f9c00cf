package domain

import "time"

type Member struct {
	Id          MemberId
	Nickname    string
	Status      int // negative means suspended
	CreatedTime time.Time
}

func (m *Member) Suspended() bool {
	return m.Status < 0
}

// BlockingRecord says Blocker does not want notifications initiated by Blocked.
type BlockingRecord struct {
	MemberId  MemberId `dynamodbav:"MemberId"`
	BlockedId MemberId `dynamodbav:"BlockedId"`
	IsActive  bool     `dynamodbav:"IsActive"`
	UpdatedAt int64    `dynamodbav:"UpdatedAt"`
}

// FollowRecord says MemberId follows FollowedId.
type FollowRecord struct {
	MemberId   MemberId `dynamodbav:"MemberId"`
	FollowedId MemberId `dynamodbav:"FollowedId"`
	IsActive   bool     `dynamodbav:"IsActive"`
	UpdatedAt  int64    `dynamodbav:"UpdatedAt"`
}
