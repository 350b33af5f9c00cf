package service

import (
	"context"

	"github.com/plaza-dev/plaza/shared/domain"
	internal_errors "github.com/plaza-dev/plaza/shared/errors"
)

type NoticeService interface {
	List(ctx context.Context, memberId domain.MemberId, category domain.NoticeCategory) ([]domain.Notice, error)
	Counters(ctx context.Context, memberId domain.MemberId) (domain.Counters, error)
}

type Notice struct {
	notices   NoticeStorage
	stats     StatisticsReader
	listLimit int
}

type NoticeStorage interface {
	ListNotices(ctx context.Context, memberId domain.MemberId, category domain.NoticeCategory, limit int) ([]domain.Notice, error)
}

type StatisticsReader interface {
	GetStatistics(ctx context.Context, collection domain.Collection, key string) (domain.Counters, error)
}

func NewNotice(notices NoticeStorage, stats StatisticsReader, listLimit int) NoticeService {
	return &Notice{notices: notices, stats: stats, listLimit: listLimit}
}

func (s *Notice) List(ctx context.Context, memberId domain.MemberId, category domain.NoticeCategory) ([]domain.Notice, error) {
	if !domain.IsNoticeCategory(category) {
		return nil, internal_errors.BadRequest("Unknown notice category")
	}
	return s.notices.ListNotices(ctx, memberId, category, s.listLimit)
}

// Counters returns how many notices of each category memberId received.
func (s *Notice) Counters(ctx context.Context, memberId domain.MemberId) (domain.Counters, error) {
	return s.stats.GetStatistics(ctx, domain.NotificationStatistics, memberId)
}
