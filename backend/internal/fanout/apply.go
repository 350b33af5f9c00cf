package fanout

import (
	"context"
	"log/slog"

	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/plaza-dev/plaza/shared/logger"
)

type StatisticsStorage interface {
	Increment(ctx context.Context, inc domain.Increment) error
}

type NoticeStorage interface {
	PutNotice(ctx context.Context, notice domain.Notice) error
}

type BlockingChecker interface {
	IsBlocked(ctx context.Context, blocker, blocked domain.MemberId) (bool, error)
}

// Applier writes increments one by one. A failed write is logged and counted,
// the rest of the plan still runs.
type Applier struct {
	stats StatisticsStorage
	log   *slog.Logger
}

func NewApplier(stats StatisticsStorage) *Applier {
	return &Applier{stats: stats, log: logger.Component("fanout")}
}

// Apply returns the number of failed writes.
func (a *Applier) Apply(ctx context.Context, plan []domain.Increment) int {
	failed := 0
	for _, inc := range plan {
		if len(inc.Fields) == 0 || inc.Key == "" {
			continue
		}
		if err := a.stats.Increment(ctx, inc); err != nil {
			failed++
			writesTotal.WithLabelValues(string(inc.Collection), "failed").Inc()
			a.log.Error("failed to update statistics",
				"collection", inc.Collection,
				"key", inc.Key,
				"fields", inc.Fields,
				"error", err)
			continue
		}
		writesTotal.WithLabelValues(string(inc.Collection), "ok").Inc()
	}
	return failed
}

// Notifier delivers notices unless the recipient blocked the initiator.
type Notifier struct {
	blocking BlockingChecker
	notices  NoticeStorage
	applier  *Applier
	log      *slog.Logger
}

func NewNotifier(blocking BlockingChecker, notices NoticeStorage, applier *Applier) *Notifier {
	return &Notifier{
		blocking: blocking,
		notices:  notices,
		applier:  applier,
		log:      logger.Component("notifier"),
	}
}

// Notify reports whether the notice was written. The notice write and the
// notification counter are independent; a failed notice still counts.
func (n *Notifier) Notify(ctx context.Context, notice domain.Notice) bool {
	if notice.MemberId == "" || notice.MemberId == notice.InitiateId {
		return false
	}

	blocked, err := n.blocking.IsBlocked(ctx, notice.MemberId, notice.InitiateId)
	if err != nil {
		writesTotal.WithLabelValues("blocking", "failed").Inc()
		n.log.Error("failed to check blocking", "recipient", notice.MemberId, "initiator", notice.InitiateId, "error", err)
		return false
	}
	if blocked {
		return false
	}

	written := true
	if err := n.notices.PutNotice(ctx, notice); err != nil {
		written = false
		writesTotal.WithLabelValues("notice", "failed").Inc()
		n.log.Error("failed to upsert notice", "notice_id", notice.NoticeId, "recipient", notice.MemberId, "error", err)
	} else {
		writesTotal.WithLabelValues("notice", "ok").Inc()
	}

	n.applier.Apply(ctx, []domain.Increment{{
		Collection: domain.NotificationStatistics,
		Key:        notice.MemberId,
		Fields:     []string{string(notice.Category)},
	}})
	return written
}
