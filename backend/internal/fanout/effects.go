package fanout

import (
	"context"

	"github.com/plaza-dev/plaza/shared/domain"
)

// Effects schedules the side effects of a committed write: counter
// increments first, then notices. The caller never waits for them.
type Effects struct {
	dispatcher Dispatcher
	applier    *Applier
	notifier   *Notifier
}

func NewEffects(dispatcher Dispatcher, applier *Applier, notifier *Notifier) *Effects {
	return &Effects{dispatcher: dispatcher, applier: applier, notifier: notifier}
}

func (e *Effects) Run(ctx context.Context, name string, plan []domain.Increment, notices ...domain.Notice) {
	if len(plan) == 0 && len(notices) == 0 {
		return
	}
	e.dispatcher.Submit(ctx, name, func(ctx context.Context) {
		e.applier.Apply(ctx, plan)
		for _, n := range notices {
			e.notifier.Notify(ctx, n)
		}
	})
}
