package app

import (
	"context"
	"time"

	"sipinjam/models"
	"sipinjam/notify"
)

// StartOverdueSweep runs the periodic overdue pass. A short Redis SetNX
// lease keeps multiple instances from sweeping at the same moment; the
// sweep itself is idempotent either way.
func (a *App) StartOverdueSweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(a.Config.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.sweepOnce(ctx)
			}
		}
	}()
}

func (a *App) sweepOnce(ctx context.Context) {
	ok, err := a.RDB.SetNX(ctx, "sipinjam:sweep:lease", "1", a.Config.SweepInterval/2).Result()
	if err != nil {
		a.Log.Warnw("sweep lease", "error", err)
		return
	}
	if !ok {
		return
	}
	res, err := a.Repo.SweepOverdue(ctx, time.Now().UTC())
	if err != nil {
		a.Log.Warnw("overdue sweep", "error", err)
		return
	}
	for _, id := range res.Marked {
		a.Notifier.Publish(ctx, notify.TopicRequestChanged, id, map[string]string{"event": models.ActionOverdue})
		a.Notifier.Publish(ctx, notify.TopicActivityLogged, id, map[string]string{"action": models.ActionOverdue})
		a.Log.Infow("request overdue", "request", id)
	}
}
