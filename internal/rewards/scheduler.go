package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/store"
	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/util"
)

const backfillTimeout = 5 * time.Minute

// StartScheduler runs Backfill on the given cron spec until ctx is done.
// An empty spec disables the schedule and returns a nil stop func.
func StartScheduler(ctx context.Context, s store.Store, spec string) (stop func(), err error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New(cron.WithLocation(util.Location()))
	_, err = c.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, backfillTimeout)
		defer cancel()
		if _, err := Backfill(runCtx, s); err != nil {
			logrus.WithError(err).Warn("scheduled reward backfill failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("reward backfill schedule %q: %w", spec, err)
	}

	c.Start()
	logrus.Infof("reward backfill scheduled (%s)", spec)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return func() { <-c.Stop().Done() }, nil
}
