package draft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultJanitorSpec = "@daily"
	purgeTimeout       = 30 * time.Second
)

type Purger interface {
	PurgeDrafts(ctx context.Context, before time.Time) (int, error)
}

// Janitor deletes drafts nobody touched for maxAge.
type Janitor struct {
	log    *slog.Logger
	purger Purger
	maxAge time.Duration
	cron   *cron.Cron
	now    func() time.Time
}

func NewJanitor(log *slog.Logger, purger Purger, spec string, maxAge time.Duration) (*Janitor, error) {
	const op = "draft.NewJanitor"

	if spec == "" {
		spec = DefaultJanitorSpec
	}

	j := &Janitor{
		log:    log,
		purger: purger,
		maxAge: maxAge,
		cron:   cron.New(),
		now:    time.Now,
	}

	if _, err := j.cron.AddFunc(spec, func() { j.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%s: failed to create cron job %q: %w", op, spec, err)
	}

	return j, nil
}

func (j *Janitor) Start() {
	j.log.Info("draft janitor started", slog.Duration("max_age", j.maxAge))
	j.cron.Start()
}

// Stop waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Run purges once and returns how many drafts were removed.
func (j *Janitor) Run(ctx context.Context) int {
	const op = "draft.Janitor.Run"

	log := j.log.With(slog.String("op", op))

	if j.maxAge <= 0 {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	n, err := j.purger.PurgeDrafts(ctx, j.now().Add(-j.maxAge))
	if err != nil {
		log.Error("failed to purge drafts", slog.String("error", err.Error()))
		return 0
	}

	if n > 0 {
		log.Info("stale drafts purged", slog.Int("count", n))
	}
	return n
}
