// Package jobs holds the scheduled maintenance tasks.
package jobs

import (
	"context"
	"time"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/metrics"
	"github.com/anjiri1684/tutor_orm/notifications"
	"github.com/robfig/cron/v3"
)

// Runner executes the jobs against one client.
type Runner struct {
	db           *client.Client
	mailer       notifications.Mailer
	archiveAfter time.Duration
	timeout      time.Duration
	now          func() time.Time
}

func NewRunner(db *client.Client, mailer notifications.Mailer, archiveAfter time.Duration) *Runner {
	return &Runner{
		db:           db,
		mailer:       mailer,
		archiveAfter: archiveAfter,
		timeout:      5 * time.Minute,
		now:          time.Now,
	}
}

// Schedule registers every job on c.
func (r *Runner) Schedule(c *cron.Cron, overdueSpec, archiveSpec string) error {
	if _, err := c.AddFunc(overdueSpec, r.wrap("flag_overdue_invoices", func(ctx context.Context) error {
		_, err := r.FlagOverdueInvoices(ctx)
		return err
	})); err != nil {
		return err
	}
	_, err := c.AddFunc(archiveSpec, r.wrap("archive_finished_enrollments", func(ctx context.Context) error {
		_, err := r.ArchiveFinishedEnrollments(ctx)
		return err
	}))
	return err
}

func (r *Runner) wrap(name string, fn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		start := time.Now()
		logger.Info().Str("job", name).Msg("running job")
		err := fn(ctx)
		metrics.RecordJob(name, err)
		if err != nil {
			logger.Error().Err(err).Str("job", name).Msg("job failed")
			return
		}
		logger.Info().Str("job", name).Dur("elapsed", time.Since(start)).Msg("job finished")
	}
}
