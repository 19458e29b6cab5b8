package scheduler

import (
	"context"
	"time"

	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/internal/usecases/reporting"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// reportJob couples one report kind with its cron expression and enable flag.
type reportJob struct {
	kind    domain.ReportKind
	cron    string
	enabled bool
}

// ReportScheduler runs the weekly report pipelines on their cron schedules.
// Overlap protection lives in the reporting service itself, so a scheduled
// run racing a manual trigger just loses and is logged.
type ReportScheduler struct {
	scheduler *gocron.Scheduler
	reporter  reporting.Reporter
	jobs      []reportJob
}

func NewReportScheduler(cfg *config.Config, reporter reporting.Reporter) *ReportScheduler {
	jobs := []reportJob{
		{kind: domain.ReportKindSpend, cron: cfg.Schedules.SpendCron, enabled: cfg.Schedules.SpendEnabled},
		{kind: domain.ReportKindInventory, cron: cfg.Schedules.InventoryCron, enabled: cfg.Schedules.InventoryEnabled},
		{kind: domain.ReportKindSales, cron: cfg.Schedules.SalesCron, enabled: cfg.Schedules.SalesEnabled},
	}

	for _, job := range jobs {
		logrus.WithFields(logrus.Fields{
			"report":  job.kind,
			"cron":    job.cron,
			"enabled": job.enabled,
		}).Info("scheduler: report schedule loaded")
	}

	return &ReportScheduler{
		scheduler: gocron.NewScheduler(time.Local),
		reporter:  reporter,
		jobs:      jobs,
	}
}

// Start registers the enabled jobs and runs the scheduler asynchronously
// until the context is cancelled.
func (s *ReportScheduler) Start(ctx context.Context) error {
	scheduled := 0

	for _, job := range s.jobs {
		if !job.enabled {
			logrus.WithField("report", job.kind).Info("scheduler: report disabled by configuration")
			continue
		}

		kind := job.kind
		_, err := s.scheduler.Cron(job.cron).Do(func() {
			if err := s.reporter.Run(ctx, kind); err != nil {
				logrus.WithFields(logrus.Fields{
					"report": kind,
					"error":  err.Error(),
				}).Error("scheduler: scheduled report run failed")
			}
		})
		if err != nil {
			return errors.Wrapf(err, "failed to schedule %s report", kind)
		}

		scheduled++
	}

	if scheduled == 0 {
		logrus.Info("scheduler: no report schedules enabled")
		return nil
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: application context cancelled, stopping")
		s.scheduler.Stop()
	}()

	logrus.WithField("jobs", scheduled).Info("scheduler: started")
	return nil
}

// Stop halts the scheduler; in-flight runs finish on their own.
func (s *ReportScheduler) Stop() {
	s.scheduler.Stop()
}
