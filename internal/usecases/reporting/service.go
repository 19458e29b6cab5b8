package reporting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/mailbox"
	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	"github.com/daylightco/finops-reporter/infrastructure/narrative"
	"github.com/daylightco/finops-reporter/infrastructure/warehouse"
	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/internal/usecases/diffing"
	"github.com/daylightco/finops-reporter/internal/usecases/ledgering"
	"github.com/daylightco/finops-reporter/internal/usecases/summarizing"
	"github.com/daylightco/finops-reporter/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownReportKind = errors.New("unknown report kind")
	ErrAlreadyRunning    = errors.New("report run already in progress")
)

// placeholder body used when the narrative generator fails; the numeric CSV
// attachments still go out.
const narrativeFailedHTML = "<p>Error generating report.</p>"

// Reporter runs one of the report pipelines end to end.
type Reporter interface {
	Run(ctx context.Context, kind domain.ReportKind) error
	Status() []RunStatus
}

// RunStatus describes the last run of one report kind.
type RunStatus struct {
	Kind            domain.ReportKind `json:"kind"`
	Running         bool              `json:"running"`
	LastStartedAt   *time.Time        `json:"last_started_at,omitempty"`
	LastCompletedAt *time.Time        `json:"last_completed_at,omitempty"`
	LastError       string            `json:"last_error,omitempty"`
}

type Service struct {
	cfg        *config.Config
	aggregator ledgering.Aggregator
	reducer    summarizing.Reducer
	differ     diffing.Differ
	snapshots  mailbox.SnapshotFetcher
	sales      warehouse.WeeklySalesFetcher
	generator  narrative.Generator
	sender     mailer.Mailer

	mu     sync.Mutex
	status map[domain.ReportKind]*RunStatus
}

func NewService(
	cfg *config.Config,
	aggregator ledgering.Aggregator,
	reducer summarizing.Reducer,
	differ diffing.Differ,
	snapshots mailbox.SnapshotFetcher,
	sales warehouse.WeeklySalesFetcher,
	generator narrative.Generator,
	sender mailer.Mailer,
) *Service {
	return &Service{
		cfg:        cfg,
		aggregator: aggregator,
		reducer:    reducer,
		differ:     differ,
		snapshots:  snapshots,
		sales:      sales,
		generator:  generator,
		sender:     sender,
		status: map[domain.ReportKind]*RunStatus{
			domain.ReportKindSpend:     {Kind: domain.ReportKindSpend},
			domain.ReportKindInventory: {Kind: domain.ReportKindInventory},
			domain.ReportKindSales:     {Kind: domain.ReportKindSales},
		},
	}
}

// Run executes one report pipeline. Runs of the same kind never overlap: a
// manual trigger while the scheduled run is still going is rejected with
// ErrAlreadyRunning.
func (s *Service) Run(ctx context.Context, kind domain.ReportKind) error {
	if err := s.markStarted(kind); err != nil {
		return err
	}

	runID, _ := utils.GenerateID()
	logrus.WithFields(logrus.Fields{
		"report": kind,
		"run_id": runID,
	}).Info("report: run started")

	var err error
	switch kind {
	case domain.ReportKindSpend:
		err = s.runSpendReport(ctx)
	case domain.ReportKindInventory:
		err = s.runInventoryReport(ctx)
	case domain.ReportKindSales:
		err = s.runSalesReport(ctx)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}

	s.markCompleted(kind, err)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"report": kind,
			"run_id": runID,
			"error":  err.Error(),
		}).Error("report: run failed")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"report": kind,
		"run_id": runID,
	}).Info("report: run completed")

	return nil
}

// Status returns a copy of the per-kind run bookkeeping.
func (s *Service) Status() []RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]RunStatus, 0, len(s.status))
	for _, kind := range []domain.ReportKind{domain.ReportKindSpend, domain.ReportKindInventory, domain.ReportKindSales} {
		statuses = append(statuses, *s.status[kind])
	}

	return statuses
}

func (s *Service) markStarted(kind domain.ReportKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.status[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReportKind, kind)
	}
	if status.Running {
		return ErrAlreadyRunning
	}

	now := time.Now()
	status.Running = true
	status.LastStartedAt = &now

	return nil
}

func (s *Service) markCompleted(kind domain.ReportKind, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.status[kind]
	now := time.Now()
	status.Running = false
	status.LastCompletedAt = &now
	status.LastError = ""
	if err != nil {
		status.LastError = err.Error()
	}
}

// generateOrPlaceholder asks the narrative generator for prose and falls
// back to a placeholder body when it fails. Narrative failure never aborts a
// run: the numeric attachments are already computed and remain valid.
func (s *Service) generateOrPlaceholder(ctx context.Context, prompt string) string {
	html, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logrus.WithError(err).Error("report: narrative generation failed, using placeholder body")
		return narrativeFailedHTML
	}
	return html
}
