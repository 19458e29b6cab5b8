package reporting

import (
	"context"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/internal/usecases/ledgering"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func (s *Service) runSpendReport(ctx context.Context) error {
	ledger, err := s.aggregator.Collect(ctx, s.cfg.Report.LookbackDays)
	if err != nil {
		if errors.Is(err, ledgering.ErrNoData) {
			logrus.Warn("spend report: no data fetched from any source, check API keys")
		}
		return err
	}

	summary := s.reducer.Summarize(ledger)

	logrus.WithFields(logrus.Fields{
		"rows":        len(ledger),
		"total_spend": summary.TotalSpend,
	}).Info("spend report: ledger aggregated")

	html := s.generateOrPlaceholder(ctx, spendPrompt(summary))

	csvBytes, err := ledgerCSV(ledger)
	if err != nil {
		return errors.Wrap(err, "failed to encode ledger CSV")
	}

	return s.sender.Send(ctx, mailer.Message{
		Subject:   "Weekly Spend Analysis - " + time.Now().Format(time.DateOnly),
		HTML:      html,
		Recipient: s.cfg.Report.Recipient,
		Attachments: []domain.Attachment{
			{Filename: "unified_spend.csv", Content: csvBytes},
		},
	})
}
