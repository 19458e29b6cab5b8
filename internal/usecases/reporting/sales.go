package reporting

import (
	"context"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func (s *Service) runSalesReport(ctx context.Context) error {
	targetMonday := utils.LastMonday(time.Now())

	metrics, err := s.sales.WeeklySales(ctx, targetMonday)
	if err != nil {
		return errors.Wrap(err, "failed to fetch weekly sales")
	}

	logrus.WithFields(logrus.Fields{
		"target_monday": targetMonday.Format(time.DateOnly),
		"metrics":       len(metrics),
	}).Info("sales report: warehouse metrics fetched")

	html := s.generateOrPlaceholder(ctx, salesPrompt(metrics))

	csvBytes, err := salesCSV(metrics)
	if err != nil {
		return errors.Wrap(err, "failed to encode sales CSV")
	}

	return s.sender.Send(ctx, mailer.Message{
		Subject:   "Weekly Sales Summary - " + time.Now().Format(time.DateOnly),
		HTML:      html,
		Recipient: s.cfg.Report.Recipient,
		Attachments: []domain.Attachment{
			{Filename: "weekly_sales.csv", Content: csvBytes},
		},
	})
}
