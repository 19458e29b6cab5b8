package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/sirupsen/logrus"
)

// ErrNoSnapshots is returned when the mailbox holds no inventory emails.
var ErrNoSnapshots = errors.New("no inventory emails found")

func (s *Service) runInventoryReport(ctx context.Context) error {
	snapshots, err := s.snapshots.FetchLatestSnapshots(ctx, 2)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		logrus.Warn("inventory report: no inventory emails found")
		return ErrNoSnapshots
	}

	var previous, current domain.DatedSnapshot
	if len(snapshots) == 1 {
		// Single week on file: compare it against itself so the report still
		// goes out, with zero sales across the board.
		logrus.Info("inventory report: only one snapshot found, reporting without a comparison week")
		previous, current = snapshots[0], snapshots[0]
	} else {
		previous, current = snapshots[0], snapshots[1]
		logrus.WithFields(logrus.Fields{
			"previous": previous.Date.Format(time.DateOnly),
			"current":  current.Date.Format(time.DateOnly),
		}).Info("inventory report: comparing snapshots")
	}

	rows := s.differ.Diff(previous.Snapshot, current.Snapshot)
	if len(rows) == 0 {
		// No join partners is not an error; an empty comparison is still a
		// report the recipient may want to see.
		logrus.Warn("inventory report: snapshots share no items, report will be empty")
	}

	html := s.generateOrPlaceholder(ctx, inventoryPrompt(rows))

	attachments := make([]domain.Attachment, 0, len(snapshots))
	for _, snapshot := range snapshots {
		content, err := snapshot.Snapshot.EncodeCSV()
		if err != nil {
			logrus.WithError(err).Warn("inventory report: failed to re-encode snapshot attachment")
			continue
		}
		attachments = append(attachments, domain.Attachment{
			Filename: "inventory_" + snapshot.Date.Format("20060102") + ".csv",
			Content:  content,
		})
	}

	return s.sender.Send(ctx, mailer.Message{
		Subject:     "Weekly Inventory Report - " + time.Now().Format(time.DateOnly),
		HTML:        html,
		Recipient:   s.cfg.Report.Recipient,
		Attachments: attachments,
	})
}
