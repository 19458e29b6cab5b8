package mailbox

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"

	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// candidate messages to inspect per run; most inbox traffic is not ours
const searchWindow = 10

// IMAPFetcher pulls inventory snapshots out of CSV attachments on a mailbox.
type IMAPFetcher struct {
	cfg config.Mailbox
}

func NewIMAPFetcher(cfg config.Mailbox) *IMAPFetcher {
	return &IMAPFetcher{cfg: cfg}
}

// FetchLatestSnapshots searches the inbox for messages matching the subject
// keyword (and sender, when configured), takes the first CSV attachment of
// each of the most recent `limit` matches and parses it into a snapshot.
// Messages whose attachment does not parse are skipped, not fatal.
func (f *IMAPFetcher) FetchLatestSnapshots(ctx context.Context, limit int) ([]domain.DatedSnapshot, error) {
	logrus.WithField("server", f.cfg.Server).Info("mailbox: connecting")

	client, err := imapclient.DialTLS(f.cfg.Server, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial IMAP server")
	}
	defer client.Close()

	if err := client.Login(f.cfg.Username, f.cfg.Password).Wait(); err != nil {
		return nil, errors.Wrap(err, "IMAP login failed")
	}
	defer client.Logout()

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to select INBOX")
	}

	criteria := &imap.SearchCriteria{
		Header: []imap.SearchCriteriaHeaderField{
			{Key: "Subject", Value: f.cfg.SubjectKeyword},
		},
	}
	if f.cfg.Sender != "" {
		criteria.Header = append(criteria.Header, imap.SearchCriteriaHeaderField{
			Key: "From", Value: f.cfg.Sender,
		})
	}

	logrus.WithField("subject", f.cfg.SubjectKeyword).Info("mailbox: searching for inventory emails")

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, errors.Wrap(err, "IMAP search failed")
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []domain.DatedSnapshot{}, nil
	}

	// UIDs ascend with arrival; the tail of the list is the newest mail.
	if len(uids) > searchWindow {
		uids = uids[len(uids)-searchWindow:]
	}

	snapshots, err := f.collectSnapshots(client, uids, limit)
	if err != nil {
		return nil, err
	}

	// Oldest first so callers can compare previous week against current.
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})

	return snapshots, nil
}

func (f *IMAPFetcher) collectSnapshots(client *imapclient.Client, uids []imap.UID, limit int) ([]domain.DatedSnapshot, error) {
	fetchOptions := &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{{}},
	}

	var uidSet imap.UIDSet
	uidSet.AddNum(uids...)

	messages, err := client.Fetch(uidSet, fetchOptions).Collect()
	if err != nil {
		return nil, errors.Wrap(err, "IMAP fetch failed")
	}

	// Newest first, mirroring the search order we want to fill from.
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Envelope.Date.After(messages[j].Envelope.Date)
	})

	snapshots := make([]domain.DatedSnapshot, 0, limit)

	for _, message := range messages {
		if len(snapshots) >= limit {
			break
		}

		body := message.FindBodySection(&imap.FetchItemBodySection{})
		if body == nil {
			continue
		}

		snapshot, found := firstCSVAttachment(body)
		if !found {
			continue
		}

		logrus.WithFields(logrus.Fields{
			"date":    message.Envelope.Date,
			"subject": message.Envelope.Subject,
		}).Info("mailbox: found inventory CSV")

		snapshots = append(snapshots, domain.DatedSnapshot{
			Date:     message.Envelope.Date,
			Snapshot: snapshot,
		})
	}

	return snapshots, nil
}

// firstCSVAttachment walks the MIME parts of a raw message and parses the
// first attachment with a .csv filename. Only the first is taken even when
// an email carries several files.
func firstCSVAttachment(raw []byte) (domain.Snapshot, bool) {
	reader, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		logrus.WithError(err).Warn("mailbox: failed to parse message")
		return domain.Snapshot{}, false
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.WithError(err).Warn("mailbox: failed to read message part")
			return domain.Snapshot{}, false
		}

		header, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}

		filename, err := header.Filename()
		if err != nil || !strings.HasSuffix(strings.ToLower(filename), ".csv") {
			continue
		}

		content, err := io.ReadAll(part.Body)
		if err != nil {
			logrus.WithError(err).Warn("mailbox: failed to read attachment")
			return domain.Snapshot{}, false
		}

		snapshot, err := domain.ParseSnapshotCSV(content)
		if err != nil {
			logrus.WithError(err).WithField("filename", filename).Warn("mailbox: failed to parse CSV attachment")
			return domain.Snapshot{}, false
		}

		return snapshot, true
	}

	return domain.Snapshot{}, false
}
