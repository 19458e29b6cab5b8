package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const sendTimeout = 30 * time.Second

// MailgunMailer sends report emails through the Mailgun API.
type MailgunMailer struct {
	mg     mailgun.Mailgun
	sender string
}

func NewMailgunMailer(cfg config.Mailgun) (*MailgunMailer, error) {
	if cfg.Domain == "" || cfg.APIKey == "" || cfg.SenderEmail == "" {
		return nil, errors.New("mailgun configuration incomplete (domain, API key or sender missing)")
	}

	sender := cfg.SenderEmail
	if cfg.SenderName != "" {
		sender = fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.SenderEmail)
	}

	return &MailgunMailer{
		mg:     mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		sender: sender,
	}, nil
}

func (m *MailgunMailer) Send(ctx context.Context, msg Message) error {
	if msg.Recipient == "" {
		return errors.New("no recipient specified")
	}

	message := m.mg.NewMessage(m.sender, msg.Subject, "", msg.Recipient)
	message.SetHtml(msg.HTML)

	for _, attachment := range msg.Attachments {
		message.AddBufferAttachment(attachment.Filename, attachment.Content)
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, id, err := m.mg.Send(sendCtx, message)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"recipient":    msg.Recipient,
			"mailgun_resp": resp,
			"error":        err.Error(),
		}).Error("mailer: failed to send report email")
		return errors.Wrap(err, "mailgun send failed")
	}

	logrus.WithFields(logrus.Fields{
		"recipient":   msg.Recipient,
		"mailgun_id":  id,
		"attachments": len(msg.Attachments),
	}).Info("mailer: report email sent")

	return nil
}
