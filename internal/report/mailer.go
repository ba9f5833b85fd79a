package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Mailer interface {
	Send(to, subject, htmlBody string, attachment *Attachment) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
// SMTP_PASSWORD and MAIL_FROM.
func NewSMTPMailer() (Mailer, error) {
	host := config.Getenv("SMTP_HOST", "localhost")
	port, err := strconv.Atoi(config.Getenv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	username := config.Getenv("SMTP_USERNAME", "")
	password := config.Getenv("SMTP_PASSWORD", "")
	from := config.Getenv("MAIL_FROM", "reports@quizlytics.app")

	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}, nil
}

func (m *smtpMailer) Send(to, subject, htmlBody string, attachment *Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if attachment != nil {
		msg.Attach(attachment.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(attachment.Data))
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {attachment.ContentType},
			}),
		)
	}

	return m.dialer.DialAndSend(msg)
}
