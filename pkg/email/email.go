package email

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/HRCC-SRM/Recruitments-Website/pkg/logger"
	mail "github.com/go-mail/mail"
)

// Sender delivers a single HTML email. toName may be empty.
type Sender interface {
	Send(toName, to, subject, htmlBody string) error
}

// SMTPSender sends each message over its own authenticated, encrypted SMTP
// session. Port 465 uses implicit TLS; any other port must offer STARTTLS.
type SMTPSender struct {
	Host     string
	Port     int
	From     string
	FromName string
	Password string
	Timeout  time.Duration
}

// NewSMTPSender returns a sender that logs in as from and signs messages
// with fromName.
func NewSMTPSender(host string, port int, from, fromName, password string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		From:     from,
		FromName: fromName,
		Password: password,
		Timeout:  30 * time.Second,
	}
}

// Send dials, authenticates, delivers one message to one recipient and closes
// the connection.
func (s *SMTPSender) Send(toName, to, subject, htmlBody string) error {
	logger.Log.WithFields(map[string]interface{}{
		"host": s.Host,
		"port": s.Port,
		"to":   to,
	}).Debug("Sending email")

	if err := s.dialer().DialAndSend(newMessage(s.From, s.FromName, toName, to, subject, htmlBody)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func (s *SMTPSender) dialer() *mail.Dialer {
	d := mail.NewDialer(s.Host, s.Port, s.From, s.Password)
	d.TLSConfig = &tls.Config{ServerName: s.Host}
	d.SSL = s.Port == 465
	if !d.SSL {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	if s.Timeout > 0 {
		d.Timeout = s.Timeout
	}
	return d
}

// newMessage builds a multipart/alternative message: a plain-text rendering
// of the body first, then the HTML original.
func newMessage(from, fromName, toName, to, subject, htmlBody string) *mail.Message {
	m := mail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", PlainText(htmlBody))
	m.AddAlternative("text/html", htmlBody)
	return m
}
