package jobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HRCC-SRM/Recruitments-Website/internal/models"
	"github.com/HRCC-SRM/Recruitments-Website/pkg/email"
	"github.com/HRCC-SRM/Recruitments-Website/pkg/logger"
	"github.com/sirupsen/logrus"
)

// PreviewLimit caps the number of recipients listed in a dry run.
const PreviewLimit = 10

// Result summarises one mailing run.
type Result struct {
	Total     int
	Sent      int
	Failed    int
	Skipped   int
	Previewed int
}

// ShortlistMailer sends the templated email to each recipient in turn.
type ShortlistMailer struct {
	Sender       email.Sender
	Subject      string
	TemplatePath string
	// RateLimit is the pause after each successful send; zero disables it.
	RateLimit time.Duration
	// Out receives the run report. Defaults to stdout.
	Out io.Writer
}

// NewShortlistMailer creates a mailer that reports to stdout.
func NewShortlistMailer(sender email.Sender, subject, templatePath string, rateLimit time.Duration) *ShortlistMailer {
	return &ShortlistMailer{
		Sender:       sender,
		Subject:      subject,
		TemplatePath: templatePath,
		RateLimit:    rateLimit,
		Out:          os.Stdout,
	}
}

// Run mails every recipient, or only lists them when dryRun is set. Send and
// render failures are counted per recipient and never stop the batch; the
// returned error is non-nil only when ctx is cancelled.
func (m *ShortlistMailer) Run(ctx context.Context, recipients []models.Recipient, dryRun bool) (Result, error) {
	res := Result{Total: len(recipients)}

	if len(recipients) == 0 {
		m.printf("No shortlisted users found.\n")
		return res, nil
	}
	m.printf("Found %d shortlisted users.\n", len(recipients))

	if dryRun {
		res.Previewed = m.preview(recipients)
		return res, nil
	}

	for _, r := range recipients {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		to := r.Address()
		if to == "" {
			res.Skipped++
			logger.Log.WithFields(logrus.Fields{
				"userID": r.ID.Hex(),
				"name":   r.Name,
			}).Warn("[skip] Missing email")
			continue
		}

		if err := m.sendOne(r, to); err != nil {
			res.Failed++
			logger.Log.WithError(err).WithField("to", to).Error("[fail] Email not sent")
			continue
		}

		res.Sent++
		m.printf("[sent] %s\n", to)

		if err := m.pause(ctx); err != nil {
			return res, err
		}
	}

	m.printf("Done. Sent=%d, Failed=%d\n", res.Sent, res.Failed)
	return res, nil
}

func (m *ShortlistMailer) sendOne(r models.Recipient, to string) error {
	html, err := email.RenderFile(m.TemplatePath, r.TemplateVars())
	if err != nil {
		return err
	}
	return m.Sender.Send(r.Name, to, m.Subject, html)
}

func (m *ShortlistMailer) preview(recipients []models.Recipient) int {
	n := len(recipients)
	if n > PreviewLimit {
		n = PreviewLimit
	}
	for _, r := range recipients[:n] {
		m.printf("- %s <%s> (regNo=%s)\n", r.Name, r.Address(), r.RegNo)
	}
	if rest := len(recipients) - n; rest > 0 {
		m.printf("... and %d more\n", rest)
	}
	return n
}

func (m *ShortlistMailer) pause(ctx context.Context) error {
	if m.RateLimit <= 0 {
		return nil
	}
	t := time.NewTimer(m.RateLimit)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *ShortlistMailer) printf(format string, args ...interface{}) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}
