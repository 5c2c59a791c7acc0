package main

import (
	"io"

	"github.com/HRCC-SRM/Recruitments-Website/internal/config"
	"github.com/HRCC-SRM/Recruitments-Website/internal/database"
	"github.com/HRCC-SRM/Recruitments-Website/internal/jobs"
	"github.com/HRCC-SRM/Recruitments-Website/internal/repository"
	"github.com/HRCC-SRM/Recruitments-Website/pkg/email"
	"github.com/HRCC-SRM/Recruitments-Website/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	dryRun     bool
	configPath string
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mailer",
		Short: "Send the HTML update email to every shortlisted applicant",
		Long: `Reads applicants with status "shortlisted" from MongoDB and sends each
one a personalised HTML email over SMTP. Settings come from the environment,
an optional .env file, and an optional YAML file passed with --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, out)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list recipients without sending any email")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "optional YAML settings file; environment variables take precedence")

	return cmd
}

func run(cmd *cobra.Command, opts *options, out io.Writer) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Log.WithFields(logrus.Fields{
		"db":         cfg.MongoDB,
		"collection": cfg.UsersCollection,
		"dryRun":     opts.dryRun,
	}).Info("Starting shortlist mailer")

	ctx := cmd.Context()

	client, err := database.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	repo := repository.NewRecipientRepository(client.Database(cfg.MongoDB), cfg.UsersCollection)
	recipients, err := repo.GetShortlisted(ctx)
	database.Disconnect(ctx, client)
	if err != nil {
		return err
	}

	sender := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderName, cfg.SenderPassword)
	mailer := jobs.NewShortlistMailer(sender, cfg.EmailSubject, cfg.TemplatePath, cfg.RateLimit)
	mailer.Out = out

	res, err := mailer.Run(ctx, recipients, opts.dryRun)
	logger.Log.WithFields(logrus.Fields{
		"total":   res.Total,
		"sent":    res.Sent,
		"failed":  res.Failed,
		"skipped": res.Skipped,
	}).Info("Shortlist mailer finished")
	return err
}
