package main

import (
	"context"
	"flag"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator/brex"
	"github.com/daylightco/finops-reporter/infrastructure/integrator/mercury"
	"github.com/daylightco/finops-reporter/infrastructure/integrator/rippling"
	"github.com/daylightco/finops-reporter/infrastructure/mailbox"
	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	"github.com/daylightco/finops-reporter/infrastructure/narrative"
	"github.com/daylightco/finops-reporter/infrastructure/warehouse"
	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/internal/usecases/diffing"
	"github.com/daylightco/finops-reporter/internal/usecases/ledgering"
	"github.com/daylightco/finops-reporter/internal/usecases/reporting"
	"github.com/daylightco/finops-reporter/internal/usecases/summarizing"
	"github.com/sirupsen/logrus"
)

const runTimeout = 10 * time.Minute

// Runs a single report pipeline from the command line and exits.
func main() {
	kind := flag.String("kind", "", "report to run: spend, inventory or sales")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if *kind == "" {
		logrus.Fatal("missing -kind flag (spend, inventory or sales)")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	aggregator := ledgering.NewService(
		brex.NewClient(cfg.Brex),
		mercury.NewClient(cfg.Mercury),
		rippling.NewClient(cfg.Rippling),
	)

	generator, err := narrative.NewGeminiGenerator(ctx, cfg.Narrative)
	if err != nil {
		logrus.WithError(err).Fatal("error creating narrative generator")
	}

	sender, err := mailer.NewMailgunMailer(cfg.Mailgun)
	if err != nil {
		logrus.WithError(err).Fatal("error creating mailgun mailer")
	}

	reportService := reporting.NewService(
		cfg,
		aggregator,
		summarizing.NewService(),
		diffing.NewService(),
		mailbox.NewIMAPFetcher(cfg.Mailbox),
		warehouse.NewBigQuerySales(cfg.Warehouse),
		generator,
		sender,
	)

	if err := reportService.Run(ctx, domain.ReportKind(*kind)); err != nil {
		logrus.WithError(err).Fatal("report run failed")
	}

	logrus.WithField("report", *kind).Info("report run completed")
}
