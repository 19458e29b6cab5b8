package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/daylightco/finops-reporter/infrastructure/integrator/brex"
	"github.com/daylightco/finops-reporter/infrastructure/integrator/mercury"
	"github.com/daylightco/finops-reporter/infrastructure/integrator/rippling"
	"github.com/daylightco/finops-reporter/infrastructure/mailbox"
	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	"github.com/daylightco/finops-reporter/infrastructure/narrative"
	"github.com/daylightco/finops-reporter/infrastructure/warehouse"
	"github.com/daylightco/finops-reporter/internal/api"
	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/scheduler"
	"github.com/daylightco/finops-reporter/internal/usecases/diffing"
	"github.com/daylightco/finops-reporter/internal/usecases/ledgering"
	"github.com/daylightco/finops-reporter/internal/usecases/reporting"
	"github.com/daylightco/finops-reporter/internal/usecases/summarizing"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
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

	reportScheduler := scheduler.NewReportScheduler(cfg, reportService)
	if err := reportScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting report scheduler")
	} else {
		logrus.Info("report scheduler started")
	}
	defer reportScheduler.Stop()

	server, err := api.New(cfg, reportService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
