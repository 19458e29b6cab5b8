package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	integratormocks "github.com/daylightco/finops-reporter/infrastructure/integrator/mocks"
	mailboxmocks "github.com/daylightco/finops-reporter/infrastructure/mailbox/mocks"
	"github.com/daylightco/finops-reporter/infrastructure/mailer"
	mailermocks "github.com/daylightco/finops-reporter/infrastructure/mailer/mocks"
	narrativemocks "github.com/daylightco/finops-reporter/infrastructure/narrative/mocks"
	warehousemocks "github.com/daylightco/finops-reporter/infrastructure/warehouse/mocks"
	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/daylightco/finops-reporter/internal/usecases/diffing"
	"github.com/daylightco/finops-reporter/internal/usecases/ledgering"
	"github.com/daylightco/finops-reporter/internal/usecases/summarizing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	adapter   *integratormocks.MockSourceAdapter
	snapshots *mailboxmocks.MockSnapshotFetcher
	sales     *warehousemocks.MockWeeklySalesFetcher
	generator *narrativemocks.MockGenerator
	sender    *mailermocks.MockMailer
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{
		Report: config.Report{
			Recipient:    "cfo@example.com",
			LookbackDays: 30,
		},
	}

	f := &fixture{
		adapter:   integratormocks.NewMockSourceAdapter(ctrl),
		snapshots: mailboxmocks.NewMockSnapshotFetcher(ctrl),
		sales:     warehousemocks.NewMockWeeklySalesFetcher(ctrl),
		generator: narrativemocks.NewMockGenerator(ctrl),
		sender:    mailermocks.NewMockMailer(ctrl),
	}

	f.adapter.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()

	f.service = NewService(
		cfg,
		ledgering.NewService(f.adapter),
		summarizing.NewService(),
		diffing.NewService(),
		f.snapshots,
		f.sales,
		f.generator,
		f.sender,
	)

	return f
}

func (f *fixture) captureSend(sent *mailer.Message) {
	f.sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msg mailer.Message) error {
			*sent = msg
			return nil
		})
}

func TestRun_SpendReport(t *testing.T) {
	f := newFixture(t)

	f.adapter.EXPECT().FetchTransactions(gomock.Any(), 30).Return([]domain.Transaction{
		{Date: "2025-08-01", Description: "AWS", Amount: 1200, Category: "Cloud", Source: domain.SourceBrex},
		{Date: "2025-08-02", Description: "Gusto", Amount: 9000, Category: "Payroll", Source: domain.SourceBrex},
	}, nil)

	f.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "$10,200.00")
			assert.Contains(t, prompt, "Gusto")
			return "<h2>Weekly Spend</h2>", nil
		})

	var sent mailer.Message
	f.captureSend(&sent)

	err := f.service.Run(context.Background(), domain.ReportKindSpend)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sent.Subject, "Weekly Spend Analysis - "))
	assert.Equal(t, "<h2>Weekly Spend</h2>", sent.HTML)
	assert.Equal(t, "cfo@example.com", sent.Recipient)
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "unified_spend.csv", sent.Attachments[0].Filename)
	assert.Contains(t, string(sent.Attachments[0].Content), "AWS")
}

func TestRun_SpendReport_NoData(t *testing.T) {
	f := newFixture(t)

	f.adapter.EXPECT().FetchTransactions(gomock.Any(), 30).Return([]domain.Transaction{}, nil)

	err := f.service.Run(context.Background(), domain.ReportKindSpend)

	assert.ErrorIs(t, err, ledgering.ErrNoData)

	statuses := f.service.Status()
	assert.Equal(t, ledgering.ErrNoData.Error(), statuses[0].LastError)
	assert.False(t, statuses[0].Running)
}

func TestRun_NarrativeFailureStillSends(t *testing.T) {
	f := newFixture(t)

	f.adapter.EXPECT().FetchTransactions(gomock.Any(), 30).Return([]domain.Transaction{
		{Date: "2025-08-01", Description: "AWS", Amount: 100, Source: domain.SourceBrex},
	}, nil)

	f.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", errors.New("model overloaded"))

	var sent mailer.Message
	f.captureSend(&sent)

	err := f.service.Run(context.Background(), domain.ReportKindSpend)

	require.NoError(t, err)
	assert.Equal(t, narrativeFailedHTML, sent.HTML)
	require.Len(t, sent.Attachments, 1)
}

func TestRun_InventoryReport(t *testing.T) {
	f := newFixture(t)

	previous := domain.DatedSnapshot{
		Date: time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
		Snapshot: domain.Snapshot{
			Headers: []string{"Item Name", "On Hand"},
			Records: [][]string{{"Widget A", "100"}},
		},
	}
	current := domain.DatedSnapshot{
		Date: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		Snapshot: domain.Snapshot{
			Headers: []string{"Item Name", "On Hand"},
			Records: [][]string{{"Widget A", "60"}},
		},
	}

	f.snapshots.EXPECT().
		FetchLatestSnapshots(gomock.Any(), 2).
		Return([]domain.DatedSnapshot{previous, current}, nil)

	f.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Widget A")
			assert.Contains(t, prompt, "1.5 weeks")
			return "<h3>Burn Rate Overview</h3>", nil
		})

	var sent mailer.Message
	f.captureSend(&sent)

	err := f.service.Run(context.Background(), domain.ReportKindInventory)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sent.Subject, "Weekly Inventory Report - "))
	require.Len(t, sent.Attachments, 2)
	assert.Equal(t, "inventory_20250811.csv", sent.Attachments[0].Filename)
	assert.Equal(t, "inventory_20250818.csv", sent.Attachments[1].Filename)
}

func TestRun_InventoryReport_SingleSnapshot(t *testing.T) {
	f := newFixture(t)

	only := domain.DatedSnapshot{
		Date: time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
		Snapshot: domain.Snapshot{
			Headers: []string{"Item Name", "On Hand"},
			Records: [][]string{{"Widget A", "60"}},
		},
	}

	f.snapshots.EXPECT().
		FetchLatestSnapshots(gomock.Any(), 2).
		Return([]domain.DatedSnapshot{only}, nil)

	f.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, prompt string) (string, error) {
			// Self-comparison reads as zero sales
			assert.Contains(t, prompt, domain.NoSalesRunway)
			return "<p>report</p>", nil
		})

	var sent mailer.Message
	f.captureSend(&sent)

	err := f.service.Run(context.Background(), domain.ReportKindInventory)

	require.NoError(t, err)
	require.Len(t, sent.Attachments, 1)
}

func TestRun_InventoryReport_NoSnapshots(t *testing.T) {
	f := newFixture(t)

	f.snapshots.EXPECT().
		FetchLatestSnapshots(gomock.Any(), 2).
		Return([]domain.DatedSnapshot{}, nil)

	err := f.service.Run(context.Background(), domain.ReportKindInventory)

	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestRun_SalesReport(t *testing.T) {
	f := newFixture(t)

	metrics := []domain.SalesMetric{
		{Metric: "Gross Sales", Week1: "$14,000.00", Week2: "$10,000.00", PctChange: "40.0%"},
	}

	f.sales.EXPECT().
		WeeklySales(gomock.Any(), gomock.Any()).
		Return(metrics, nil)

	f.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("<p>sales</p>", nil)

	var sent mailer.Message
	f.captureSend(&sent)

	err := f.service.Run(context.Background(), domain.ReportKindSales)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sent.Subject, "Weekly Sales Summary - "))
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "weekly_sales.csv", sent.Attachments[0].Filename)
	assert.Contains(t, string(sent.Attachments[0].Content), "Gross Sales")
}

func TestRun_UnknownKind(t *testing.T) {
	f := newFixture(t)

	err := f.service.Run(context.Background(), domain.ReportKind("payroll"))

	assert.ErrorIs(t, err, ErrUnknownReportKind)
}

func TestRun_RejectsOverlappingRuns(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.service.markStarted(domain.ReportKindSpend))

	err := f.service.Run(context.Background(), domain.ReportKindSpend)

	assert.ErrorIs(t, err, ErrAlreadyRunning)

	// Other kinds are unaffected by the spend run being in flight
	f.snapshots.EXPECT().
		FetchLatestSnapshots(gomock.Any(), 2).
		Return([]domain.DatedSnapshot{}, nil)

	err = f.service.Run(context.Background(), domain.ReportKindInventory)
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)

	statuses := f.service.Status()

	require.Len(t, statuses, 3)
	assert.Equal(t, domain.ReportKindSpend, statuses[0].Kind)
	assert.Equal(t, domain.ReportKindInventory, statuses[1].Kind)
	assert.Equal(t, domain.ReportKindSales, statuses[2].Kind)
	for _, status := range statuses {
		assert.False(t, status.Running)
		assert.Nil(t, status.LastStartedAt)
	}
}
