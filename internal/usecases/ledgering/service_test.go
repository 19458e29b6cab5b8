package ledgering

import (
	"context"
	"errors"
	"testing"

	"github.com/daylightco/finops-reporter/infrastructure/integrator/mocks"
	"github.com/daylightco/finops-reporter/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Collect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	brexRows := []domain.Transaction{
		{Date: "2025-08-01", Description: "AWS", Amount: 1200, Category: "Cloud", Source: domain.SourceBrex},
	}
	mercuryRows := []domain.Transaction{
		{Date: "2025-08-02", Description: "Gusto", Amount: 9000, Category: "Payroll", Source: domain.SourceMercury},
	}

	brex := mocks.NewMockSourceAdapter(ctrl)
	brex.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()
	brex.EXPECT().FetchTransactions(gomock.Any(), 30).Return(brexRows, nil)

	mercury := mocks.NewMockSourceAdapter(ctrl)
	mercury.EXPECT().Name().Return(domain.SourceMercury).AnyTimes()
	mercury.EXPECT().FetchTransactions(gomock.Any(), 30).Return(mercuryRows, nil)

	ledger, err := NewService(brex, mercury).Collect(context.Background(), 30)

	assert.NoError(t, err)
	assert.Len(t, ledger, 2)

	// Concatenation preserves adapter input order
	assert.Equal(t, domain.SourceBrex, ledger[0].Source)
	assert.Equal(t, domain.SourceMercury, ledger[1].Source)
}

func TestService_Collect_ToleratesFailingSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	brex := mocks.NewMockSourceAdapter(ctrl)
	brex.EXPECT().FetchTransactions(gomock.Any(), 30).Return(nil, errors.New("401 unauthorized"))
	brex.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()

	mercury := mocks.NewMockSourceAdapter(ctrl)
	mercury.EXPECT().Name().Return(domain.SourceMercury).AnyTimes()
	mercury.EXPECT().FetchTransactions(gomock.Any(), 30).Return([]domain.Transaction{
		{Date: "2025-08-02", Description: "Gusto", Amount: 9000, Source: domain.SourceMercury},
	}, nil)

	ledger, err := NewService(brex, mercury).Collect(context.Background(), 30)

	assert.NoError(t, err)
	assert.Len(t, ledger, 1)
	assert.Equal(t, domain.SourceMercury, ledger[0].Source)
}

func TestService_Collect_AllSourcesEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	brex := mocks.NewMockSourceAdapter(ctrl)
	brex.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()
	brex.EXPECT().FetchTransactions(gomock.Any(), 30).Return([]domain.Transaction{}, nil)

	mercury := mocks.NewMockSourceAdapter(ctrl)
	mercury.EXPECT().FetchTransactions(gomock.Any(), 30).Return(nil, errors.New("timeout"))
	mercury.EXPECT().Name().Return(domain.SourceMercury).AnyTimes()

	ledger, err := NewService(brex, mercury).Collect(context.Background(), 30)

	assert.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, ledger)
}

func TestService_Collect_TotalIsOrderIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rowsA := []domain.Transaction{{Description: "AWS", Amount: 100, Source: domain.SourceBrex}}
	rowsB := []domain.Transaction{{Description: "Gusto", Amount: 200, Source: domain.SourceMercury}}

	first := mocks.NewMockSourceAdapter(ctrl)
	first.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()
	first.EXPECT().FetchTransactions(gomock.Any(), 7).Return(rowsA, nil)
	second := mocks.NewMockSourceAdapter(ctrl)
	second.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()
	second.EXPECT().FetchTransactions(gomock.Any(), 7).Return(rowsB, nil)

	forward, err := NewService(first, second).Collect(context.Background(), 7)
	assert.NoError(t, err)

	third := mocks.NewMockSourceAdapter(ctrl)
	third.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()
	third.EXPECT().FetchTransactions(gomock.Any(), 7).Return(rowsB, nil)
	fourth := mocks.NewMockSourceAdapter(ctrl)
	fourth.EXPECT().Name().Return(domain.SourceBrex).AnyTimes()
	fourth.EXPECT().FetchTransactions(gomock.Any(), 7).Return(rowsA, nil)

	reversed, err := NewService(third, fourth).Collect(context.Background(), 7)
	assert.NoError(t, err)

	assert.Equal(t, forward.Total(), reversed.Total())
}
