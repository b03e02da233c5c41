package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
)

func at(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, ist).UnixMilli()
}

func expense(amount string, occurredAt int64, account entity.Account) *entity.Transaction {
	return &entity.Transaction{
		ID:         amount,
		Amount:     decimal.RequireFromString(amount),
		Direction:  entity.DirectionExpense,
		OccurredAt: occurredAt,
		Account:    account,
	}
}

func TestExpenseSeries_Shape(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, ist)

	tests := []struct {
		name       string
		mode       entity.SeriesMode
		offset     int
		wantLabel  string
		wantPoints int
		firstLabel string
		lastLabel  string
		from       int64
		to         int64
	}{
		{"current month in a leap year", entity.SeriesMonthly, 0, "February 2024", 29, "1", "29", at(2024, time.February, 1, 0, 0), at(2024, time.March, 1, 0, 0)},
		{"previous month", entity.SeriesMonthly, -1, "January 2024", 31, "1", "31", at(2024, time.January, 1, 0, 0), at(2024, time.February, 1, 0, 0)},
		{"month across a year boundary", entity.SeriesMonthly, -2, "December 2023", 31, "1", "31", at(2023, time.December, 1, 0, 0), at(2024, time.January, 1, 0, 0)},
		{"current year", entity.SeriesYearly, 0, "2024", 12, "Jan", "Dec", at(2024, time.January, 1, 0, 0), at(2025, time.January, 1, 0, 0)},
		{"previous year", entity.SeriesYearly, -1, "2023", 12, "Jan", "Dec", at(2023, time.January, 1, 0, 0), at(2024, time.January, 1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestLedger(t, now)
			m.repo.On("List", mock.Anything, mock.MatchedBy(func(q persistence.TransactionQuery) bool {
				return *q.From == tt.from && *q.To == tt.to &&
					*q.Account == entity.AccountMain && *q.Direction == entity.DirectionExpense
			})).Return([]*entity.Transaction{}, nil).Once()

			series, err := svc.ExpenseSeries(context.Background(), tt.mode, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, tt.mode, series.Mode)
			assert.Equal(t, tt.wantLabel, series.Label)
			assert.Equal(t, tt.offset, series.Offset)
			require.Len(t, series.Points, tt.wantPoints)
			assert.Equal(t, tt.firstLabel, series.Points[0].Label)
			assert.Equal(t, tt.lastLabel, series.Points[len(series.Points)-1].Label)
			assert.True(t, series.Total().IsZero())
		})
	}
}

func TestExpenseSeries_Buckets(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, ist)
	svc, m := newTestLedger(t, now)

	income := expense("500", at(2024, time.February, 3, 9, 0), entity.AccountMain)
	income.Direction = entity.DirectionIncome

	m.repo.On("List", mock.Anything, mock.Anything).Return([]*entity.Transaction{
		expense("5", at(2024, time.February, 29, 23, 59), entity.AccountMain),
		expense("10", at(2024, time.February, 3, 22, 0), entity.AccountMain),
		expense("40", at(2024, time.February, 3, 10, 0), entity.AccountMain),
		expense("99", at(2024, time.February, 3, 11, 0), entity.AccountSecondary),
		income,
	}, nil).Once()

	series, err := svc.ExpenseSeries(context.Background(), entity.SeriesMonthly, 0)

	require.NoError(t, err)
	assert.Equal(t, "50.00", series.Points[2].Amount.StringFixed(2))
	assert.Equal(t, "5.00", series.Points[28].Amount.StringFixed(2))
	assert.Equal(t, "55.00", series.Total().StringFixed(2))
}

func TestExpenseSeries_Yearly(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, ist)
	svc, m := newTestLedger(t, now)

	m.repo.On("List", mock.Anything, mock.Anything).Return([]*entity.Transaction{
		expense("12.50", at(2023, time.March, 31, 23, 0), entity.AccountMain),
		expense("7.50", at(2023, time.March, 1, 0, 0), entity.AccountMain),
		expense("100", at(2023, time.December, 25, 8, 0), entity.AccountMain),
	}, nil).Once()

	series, err := svc.ExpenseSeries(context.Background(), entity.SeriesYearly, -1)

	require.NoError(t, err)
	assert.Equal(t, "Mar", series.Points[2].Label)
	assert.Equal(t, "20.00", series.Points[2].Amount.StringFixed(2))
	assert.Equal(t, "100.00", series.Points[11].Amount.StringFixed(2))
	assert.Equal(t, "120.00", series.Total().StringFixed(2))
}

func TestExpenseSeries_InvalidMode(t *testing.T) {
	svc, _ := newTestLedger(t, time.Now())

	_, err := svc.ExpenseSeries(context.Background(), entity.SeriesMode("weekly"), 0)

	assert.ErrorIs(t, err, errs.ErrInvalidSeriesMode)
}
