package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
)

// Series labels
const (
	monthLabelLayout = "January 2006"
	yearLabelLayout  = "2006"
	bucketMonthLabel = "Jan"
)

// ExpenseSeries buckets Main-account spending for the month or year at offset.
// Offset 0 is the current period, -1 the one before.
func (s *Service) ExpenseSeries(ctx context.Context, mode entity.SeriesMode, offset int) (*entity.ExpenseSeries, error) {
	now := s.timeProvider.Now().In(s.timeProvider.Location())

	var series *entity.ExpenseSeries
	switch mode {
	case entity.SeriesMonthly:
		series = monthlyBuckets(now, offset)
	case entity.SeriesYearly:
		series = yearlyBuckets(now, offset)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidSeriesMode, mode)
	}

	from := series.Points[0].Start
	to := series.Points[len(series.Points)-1].End
	account := entity.AccountMain
	direction := entity.DirectionExpense

	transactions, err := s.transactionRepo.List(ctx, persistence.TransactionQuery{
		From:      &from,
		To:        &to,
		Account:   &account,
		Direction: &direction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	for _, tx := range transactions {
		// Only Main-account expenses count
		if !tx.IsExpense() || tx.Account != entity.AccountMain {
			continue
		}
		if i := bucketIndex(series.Points, tx.OccurredAt); i >= 0 {
			series.Points[i].Amount = series.Points[i].Amount.Add(tx.Amount)
		}
	}

	return series, nil
}

func monthlyBuckets(now time.Time, offset int) *entity.ExpenseSeries {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0)
	next := first.AddDate(0, 1, 0)

	points := make([]entity.ExpensePoint, 0, 31)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		points = append(points, entity.ExpensePoint{
			Label:  strconv.Itoa(day.Day()),
			Start:  day.UnixMilli(),
			End:    day.AddDate(0, 0, 1).UnixMilli(),
			Amount: decimal.Zero,
		})
	}

	return &entity.ExpenseSeries{
		Mode:   entity.SeriesMonthly,
		Label:  first.Format(monthLabelLayout),
		Offset: offset,
		Points: points,
	}
}

func yearlyBuckets(now time.Time, offset int) *entity.ExpenseSeries {
	first := time.Date(now.Year()+offset, time.January, 1, 0, 0, 0, 0, now.Location())

	points := make([]entity.ExpensePoint, 0, 12)
	for month := 0; month < 12; month++ {
		start := first.AddDate(0, month, 0)
		points = append(points, entity.ExpensePoint{
			Label:  start.Format(bucketMonthLabel),
			Start:  start.UnixMilli(),
			End:    start.AddDate(0, 1, 0).UnixMilli(),
			Amount: decimal.Zero,
		})
	}

	return &entity.ExpenseSeries{
		Mode:   entity.SeriesYearly,
		Label:  first.Format(yearLabelLayout),
		Offset: offset,
		Points: points,
	}
}

func bucketIndex(points []entity.ExpensePoint, at int64) int {
	for i, p := range points {
		if at >= p.Start && at < p.End {
			return i
		}
	}
	return -1
}
