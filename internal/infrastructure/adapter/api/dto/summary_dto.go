package dto

import (
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// BalanceResponse represents the per-account balances
type BalanceResponse struct {
	Main      string `json:"main"`
	Secondary string `json:"secondary"`
	Income    string `json:"income"`
	Expense   string `json:"expense"`
}

// FromBalance converts a domain balance
func FromBalance(b *entity.Balance) BalanceResponse {
	return BalanceResponse{
		Main:      entity.FormatAmount(b.Main),
		Secondary: entity.FormatAmount(b.Secondary),
		Income:    entity.FormatAmount(b.Income),
		Expense:   entity.FormatAmount(b.Expense),
	}
}

// ExpensePointResponse is one bucket of an expense series
type ExpensePointResponse struct {
	Label  string `json:"label"`
	Start  int64  `json:"start"`
	End    int64  `json:"end"`
	Amount string `json:"amount"`
}

// ExpenseSeriesResponse is the spending graph for one month or year
type ExpenseSeriesResponse struct {
	Mode   string                 `json:"mode"`
	Label  string                 `json:"label"`
	Offset int                    `json:"offset"`
	Total  string                 `json:"total"`
	Points []ExpensePointResponse `json:"points"`
}

// FromExpenseSeries converts a domain expense series
func FromExpenseSeries(s *entity.ExpenseSeries) ExpenseSeriesResponse {
	points := make([]ExpensePointResponse, 0, len(s.Points))
	for _, p := range s.Points {
		points = append(points, ExpensePointResponse{
			Label:  p.Label,
			Start:  p.Start,
			End:    p.End,
			Amount: entity.FormatAmount(p.Amount),
		})
	}
	return ExpenseSeriesResponse{
		Mode:   string(s.Mode),
		Label:  s.Label,
		Offset: s.Offset,
		Total:  entity.FormatAmount(s.Total()),
		Points: points,
	}
}
