package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// GetBalance computes each account's net position independently
func (s *Service) GetBalance(ctx context.Context) (*entity.Balance, error) {
	main, err := s.transactionRepo.SumByDirection(ctx, entity.AccountMain)
	if err != nil {
		return nil, fmt.Errorf("failed to sum main account: %w", err)
	}

	secondary, err := s.transactionRepo.SumByDirection(ctx, entity.AccountSecondary)
	if err != nil {
		return nil, fmt.Errorf("failed to sum secondary account: %w", err)
	}

	balance := entity.NewBalance(main, secondary)
	return &balance, nil
}
