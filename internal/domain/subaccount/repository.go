package subaccount

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, s *SubAccount) error
	ListByAgency(ctx context.Context, agencyID string) ([]SubAccount, error)
	CountByAgency(ctx context.Context, agencyID string) (int64, error)
}
