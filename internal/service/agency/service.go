package agency

import (
	"context"
	"fmt"

	"agencyhub-service/internal/domain/activity"
	"agencyhub-service/internal/domain/agency"
	"agencyhub-service/internal/domain/subaccount"
	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type Service struct {
	agencies    agency.Repository
	subAccounts subaccount.Repository
	activity    activity.Sink
	logger      *zap.Logger
}

func NewService(
	agencies agency.Repository,
	subAccounts subaccount.Repository,
	sink activity.Sink,
	logger *zap.Logger,
) *Service {
	return &Service{
		agencies:    agencies,
		subAccounts: subAccounts,
		activity:    sink,
		logger:      logger,
	}
}

// Get retrieves an agency by id.
func (s *Service) Get(ctx context.Context, id string) (*agency.Agency, error) {
	return s.agencies.FindByID(ctx, id)
}

// UpdateDetails applies a validated details payload to an existing agency.
func (s *Service) UpdateDetails(ctx context.Context, id string, input *agency.DetailsInput) (*agency.Agency, error) {
	a, err := s.agencies.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("agency details updated", zap.String("agency_id", id))
	return a, nil
}

// UpdateGoal persists the new goal and appends one activity entry describing
// the change together with the current sub-account count. The two writes are
// not transactional: a goal applied but unlogged is accepted and only shows
// up in the log output.
func (s *Service) UpdateGoal(ctx context.Context, id string, goal int) error {
	if goal < 1 {
		return fmt.Errorf("%w: goal must be at least 1", xerrors.ErrInvalidInput)
	}

	if err := s.agencies.UpdateGoal(ctx, id, goal); err != nil {
		return err
	}

	count, err := s.subAccounts.CountByAgency(ctx, id)
	if err != nil {
		s.logger.Warn("failed to count sub-accounts for goal entry",
			zap.String("agency_id", id),
			zap.Error(err),
		)
	}

	desc := fmt.Sprintf("updated the agency goal to %d | %d sub accounts", goal, count)
	if err := s.activity.Record(ctx, id, "", desc); err != nil {
		s.logger.Warn("goal change applied but not logged",
			zap.String("agency_id", id),
			zap.Error(err),
		)
	}

	return nil
}

// Delete removes the agency and its sub-accounts. The agency's billing
// subscription is NOT cancelled here; callers coordinate that with the
// billing provider separately.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.agencies.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("agency deleted", zap.String("agency_id", id))
	return nil
}

// CreateSubAccount adds a sub-account under an active agency.
func (s *Service) CreateSubAccount(ctx context.Context, agencyID string, req *subaccount.CreateRequest) (*subaccount.SubAccount, error) {
	a, err := s.agencies.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if !a.Active() {
		return nil, xerrors.ErrMissingCustomer
	}

	sa := &subaccount.SubAccount{
		ID:       ulid.Make().String(),
		AgencyID: agencyID,
		Name:     req.Name,
	}
	if req.CompanyEmail != "" {
		sa.CompanyEmail.String = req.CompanyEmail
		sa.CompanyEmail.Valid = true
	}
	if req.SubAccountLogo != "" {
		sa.SubAccountLogo.String = req.SubAccountLogo
		sa.SubAccountLogo.Valid = true
	}

	if err := s.subAccounts.Create(ctx, sa); err != nil {
		return nil, fmt.Errorf("failed to create sub-account: %w", err)
	}

	if err := s.activity.Record(ctx, agencyID, sa.ID, fmt.Sprintf("created sub account | %s", sa.Name)); err != nil {
		s.logger.Warn("sub-account creation not logged",
			zap.String("agency_id", agencyID),
			zap.String("sub_account_id", sa.ID),
			zap.Error(err),
		)
	}

	return sa, nil
}

// ListSubAccounts lists the sub-accounts of an agency.
func (s *Service) ListSubAccounts(ctx context.Context, agencyID string) ([]subaccount.SubAccount, error) {
	return s.subAccounts.ListByAgency(ctx, agencyID)
}
