package onboarding

import (
	"context"
	"database/sql"
	"fmt"

	"agencyhub-service/internal/billing"
	"agencyhub-service/internal/domain/activity"
	"agencyhub-service/internal/domain/agency"
	"agencyhub-service/internal/domain/user"
	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Identity is the authenticated caller driving the onboarding, taken from
// the verified token claims.
type Identity struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}

// Service drives the agency onboarding sequence: billing customer, owner
// user, agency upsert, activity entry. The steps run strictly in order with
// no compensation; a failure surfaces to the caller and earlier side effects
// stand.
type Service struct {
	billing  billing.CustomerCreator
	users    user.Repository
	agencies agency.Repository
	activity activity.Sink
	logger   *zap.Logger
}

func NewService(
	billingClient billing.CustomerCreator,
	users user.Repository,
	agencies agency.Repository,
	sink activity.Sink,
	logger *zap.Logger,
) *Service {
	return &Service{
		billing:  billingClient,
		users:    users,
		agencies: agencies,
		activity: sink,
		logger:   logger,
	}
}

// Onboard creates or updates an agency from a validated details payload.
// When existing carries no billing customer, one is created first; an agency
// is never persisted without a customer id.
func (s *Service) Onboard(ctx context.Context, ident Identity, input *agency.DetailsInput, existing *agency.Agency) (*agency.Agency, error) {
	customerID := ""
	if existing != nil {
		customerID = existing.CustomerID
	}

	if customerID == "" {
		addr := billingAddress(input)
		id, err := s.billing.CreateCustomer(ctx, &billing.CreateCustomerRequest{
			Name:     input.Name,
			Email:    input.CompanyEmail,
			Shipping: addr,
			Billing:  addr,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create billing customer: %w", err)
		}
		customerID = id
	}

	// Ensure the caller exists locally as the agency owner before the agency
	// row is written.
	owner := &user.User{
		ID:    ident.ID,
		Name:  ident.Name,
		Email: ident.Email,
		Role:  user.RoleAgencyOwner,
	}
	if ident.AvatarURL != "" {
		owner.AvatarURL = sql.NullString{String: ident.AvatarURL, Valid: true}
	}
	if _, err := s.users.Upsert(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to ensure agency owner: %w", err)
	}

	if customerID == "" {
		// The billing provider answered without a customer id. Refuse to
		// finalize instead of skipping the upsert quietly.
		s.logger.Error("onboarding aborted: no billing customer id",
			zap.String("identity_id", ident.ID),
			zap.String("agency_name", input.Name),
		)
		return nil, xerrors.ErrMissingCustomer
	}

	a := &agency.Agency{
		CustomerID:   customerID,
		Name:         input.Name,
		CompanyEmail: input.CompanyEmail,
		CompanyPhone: input.CompanyPhone,
		WhiteLabel:   input.WhiteLabel,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.Zip,
		Country:      input.Country,
		AgencyLogo:   input.AgencyLogo,
	}

	if existing != nil && existing.ID != "" {
		a.ID = existing.ID
		a.Goal = existing.Goal
		a.ConnectAccountID = existing.ConnectAccountID
	} else {
		a.ID = ulid.Make().String()
		a.Goal = agency.DefaultGoal
	}

	persisted, err := s.agencies.Upsert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to persist agency: %w", err)
	}

	s.logger.Info("agency onboarded",
		zap.String("agency_id", persisted.ID),
		zap.String("customer_id", persisted.CustomerID),
		zap.String("identity_id", ident.ID),
	)

	// Fire-and-forget: an unlogged onboarding is acceptable, a failed one
	// is not.
	if err := s.activity.Record(ctx, persisted.ID, "", fmt.Sprintf("%s updated agency information", ident.Name)); err != nil {
		s.logger.Warn("failed to record onboarding activity",
			zap.String("agency_id", persisted.ID),
			zap.Error(err),
		)
	}

	return persisted, nil
}

// billingAddress builds the provider address payload from the form fields.
// The same address is used for shipping and billing. The dashboard this
// replaces filled the state field with the zip value; here the real state is
// sent.
func billingAddress(input *agency.DetailsInput) *billing.Address {
	return &billing.Address{
		Line1:      input.Address,
		City:       input.City,
		State:      input.State,
		PostalCode: input.Zip,
		Country:    input.Country,
	}
}
