package onboarding

import (
	"context"
	"errors"
	"testing"

	"agencyhub-service/internal/billing"
	agencydom "agencyhub-service/internal/domain/agency"
	"agencyhub-service/internal/domain/user"
	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBilling struct {
	mock.Mock
}

func (m *mockBilling) CreateCustomer(ctx context.Context, req *billing.CreateCustomerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return u, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockAgencyRepo struct {
	mock.Mock
}

func (m *mockAgencyRepo) Upsert(ctx context.Context, a *agencydom.Agency) (*agencydom.Agency, error) {
	args := m.Called(ctx, a)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	// Echo the persisted entity like the real repository does.
	return a, nil
}

func (m *mockAgencyRepo) Update(ctx context.Context, id string, d *agencydom.DetailsInput) (*agencydom.Agency, error) {
	args := m.Called(ctx, id, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agencydom.Agency), args.Error(1)
}

func (m *mockAgencyRepo) UpdateGoal(ctx context.Context, id string, goal int) error {
	args := m.Called(ctx, id, goal)
	return args.Error(0)
}

func (m *mockAgencyRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAgencyRepo) FindByID(ctx context.Context, id string) (*agencydom.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agencydom.Agency), args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Record(ctx context.Context, agencyID, subAccountID, description string) error {
	args := m.Called(ctx, agencyID, subAccountID, description)
	return args.Error(0)
}

func detailsInput() *agencydom.DetailsInput {
	return &agencydom.DetailsInput{
		Name:         "Acme Agency",
		CompanyEmail: "hello@acme.test",
		CompanyPhone: "0712345678",
		Address:      "12 Long Street",
		City:         "Los Angeles",
		State:        "CA",
		Zip:          "90210",
		Country:      "US",
		AgencyLogo:   "uploads/logo.png",
	}
}

func newTestService(b *mockBilling, u *mockUserRepo, a *mockAgencyRepo, s *mockSink) *Service {
	return NewService(b, u, a, s, zap.NewNop())
}

func TestOnboard_FreshAgency(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	b.On("CreateCustomer", mock.Anything, mock.Anything).Return("cus_123", nil)
	u.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	a.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("Record", mock.Anything, mock.Anything, "", mock.Anything).Return(nil)

	svc := newTestService(b, u, a, s)
	got, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), nil)

	require.NoError(t, err)
	assert.Equal(t, "cus_123", got.CustomerID)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, agencydom.DefaultGoal, got.Goal)
	assert.Empty(t, got.ConnectAccountID)

	// Owner user is ensured with the AGENCY_OWNER role.
	u.AssertCalled(t, "Upsert", mock.Anything, mock.MatchedBy(func(usr *user.User) bool {
		return usr.ID == "usr_1" && usr.Role == user.RoleAgencyOwner
	}))
	b.AssertNumberOfCalls(t, "CreateCustomer", 1)
	a.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestOnboard_BillingPayloadCarriesRealState(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	b.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req *billing.CreateCustomerRequest) bool {
		return req.Shipping != nil &&
			req.Shipping.State == "CA" &&
			req.Shipping.PostalCode == "90210" &&
			req.Billing != nil &&
			req.Billing.State == "CA"
	})).Return("cus_123", nil)
	u.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	a.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("Record", mock.Anything, mock.Anything, "", mock.Anything).Return(nil)

	svc := newTestService(b, u, a, s)
	_, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), nil)

	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestOnboard_ExistingCustomerSkipsBilling(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	u.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	a.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("Record", mock.Anything, "a1", "", mock.Anything).Return(nil)

	existing := &agencydom.Agency{ID: "a1", CustomerID: "cus_1", Goal: 7, ConnectAccountID: "acct_1"}

	svc := newTestService(b, u, a, s)
	got, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), existing)

	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "cus_1", got.CustomerID)
	assert.Equal(t, 7, got.Goal)
	assert.Equal(t, "acct_1", got.ConnectAccountID)
	b.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestOnboard_NoCustomerIDAbortsBeforeAgencyWrite(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	// The provider answers successfully but without a customer id.
	b.On("CreateCustomer", mock.Anything, mock.Anything).Return("", nil)
	u.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)

	svc := newTestService(b, u, a, s)
	got, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), nil)

	require.ErrorIs(t, err, xerrors.ErrMissingCustomer)
	assert.Nil(t, got)
	a.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboard_BillingFailureStopsSequence(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	b.On("CreateCustomer", mock.Anything, mock.Anything).Return("", xerrors.ErrBillingFailed)

	svc := newTestService(b, u, a, s)
	_, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), nil)

	require.ErrorIs(t, err, xerrors.ErrBillingFailed)
	u.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	a.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestOnboard_ActivityFailureIsNonFatal(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	b.On("CreateCustomer", mock.Anything, mock.Anything).Return("cus_123", nil)
	u.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	a.On("Upsert", mock.Anything, mock.Anything).Return(nil, nil)
	s.On("Record", mock.Anything, mock.Anything, "", mock.Anything).Return(errors.New("log store down"))

	svc := newTestService(b, u, a, s)
	got, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), nil)

	require.NoError(t, err)
	assert.Equal(t, "cus_123", got.CustomerID)
}

func TestOnboard_UserUpsertFailure(t *testing.T) {
	b := new(mockBilling)
	u := new(mockUserRepo)
	a := new(mockAgencyRepo)
	s := new(mockSink)

	b.On("CreateCustomer", mock.Anything, mock.Anything).Return("cus_123", nil)
	u.On("Upsert", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	svc := newTestService(b, u, a, s)
	_, err := svc.Onboard(context.Background(), Identity{ID: "usr_1", Name: "Jo", Email: "jo@acme.test"}, detailsInput(), nil)

	require.Error(t, err)
	a.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
