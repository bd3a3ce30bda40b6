package agency

import (
	"context"
	"errors"
	"strings"
	"testing"

	agencydom "agencyhub-service/internal/domain/agency"
	"agencyhub-service/internal/domain/subaccount"
	xerrors "agencyhub-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAgencyRepo struct {
	mock.Mock
}

func (m *mockAgencyRepo) Upsert(ctx context.Context, a *agencydom.Agency) (*agencydom.Agency, error) {
	args := m.Called(ctx, a)
	if err := args.Error(1); err != nil {
		return nil, err
	}
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

type mockSubAccountRepo struct {
	mock.Mock
}

func (m *mockSubAccountRepo) Create(ctx context.Context, s *subaccount.SubAccount) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSubAccountRepo) ListByAgency(ctx context.Context, agencyID string) ([]subaccount.SubAccount, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subaccount.SubAccount), args.Error(1)
}

func (m *mockSubAccountRepo) CountByAgency(ctx context.Context, agencyID string) (int64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(int64), args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Record(ctx context.Context, agencyID, subAccountID, description string) error {
	args := m.Called(ctx, agencyID, subAccountID, description)
	return args.Error(0)
}

func newTestService(a *mockAgencyRepo, sa *mockSubAccountRepo, s *mockSink) *Service {
	return NewService(a, sa, s, zap.NewNop())
}

func TestUpdateGoal_PersistsAndLogsOnce(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	a.On("UpdateGoal", mock.Anything, "a1", 10).Return(nil)
	sa.On("CountByAgency", mock.Anything, "a1").Return(int64(3), nil)
	s.On("Record", mock.Anything, "a1", "", mock.MatchedBy(func(desc string) bool {
		return strings.Contains(desc, "10") && strings.Contains(desc, "3 sub accounts")
	})).Return(nil)

	svc := newTestService(a, sa, s)
	require.NoError(t, svc.UpdateGoal(context.Background(), "a1", 10))

	s.AssertNumberOfCalls(t, "Record", 1)
	a.AssertExpectations(t)
}

func TestUpdateGoal_RejectsNonPositive(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	svc := newTestService(a, sa, s)
	err := svc.UpdateGoal(context.Background(), "a1", 0)

	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
	a.AssertNotCalled(t, "UpdateGoal", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateGoal_ActivityFailureIsNonFatal(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	a.On("UpdateGoal", mock.Anything, "a1", 10).Return(nil)
	sa.On("CountByAgency", mock.Anything, "a1").Return(int64(0), nil)
	s.On("Record", mock.Anything, "a1", "", mock.Anything).Return(errors.New("log store down"))

	svc := newTestService(a, sa, s)
	// The goal change stands even when the notification write fails.
	require.NoError(t, svc.UpdateGoal(context.Background(), "a1", 10))
}

func TestDelete_UnknownAgency(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	a.On("Delete", mock.Anything, "missing").Return(xerrors.ErrNotFound)

	svc := newTestService(a, sa, s)
	err := svc.Delete(context.Background(), "missing")

	require.ErrorIs(t, err, xerrors.ErrNotFound)
	s.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	a.On("Delete", mock.Anything, "a1").Return(nil)

	svc := newTestService(a, sa, s)
	require.NoError(t, svc.Delete(context.Background(), "a1"))
}

func TestCreateSubAccount_RequiresActiveAgency(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	// Agency exists but was never attached to a billing customer.
	a.On("FindByID", mock.Anything, "a1").Return(&agencydom.Agency{ID: "a1"}, nil)

	svc := newTestService(a, sa, s)
	_, err := svc.CreateSubAccount(context.Background(), "a1", &subaccount.CreateRequest{Name: "Branch One"})

	require.ErrorIs(t, err, xerrors.ErrMissingCustomer)
	sa.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSubAccount_RecordsActivity(t *testing.T) {
	a := new(mockAgencyRepo)
	sa := new(mockSubAccountRepo)
	s := new(mockSink)

	a.On("FindByID", mock.Anything, "a1").Return(&agencydom.Agency{ID: "a1", CustomerID: "cus_1"}, nil)
	sa.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.On("Record", mock.Anything, "a1", mock.Anything, mock.MatchedBy(func(desc string) bool {
		return strings.Contains(desc, "Branch One")
	})).Return(nil)

	svc := newTestService(a, sa, s)
	got, err := svc.CreateSubAccount(context.Background(), "a1", &subaccount.CreateRequest{Name: "Branch One"})

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "a1", got.AgencyID)
	s.AssertNumberOfCalls(t, "Record", 1)
}
