package mocks

import (
	"context"

	"github.com/bianca-ap01/coin-swap/pkg/domain/account"
	"github.com/bianca-ap01/coin-swap/pkg/domain/history"
	"github.com/bianca-ap01/coin-swap/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// TestingT is the subset of *testing.T the constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// UnitOfWork is a testify mock of repository.UnitOfWork.
//
// Do may be given a Return value of type
// func(context.Context, func(repository.UnitOfWork) error) error, which is
// then invoked with the call's arguments; RunInline wires the common case.
type UnitOfWork struct {
	mock.Mock
}

// NewUnitOfWork creates a UnitOfWork whose expectations are asserted at cleanup.
func NewUnitOfWork(t TestingT) *UnitOfWork {
	m := &UnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// RunInline makes every Do call run fn directly against m.
func (m *UnitOfWork) RunInline() *mock.Call {
	return m.On("Do", mock.Anything, mock.Anything).Return(
		func(_ context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(m)
		})
}

func (m *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if f, ok := args.Get(0).(func(context.Context, func(repository.UnitOfWork) error) error); ok {
		return f(ctx, fn)
	}
	return args.Error(0)
}

func (m *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *UnitOfWork) HistoryRepository() (repository.HistoryRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.HistoryRepository)
	return repo, args.Error(1)
}

// AccountRepository is a testify mock of repository.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

// NewAccountRepository creates an AccountRepository whose expectations are asserted at cleanup.
func NewAccountRepository(t TestingT) *AccountRepository {
	m := &AccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	args := m.Called(ctx, username)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *AccountRepository) LockByUsernames(ctx context.Context, usernames ...string) (map[string]*account.Account, error) {
	args := m.Called(ctx, usernames)
	if f, ok := args.Get(0).(func([]string) map[string]*account.Account); ok {
		return f(usernames), args.Error(1)
	}
	locked, _ := args.Get(0).(map[string]*account.Account)
	return locked, args.Error(1)
}

func (m *AccountRepository) UpdateBalances(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

// HistoryRepository is a testify mock of repository.HistoryRepository.
type HistoryRepository struct {
	mock.Mock
}

// NewHistoryRepository creates a HistoryRepository whose expectations are asserted at cleanup.
func NewHistoryRepository(t TestingT) *HistoryRepository {
	m := &HistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HistoryRepository) Append(ctx context.Context, records ...history.Record) error {
	return m.Called(ctx, records).Error(0)
}

func (m *HistoryRepository) ListByUsername(ctx context.Context, username string) ([]history.Record, error) {
	args := m.Called(ctx, username)
	records, _ := args.Get(0).([]history.Record)
	return records, args.Error(1)
}

var (
	_ repository.UnitOfWork        = (*UnitOfWork)(nil)
	_ repository.AccountRepository = (*AccountRepository)(nil)
	_ repository.HistoryRepository = (*HistoryRepository)(nil)
)
