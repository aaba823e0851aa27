package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pitboss/events"
	"pitboss/models"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, accountNumber string, startingBalance int64) (*models.Account, error) {
	args := m.Called(ctx, accountNumber, startingBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Settle(ctx context.Context, accountID, betAmount, winAmount int64) (int64, error) {
	args := m.Called(ctx, accountID, betAmount, winAmount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, accountID, amount int64) (int64, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Leaderboard(ctx context.Context, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindDrift(ctx context.Context) ([]*models.BalanceDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceDrift), args.Error(1)
}

// MockWagerRecordRepository is a mock implementation of WagerRecordRepository
type MockWagerRecordRepository struct {
	mock.Mock
}

func (m *MockWagerRecordRepository) Create(ctx context.Context, record *models.WagerRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWagerRecordRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.WagerRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WagerRecord), args.Error(1)
}

// MockPaymentCreditRepository is a mock implementation of PaymentCreditRepository
type MockPaymentCreditRepository struct {
	mock.Mock
}

func (m *MockPaymentCreditRepository) Create(ctx context.Context, credit *models.PaymentCredit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockPaymentCreditRepository) GetByAccount(ctx context.Context, accountID int64) ([]*models.PaymentCredit, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentCredit), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	accountRepo     AccountRepository
	wagerRecordRepo WagerRecordRepository
	paymentRepo     PaymentCreditRepository
	eventBus        EventPublisher
}

// SetRepositories wires the repositories the mock returns from its getters
func (m *MockUnitOfWork) SetRepositories(accounts AccountRepository, records WagerRecordRepository, payments PaymentCreditRepository, bus EventPublisher) {
	m.accountRepo = accounts
	m.wagerRecordRepo = records
	m.paymentRepo = payments
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) WagerRecordRepository() WagerRecordRepository {
	return m.wagerRecordRepo
}

func (m *MockUnitOfWork) PaymentCreditRepository() PaymentCreditRepository {
	return m.paymentRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
