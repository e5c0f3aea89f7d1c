//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	usecase "github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
	decimal "github.com/shopspring/decimal"
	gomock "go.uber.org/mock/gomock"
)

// GomockAccountRepository is a mock of AccountRepository interface.
type GomockAccountRepository struct {
	ctrl     *gomock.Controller
	recorder *GomockAccountRepositoryMockRecorder
	isgomock struct{}
}

// GomockAccountRepositoryMockRecorder is the mock recorder for GomockAccountRepository.
type GomockAccountRepositoryMockRecorder struct {
	mock *GomockAccountRepository
}

// NewGomockAccountRepository creates a new mock instance.
func NewGomockAccountRepository(ctrl *gomock.Controller) *GomockAccountRepository {
	mock := &GomockAccountRepository{ctrl: ctrl}
	mock.recorder = &GomockAccountRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockAccountRepository) EXPECT() *GomockAccountRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *GomockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, account)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *GomockAccountRepositoryMockRecorder) Create(ctx, account any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*GomockAccountRepository)(nil).Create), ctx, account)
}

// GetByID mocks base method.
func (m *GomockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *GomockAccountRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*GomockAccountRepository)(nil).GetByID), ctx, id)
}

// GetByIDForUpdate mocks base method.
func (m *GomockAccountRepository) GetByIDForUpdate(ctx context.Context, dbtx usecase.Transaction, id string) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByIDForUpdate", ctx, dbtx, id)
	ret0, _ := ret[0].(*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByIDForUpdate indicates an expected call of GetByIDForUpdate.
func (mr *GomockAccountRepositoryMockRecorder) GetByIDForUpdate(ctx, dbtx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByIDForUpdate", reflect.TypeOf((*GomockAccountRepository)(nil).GetByIDForUpdate), ctx, dbtx, id)
}

// GetByIDsForUpdate mocks base method.
func (m *GomockAccountRepository) GetByIDsForUpdate(ctx context.Context, dbtx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByIDsForUpdate", ctx, dbtx, ids)
	ret0, _ := ret[0].([]*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByIDsForUpdate indicates an expected call of GetByIDsForUpdate.
func (mr *GomockAccountRepositoryMockRecorder) GetByIDsForUpdate(ctx, dbtx, ids any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByIDsForUpdate", reflect.TypeOf((*GomockAccountRepository)(nil).GetByIDsForUpdate), ctx, dbtx, ids)
}

// GetByNumber mocks base method.
func (m *GomockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByNumber", ctx, number)
	ret0, _ := ret[0].(*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByNumber indicates an expected call of GetByNumber.
func (mr *GomockAccountRepositoryMockRecorder) GetByNumber(ctx, number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByNumber", reflect.TypeOf((*GomockAccountRepository)(nil).GetByNumber), ctx, number)
}

// ListByCustomer mocks base method.
func (m *GomockAccountRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByCustomer", ctx, customerID, limit, offset)
	ret0, _ := ret[0].([]*domain.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByCustomer indicates an expected call of ListByCustomer.
func (mr *GomockAccountRepositoryMockRecorder) ListByCustomer(ctx, customerID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByCustomer", reflect.TypeOf((*GomockAccountRepository)(nil).ListByCustomer), ctx, customerID, limit, offset)
}

// UpdateBalances mocks base method.
func (m *GomockAccountRepository) UpdateBalances(ctx context.Context, dbtx usecase.Transaction, account *domain.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBalances", ctx, dbtx, account)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateBalances indicates an expected call of UpdateBalances.
func (mr *GomockAccountRepositoryMockRecorder) UpdateBalances(ctx, dbtx, account any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBalances", reflect.TypeOf((*GomockAccountRepository)(nil).UpdateBalances), ctx, dbtx, account)
}

// UpdateStatus mocks base method.
func (m *GomockAccountRepository) UpdateStatus(ctx context.Context, dbtx usecase.Transaction, account *domain.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStatus", ctx, dbtx, account)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateStatus indicates an expected call of UpdateStatus.
func (mr *GomockAccountRepositoryMockRecorder) UpdateStatus(ctx, dbtx, account any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStatus", reflect.TypeOf((*GomockAccountRepository)(nil).UpdateStatus), ctx, dbtx, account)
}

// GomockTransactionRepository is a mock of TransactionRepository interface.
type GomockTransactionRepository struct {
	ctrl     *gomock.Controller
	recorder *GomockTransactionRepositoryMockRecorder
	isgomock struct{}
}

// GomockTransactionRepositoryMockRecorder is the mock recorder for GomockTransactionRepository.
type GomockTransactionRepositoryMockRecorder struct {
	mock *GomockTransactionRepository
}

// NewGomockTransactionRepository creates a new mock instance.
func NewGomockTransactionRepository(ctrl *gomock.Controller) *GomockTransactionRepository {
	mock := &GomockTransactionRepository{ctrl: ctrl}
	mock.recorder = &GomockTransactionRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockTransactionRepository) EXPECT() *GomockTransactionRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *GomockTransactionRepository) Create(ctx context.Context, dbtx usecase.Transaction, tx *domain.Transaction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, dbtx, tx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *GomockTransactionRepositoryMockRecorder) Create(ctx, dbtx, tx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*GomockTransactionRepository)(nil).Create), ctx, dbtx, tx)
}

// GetByID mocks base method.
func (m *GomockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Transaction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *GomockTransactionRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*GomockTransactionRepository)(nil).GetByID), ctx, id)
}

// GetByReference mocks base method.
func (m *GomockTransactionRepository) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByReference", ctx, referenceNumber)
	ret0, _ := ret[0].(*domain.Transaction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByReference indicates an expected call of GetByReference.
func (mr *GomockTransactionRepositoryMockRecorder) GetByReference(ctx, referenceNumber any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByReference", reflect.TypeOf((*GomockTransactionRepository)(nil).GetByReference), ctx, referenceNumber)
}

// ListByAccount mocks base method.
func (m *GomockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByAccount", ctx, accountID, limit, offset)
	ret0, _ := ret[0].([]*domain.Transaction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByAccount indicates an expected call of ListByAccount.
func (mr *GomockTransactionRepositoryMockRecorder) ListByAccount(ctx, accountID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByAccount", reflect.TypeOf((*GomockTransactionRepository)(nil).ListByAccount), ctx, accountID, limit, offset)
}

// GomockTransferRepository is a mock of TransferRepository interface.
type GomockTransferRepository struct {
	ctrl     *gomock.Controller
	recorder *GomockTransferRepositoryMockRecorder
	isgomock struct{}
}

// GomockTransferRepositoryMockRecorder is the mock recorder for GomockTransferRepository.
type GomockTransferRepositoryMockRecorder struct {
	mock *GomockTransferRepository
}

// NewGomockTransferRepository creates a new mock instance.
func NewGomockTransferRepository(ctrl *gomock.Controller) *GomockTransferRepository {
	mock := &GomockTransferRepository{ctrl: ctrl}
	mock.recorder = &GomockTransferRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockTransferRepository) EXPECT() *GomockTransferRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *GomockTransferRepository) Create(ctx context.Context, dbtx usecase.Transaction, transfer *domain.Transfer) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, dbtx, transfer)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *GomockTransferRepositoryMockRecorder) Create(ctx, dbtx, transfer any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*GomockTransferRepository)(nil).Create), ctx, dbtx, transfer)
}

// GetByID mocks base method.
func (m *GomockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Transfer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *GomockTransferRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*GomockTransferRepository)(nil).GetByID), ctx, id)
}

// GetByIdempotencyKey mocks base method.
func (m *GomockTransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByIdempotencyKey", ctx, key)
	ret0, _ := ret[0].(*domain.Transfer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByIdempotencyKey indicates an expected call of GetByIdempotencyKey.
func (mr *GomockTransferRepositoryMockRecorder) GetByIdempotencyKey(ctx, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByIdempotencyKey", reflect.TypeOf((*GomockTransferRepository)(nil).GetByIdempotencyKey), ctx, key)
}

// GetByReversedTransferID mocks base method.
func (m *GomockTransferRepository) GetByReversedTransferID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByReversedTransferID", ctx, transferID)
	ret0, _ := ret[0].(*domain.Transfer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByReversedTransferID indicates an expected call of GetByReversedTransferID.
func (mr *GomockTransferRepositoryMockRecorder) GetByReversedTransferID(ctx, transferID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByReversedTransferID", reflect.TypeOf((*GomockTransferRepository)(nil).GetByReversedTransferID), ctx, transferID)
}

// ListByAccount mocks base method.
func (m *GomockTransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByAccount", ctx, accountID, limit, offset)
	ret0, _ := ret[0].([]*domain.Transfer)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByAccount indicates an expected call of ListByAccount.
func (mr *GomockTransferRepositoryMockRecorder) ListByAccount(ctx, accountID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByAccount", reflect.TypeOf((*GomockTransferRepository)(nil).ListByAccount), ctx, accountID, limit, offset)
}

// SumTransferredSince mocks base method.
func (m *GomockTransferRepository) SumTransferredSince(ctx context.Context, dbtx usecase.Transaction, sourceAccountID string, since time.Time) (decimal.Decimal, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SumTransferredSince", ctx, dbtx, sourceAccountID, since)
	ret0, _ := ret[0].(decimal.Decimal)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SumTransferredSince indicates an expected call of SumTransferredSince.
func (mr *GomockTransferRepositoryMockRecorder) SumTransferredSince(ctx, dbtx, sourceAccountID, since any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SumTransferredSince", reflect.TypeOf((*GomockTransferRepository)(nil).SumTransferredSince), ctx, dbtx, sourceAccountID, since)
}

// GomockHoldRepository is a mock of HoldRepository interface.
type GomockHoldRepository struct {
	ctrl     *gomock.Controller
	recorder *GomockHoldRepositoryMockRecorder
	isgomock struct{}
}

// GomockHoldRepositoryMockRecorder is the mock recorder for GomockHoldRepository.
type GomockHoldRepositoryMockRecorder struct {
	mock *GomockHoldRepository
}

// NewGomockHoldRepository creates a new mock instance.
func NewGomockHoldRepository(ctrl *gomock.Controller) *GomockHoldRepository {
	mock := &GomockHoldRepository{ctrl: ctrl}
	mock.recorder = &GomockHoldRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockHoldRepository) EXPECT() *GomockHoldRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *GomockHoldRepository) Create(ctx context.Context, dbtx usecase.Transaction, hold *domain.Hold) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, dbtx, hold)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *GomockHoldRepositoryMockRecorder) Create(ctx, dbtx, hold any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*GomockHoldRepository)(nil).Create), ctx, dbtx, hold)
}

// GetByID mocks base method.
func (m *GomockHoldRepository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Hold)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *GomockHoldRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*GomockHoldRepository)(nil).GetByID), ctx, id)
}

// GetByIDForUpdate mocks base method.
func (m *GomockHoldRepository) GetByIDForUpdate(ctx context.Context, dbtx usecase.Transaction, id string) (*domain.Hold, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByIDForUpdate", ctx, dbtx, id)
	ret0, _ := ret[0].(*domain.Hold)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByIDForUpdate indicates an expected call of GetByIDForUpdate.
func (mr *GomockHoldRepositoryMockRecorder) GetByIDForUpdate(ctx, dbtx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByIDForUpdate", reflect.TypeOf((*GomockHoldRepository)(nil).GetByIDForUpdate), ctx, dbtx, id)
}

// ListByAccount mocks base method.
func (m *GomockHoldRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Hold, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByAccount", ctx, accountID, limit, offset)
	ret0, _ := ret[0].([]*domain.Hold)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByAccount indicates an expected call of ListByAccount.
func (mr *GomockHoldRepositoryMockRecorder) ListByAccount(ctx, accountID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByAccount", reflect.TypeOf((*GomockHoldRepository)(nil).ListByAccount), ctx, accountID, limit, offset)
}

// UpdateStatus mocks base method.
func (m *GomockHoldRepository) UpdateStatus(ctx context.Context, dbtx usecase.Transaction, id string, status domain.HoldStatus, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStatus", ctx, dbtx, id, status, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateStatus indicates an expected call of UpdateStatus.
func (mr *GomockHoldRepositoryMockRecorder) UpdateStatus(ctx, dbtx, id, status, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStatus", reflect.TypeOf((*GomockHoldRepository)(nil).UpdateStatus), ctx, dbtx, id, status, updatedAt)
}

// GomockTransaction is a mock of Transaction interface.
type GomockTransaction struct {
	ctrl     *gomock.Controller
	recorder *GomockTransactionMockRecorder
	isgomock struct{}
}

// GomockTransactionMockRecorder is the mock recorder for GomockTransaction.
type GomockTransactionMockRecorder struct {
	mock *GomockTransaction
}

// NewGomockTransaction creates a new mock instance.
func NewGomockTransaction(ctrl *gomock.Controller) *GomockTransaction {
	mock := &GomockTransaction{ctrl: ctrl}
	mock.recorder = &GomockTransactionMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockTransaction) EXPECT() *GomockTransactionMockRecorder {
	return m.recorder
}

// Commit mocks base method.
func (m *GomockTransaction) Commit(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Commit", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Commit indicates an expected call of Commit.
func (mr *GomockTransactionMockRecorder) Commit(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Commit", reflect.TypeOf((*GomockTransaction)(nil).Commit), ctx)
}

// Rollback mocks base method.
func (m *GomockTransaction) Rollback(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rollback", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Rollback indicates an expected call of Rollback.
func (mr *GomockTransactionMockRecorder) Rollback(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rollback", reflect.TypeOf((*GomockTransaction)(nil).Rollback), ctx)
}

// GomockTransactionManager is a mock of TransactionManager interface.
type GomockTransactionManager struct {
	ctrl     *gomock.Controller
	recorder *GomockTransactionManagerMockRecorder
	isgomock struct{}
}

// GomockTransactionManagerMockRecorder is the mock recorder for GomockTransactionManager.
type GomockTransactionManagerMockRecorder struct {
	mock *GomockTransactionManager
}

// NewGomockTransactionManager creates a new mock instance.
func NewGomockTransactionManager(ctrl *gomock.Controller) *GomockTransactionManager {
	mock := &GomockTransactionManager{ctrl: ctrl}
	mock.recorder = &GomockTransactionManagerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockTransactionManager) EXPECT() *GomockTransactionManagerMockRecorder {
	return m.recorder
}

// Begin mocks base method.
func (m *GomockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Begin", ctx)
	ret0, _ := ret[0].(usecase.Transaction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Begin indicates an expected call of Begin.
func (mr *GomockTransactionManagerMockRecorder) Begin(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Begin", reflect.TypeOf((*GomockTransactionManager)(nil).Begin), ctx)
}

// GomockCache is a mock of Cache interface.
type GomockCache struct {
	ctrl     *gomock.Controller
	recorder *GomockCacheMockRecorder
	isgomock struct{}
}

// GomockCacheMockRecorder is the mock recorder for GomockCache.
type GomockCacheMockRecorder struct {
	mock *GomockCache
}

// NewGomockCache creates a new mock instance.
func NewGomockCache(ctrl *gomock.Controller) *GomockCache {
	mock := &GomockCache{ctrl: ctrl}
	mock.recorder = &GomockCacheMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockCache) EXPECT() *GomockCacheMockRecorder {
	return m.recorder
}

// Delete mocks base method.
func (m *GomockCache) Delete(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *GomockCacheMockRecorder) Delete(ctx, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*GomockCache)(nil).Delete), ctx, key)
}

// Get mocks base method.
func (m *GomockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *GomockCacheMockRecorder) Get(ctx, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*GomockCache)(nil).Get), ctx, key)
}

// Set mocks base method.
func (m *GomockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Set", ctx, key, value, ttl)
	ret0, _ := ret[0].(error)
	return ret0
}

// Set indicates an expected call of Set.
func (mr *GomockCacheMockRecorder) Set(ctx, key, value, ttl any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*GomockCache)(nil).Set), ctx, key, value, ttl)
}

// GomockIdempotencyStore is a mock of IdempotencyStore interface.
type GomockIdempotencyStore struct {
	ctrl     *gomock.Controller
	recorder *GomockIdempotencyStoreMockRecorder
	isgomock struct{}
}

// GomockIdempotencyStoreMockRecorder is the mock recorder for GomockIdempotencyStore.
type GomockIdempotencyStoreMockRecorder struct {
	mock *GomockIdempotencyStore
}

// NewGomockIdempotencyStore creates a new mock instance.
func NewGomockIdempotencyStore(ctrl *gomock.Controller) *GomockIdempotencyStore {
	mock := &GomockIdempotencyStore{ctrl: ctrl}
	mock.recorder = &GomockIdempotencyStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *GomockIdempotencyStore) EXPECT() *GomockIdempotencyStoreMockRecorder {
	return m.recorder
}

// CheckAndSet mocks base method.
func (m *GomockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckAndSet", ctx, key, response, ttl)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].([]byte)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// CheckAndSet indicates an expected call of CheckAndSet.
func (mr *GomockIdempotencyStoreMockRecorder) CheckAndSet(ctx, key, response, ttl any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckAndSet", reflect.TypeOf((*GomockIdempotencyStore)(nil).CheckAndSet), ctx, key, response, ttl)
}

// Update mocks base method.
func (m *GomockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, key, response, ttl)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *GomockIdempotencyStoreMockRecorder) Update(ctx, key, response, ttl any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*GomockIdempotencyStore)(nil).Update), ctx, key, response, ttl)
}
