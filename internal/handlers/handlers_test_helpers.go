package handlers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"htxagri/internal/auth"
	"htxagri/internal/config"
	"htxagri/internal/models"
	"htxagri/internal/store"
	"htxagri/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubDB struct {
	getFn    func(ctx context.Context, dest any, query string, args ...any) error
	selectFn func(ctx context.Context, dest any, query string, args ...any) error
	execFn   func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s stubDB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.getFn == nil {
		return nil
	}
	return s.getFn(ctx, dest, query, args...)
}

func (s stubDB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.selectFn == nil {
		return nil
	}
	return s.selectFn(ctx, dest, query, args...)
}

func (s stubDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.execFn == nil {
		return nil, nil
	}
	return s.execFn(ctx, query, args...)
}

type stubUserStore struct {
	createFn        func(ctx context.Context, tx store.Execer, user models.User) error
	getByUsernameFn func(ctx context.Context, username string) (models.User, error)
	getByIDFn       func(ctx context.Context, userID string) (models.User, error)
	getRoleFn       func(ctx context.Context, userID string) (string, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, user models.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, user)
}

func (s stubUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if s.getByUsernameFn == nil {
		return models.User{}, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) GetRole(ctx context.Context, userID string) (string, error) {
	if s.getRoleFn == nil {
		return models.RoleMember, nil
	}
	return s.getRoleFn(ctx, userID)
}

type stubMemberStore struct {
	createFn  func(ctx context.Context, tx store.Execer, member models.Member) error
	listFn    func(ctx context.Context) ([]models.Member, error)
	getByIDFn func(ctx context.Context, memberID string) (models.Member, error)
	updateFn  func(ctx context.Context, tx store.Execer, member models.Member) error
	deleteFn  func(ctx context.Context, tx store.Execer, memberID string) error
}

func (s stubMemberStore) Create(ctx context.Context, tx store.Execer, member models.Member) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, member)
}

func (s stubMemberStore) List(ctx context.Context) ([]models.Member, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubMemberStore) GetByID(ctx context.Context, memberID string) (models.Member, error) {
	if s.getByIDFn == nil {
		return models.Member{}, nil
	}
	return s.getByIDFn(ctx, memberID)
}

func (s stubMemberStore) Update(ctx context.Context, tx store.Execer, member models.Member) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, member)
}

func (s stubMemberStore) Delete(ctx context.Context, tx store.Execer, memberID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, memberID)
}

type stubProductStore struct {
	createFn  func(ctx context.Context, tx store.Execer, product models.Product) error
	listFn    func(ctx context.Context) ([]models.Product, error)
	getByIDFn func(ctx context.Context, productID string) (models.Product, error)
	updateFn  func(ctx context.Context, tx store.Execer, product models.Product) error
	deleteFn  func(ctx context.Context, tx store.Execer, productID string) error
}

func (s stubProductStore) Create(ctx context.Context, tx store.Execer, product models.Product) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, product)
}

func (s stubProductStore) List(ctx context.Context) ([]models.Product, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubProductStore) GetByID(ctx context.Context, productID string) (models.Product, error) {
	if s.getByIDFn == nil {
		return models.Product{}, nil
	}
	return s.getByIDFn(ctx, productID)
}

func (s stubProductStore) Update(ctx context.Context, tx store.Execer, product models.Product) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, product)
}

func (s stubProductStore) Delete(ctx context.Context, tx store.Execer, productID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, productID)
}

type stubHarvestStore struct {
	createFn  func(ctx context.Context, tx store.Execer, harvest models.Harvest) error
	listFn    func(ctx context.Context) ([]models.Harvest, error)
	getByIDFn func(ctx context.Context, harvestID string) (models.Harvest, error)
}

func (s stubHarvestStore) Create(ctx context.Context, tx store.Execer, harvest models.Harvest) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, harvest)
}

func (s stubHarvestStore) List(ctx context.Context) ([]models.Harvest, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubHarvestStore) GetByID(ctx context.Context, harvestID string) (models.Harvest, error) {
	if s.getByIDFn == nil {
		return models.Harvest{}, nil
	}
	return s.getByIDFn(ctx, harvestID)
}

type stubContractStore struct {
	createFn          func(ctx context.Context, tx store.Execer, contract models.Contract) error
	insertItemsFn     func(ctx context.Context, tx store.Execer, items []models.ContractItem) error
	listFn            func(ctx context.Context) ([]models.Contract, error)
	getByIDFn         func(ctx context.Context, contractID string) (models.Contract, error)
	itemsByContractFn func(ctx context.Context, contractID string) ([]models.ContractItem, error)
	updateStatusFn    func(ctx context.Context, tx store.Execer, contractID, status string) error
}

func (s stubContractStore) Create(ctx context.Context, tx store.Execer, contract models.Contract) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, contract)
}

func (s stubContractStore) InsertItems(ctx context.Context, tx store.Execer, items []models.ContractItem) error {
	if s.insertItemsFn == nil {
		return nil
	}
	return s.insertItemsFn(ctx, tx, items)
}

func (s stubContractStore) List(ctx context.Context) ([]models.Contract, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubContractStore) GetByID(ctx context.Context, contractID string) (models.Contract, error) {
	if s.getByIDFn == nil {
		return models.Contract{}, nil
	}
	return s.getByIDFn(ctx, contractID)
}

func (s stubContractStore) ItemsByContract(ctx context.Context, contractID string) ([]models.ContractItem, error) {
	if s.itemsByContractFn == nil {
		return nil, nil
	}
	return s.itemsByContractFn(ctx, contractID)
}

func (s stubContractStore) UpdateStatus(ctx context.Context, tx store.Execer, contractID, status string) error {
	if s.updateStatusFn == nil {
		return nil
	}
	return s.updateStatusFn(ctx, tx, contractID, status)
}

type stubFinanceStore struct {
	createFn func(ctx context.Context, tx store.Execer, transaction models.FinancialTransaction) error
	listFn   func(ctx context.Context, txType string, limit, offset int) ([]models.FinancialTransaction, error)
}

func (s stubFinanceStore) Create(ctx context.Context, tx store.Execer, transaction models.FinancialTransaction) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, transaction)
}

func (s stubFinanceStore) List(ctx context.Context, txType string, limit, offset int) ([]models.FinancialTransaction, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, txType, limit, offset)
}

type stubDashboardStore struct {
	statsFn func(ctx context.Context) (models.DashboardStats, error)
}

func (s stubDashboardStore) Stats(ctx context.Context) (models.DashboardStats, error) {
	if s.statsFn == nil {
		return models.DashboardStats{}, nil
	}
	return s.statsFn(ctx)
}

type handlerDeps struct {
	db        stubDB
	txRunner  fakeTxRunner
	users     stubUserStore
	members   stubMemberStore
	products  stubProductStore
	harvests  stubHarvestStore
	contracts stubContractStore
	finance   stubFinanceStore
	dashboard stubDashboardStore
}

func newTestHandler(deps handlerDeps) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		DatabaseURL:    "",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	return New(deps.db, deps.txRunner, cfg, deps.users, deps.members, deps.products, deps.harvests, deps.contracts, deps.finance, deps.dashboard, websocket.NewHub())
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func stringPtr(value string) *string {
	return &value
}

func int64Ptr(value int64) *int64 {
	return &value
}
