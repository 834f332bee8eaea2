package handlers

import (
	"context"

	"htxagri/internal/models"
	"htxagri/internal/store"

	"github.com/jmoiron/sqlx"
)

type TxRunner interface {
	WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, user models.User) error
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetRole(ctx context.Context, userID string) (string, error)
}

type MemberStore interface {
	Create(ctx context.Context, tx store.Execer, member models.Member) error
	List(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, memberID string) (models.Member, error)
	Update(ctx context.Context, tx store.Execer, member models.Member) error
	Delete(ctx context.Context, tx store.Execer, memberID string) error
}

type ProductStore interface {
	Create(ctx context.Context, tx store.Execer, product models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, productID string) (models.Product, error)
	Update(ctx context.Context, tx store.Execer, product models.Product) error
	Delete(ctx context.Context, tx store.Execer, productID string) error
}

type HarvestStore interface {
	Create(ctx context.Context, tx store.Execer, harvest models.Harvest) error
	List(ctx context.Context) ([]models.Harvest, error)
	GetByID(ctx context.Context, harvestID string) (models.Harvest, error)
}

type ContractStore interface {
	Create(ctx context.Context, tx store.Execer, contract models.Contract) error
	InsertItems(ctx context.Context, tx store.Execer, items []models.ContractItem) error
	List(ctx context.Context) ([]models.Contract, error)
	GetByID(ctx context.Context, contractID string) (models.Contract, error)
	ItemsByContract(ctx context.Context, contractID string) ([]models.ContractItem, error)
	UpdateStatus(ctx context.Context, tx store.Execer, contractID, status string) error
}

type FinanceStore interface {
	Create(ctx context.Context, tx store.Execer, transaction models.FinancialTransaction) error
	List(ctx context.Context, txType string, limit, offset int) ([]models.FinancialTransaction, error)
}

type DashboardStore interface {
	Stats(ctx context.Context) (models.DashboardStats, error)
}
