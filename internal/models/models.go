package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin    = "admin"
	RoleMember   = "member"
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

const (
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"
	CategoryGrain     = "grain"
	CategoryLivestock = "livestock"
	CategoryOther     = "other"
)

const (
	ContractDraft     = "draft"
	ContractActive    = "active"
	ContractCompleted = "completed"
	ContractCancelled = "cancelled"
)

const (
	TransactionIncome     = "income"
	TransactionExpense    = "expense"
	TransactionInvestment = "investment"
	TransactionDividend   = "dividend"
)

type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	Address      *string    `db:"address" json:"address,omitempty"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	IsVerified   bool       `db:"is_verified" json:"is_verified"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Member struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	MemberCode   string     `db:"member_code" json:"member_code"`
	JoinDate     string     `db:"join_date" json:"join_date"`
	ShareCapital int64      `db:"share_capital" json:"share_capital"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	Notes        *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Category    string     `db:"category" json:"category"`
	Description *string    `db:"description" json:"description,omitempty"`
	Unit        string     `db:"unit" json:"unit"`
	MemberID    *string    `db:"member_id" json:"member_id,omitempty"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Harvest struct {
	ID           string           `db:"id" json:"id"`
	ProductID    string           `db:"product_id" json:"product_id"`
	MemberID     string           `db:"member_id" json:"member_id"`
	HarvestDate  string           `db:"harvest_date" json:"harvest_date"`
	Quantity     decimal.Decimal  `db:"quantity" json:"quantity"`
	QualityGrade *string          `db:"quality_grade" json:"quality_grade,omitempty"`
	PricePerUnit *decimal.Decimal `db:"price_per_unit" json:"price_per_unit,omitempty"`
	TotalValue   *decimal.Decimal `db:"total_value" json:"total_value,omitempty"`
	Notes        *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

type Contract struct {
	ID           string         `db:"id" json:"id"`
	ContractCode string         `db:"contract_code" json:"contract_code"`
	MemberID     string         `db:"member_id" json:"member_id"`
	CustomerID   string         `db:"customer_id" json:"customer_id"`
	Title        string         `db:"title" json:"title"`
	Description  *string        `db:"description" json:"description,omitempty"`
	StartDate    string         `db:"start_date" json:"start_date"`
	EndDate      string         `db:"end_date" json:"end_date"`
	Status       string         `db:"status" json:"status"`
	Notes        *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
	Items        []ContractItem `db:"-" json:"contract_items,omitempty"`
}

type ContractItem struct {
	ID         string          `db:"id" json:"id"`
	ContractID string          `db:"contract_id" json:"contract_id"`
	ProductID  string          `db:"product_id" json:"product_id"`
	Quantity   decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
}

type FinancialTransaction struct {
	ID              string    `db:"id" json:"id"`
	TransactionCode string    `db:"transaction_code" json:"transaction_code"`
	UserID          string    `db:"user_id" json:"user_id"`
	TransactionType string    `db:"transaction_type" json:"transaction_type"`
	Category        string    `db:"category" json:"category"`
	Amount          int64     `db:"amount" json:"amount"`
	Description     string    `db:"description" json:"description"`
	TransactionDate string    `db:"transaction_date" json:"transaction_date"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type DashboardStats struct {
	TotalMembers    int64 `db:"total_members" json:"total_members"`
	TotalProducts   int64 `db:"total_products" json:"total_products"`
	TotalRevenue    int64 `db:"total_revenue" json:"total_revenue"`
	ActiveContracts int64 `db:"active_contracts" json:"active_contracts"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleCustomer, RoleManager:
		return true
	}
	return false
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryVegetable, CategoryFruit, CategoryGrain, CategoryLivestock, CategoryOther:
		return true
	}
	return false
}

func ValidContractStatus(status string) bool {
	switch status {
	case ContractDraft, ContractActive, ContractCompleted, ContractCancelled:
		return true
	}
	return false
}

func ValidTransactionType(txType string) bool {
	switch txType {
	case TransactionIncome, TransactionExpense, TransactionInvestment, TransactionDividend:
		return true
	}
	return false
}
