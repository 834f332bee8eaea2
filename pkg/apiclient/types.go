package apiclient

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMember   Role = "member"
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
)

type ProductCategory string

const (
	CategoryVegetable ProductCategory = "vegetable"
	CategoryFruit     ProductCategory = "fruit"
	CategoryGrain     ProductCategory = "grain"
	CategoryLivestock ProductCategory = "livestock"
	CategoryOther     ProductCategory = "other"
)

type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

type TransactionType string

const (
	TransactionIncome     TransactionType = "income"
	TransactionExpense    TransactionType = "expense"
	TransactionInvestment TransactionType = "investment"
	TransactionDividend   TransactionType = "dividend"
)

// AuthResponse is the login payload. The token type is always "bearer".
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Message carries the confirmation body of delete endpoints.
type Message struct {
	Message string `json:"message"`
}

type User struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Phone      *string    `json:"phone,omitempty"`
	Address    *string    `json:"address,omitempty"`
	Role       Role       `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type UserCreate struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Role     Role    `json:"role,omitempty"`
}

type Member struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	MemberCode   string     `json:"member_code"`
	JoinDate     string     `json:"join_date"`
	ShareCapital int64      `json:"share_capital"`
	IsActive     bool       `json:"is_active"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type MemberCreate struct {
	UserID       string  `json:"user_id"`
	MemberCode   string  `json:"member_code"`
	JoinDate     string  `json:"join_date"`
	ShareCapital int64   `json:"share_capital"`
	Notes        *string `json:"notes,omitempty"`
}

// MemberUpdate carries only the fields the caller sets; omitted fields are
// left untouched server-side.
type MemberUpdate struct {
	UserID       *string `json:"user_id,omitempty"`
	MemberCode   *string `json:"member_code,omitempty"`
	JoinDate     *string `json:"join_date,omitempty"`
	ShareCapital *int64  `json:"share_capital,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Description *string         `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	MemberID    *string         `json:"member_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

type ProductCreate struct {
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Description *string         `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	MemberID    *string         `json:"member_id,omitempty"`
}

type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	MemberID    *string          `json:"member_id,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type Harvest struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	MemberID     string           `json:"member_id"`
	HarvestDate  string           `json:"harvest_date"`
	Quantity     decimal.Decimal  `json:"quantity"`
	QualityGrade *string          `json:"quality_grade,omitempty"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type HarvestCreate struct {
	ProductID    string           `json:"product_id"`
	MemberID     string           `json:"member_id"`
	HarvestDate  string           `json:"harvest_date"`
	Quantity     decimal.Decimal  `json:"quantity"`
	QualityGrade *string          `json:"quality_grade,omitempty"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

type Contract struct {
	ID           string         `json:"id"`
	ContractCode string         `json:"contract_code"`
	MemberID     string         `json:"member_id"`
	CustomerID   string         `json:"customer_id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description,omitempty"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Status       ContractStatus `json:"status"`
	Notes        *string        `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
	Items        []ContractItem `json:"contract_items,omitempty"`
}

type ContractItem struct {
	ID         string          `json:"id"`
	ContractID string          `json:"contract_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ContractItemCreate struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type ContractCreate struct {
	ContractCode string               `json:"contract_code"`
	MemberID     string               `json:"member_id"`
	CustomerID   string               `json:"customer_id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description,omitempty"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Notes        *string              `json:"notes,omitempty"`
	Items        []ContractItemCreate `json:"contract_items,omitempty"`
}

type FinancialTransaction struct {
	ID              string          `json:"id"`
	TransactionCode string          `json:"transaction_code"`
	UserID          string          `json:"user_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Category        string          `json:"category"`
	Amount          int64           `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionCreate sends the amount as a string of whole dong, matching the
// server's parse rules.
type TransactionCreate struct {
	TransactionType TransactionType `json:"transaction_type"`
	Category        string          `json:"category"`
	Amount          string          `json:"amount"`
	Description     string          `json:"description,omitempty"`
	TransactionDate string          `json:"transaction_date"`
}

// TransactionFilter narrows ListTransactions. Zero values mean server
// defaults.
type TransactionFilter struct {
	Type   TransactionType
	Limit  int
	Offset int
}

type DashboardStats struct {
	TotalMembers    int64 `json:"total_members"`
	TotalProducts   int64 `json:"total_products"`
	TotalRevenue    int64 `json:"total_revenue"`
	ActiveContracts int64 `json:"active_contracts"`
}
