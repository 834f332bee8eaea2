package store

import (
	"context"

	"htxagri/internal/models"
)

type FinanceStore struct {
	db DB
}

func NewFinanceStore(db DB) *FinanceStore {
	return &FinanceStore{db: db}
}

const transactionColumns = `id, transaction_code, user_id, transaction_type, category, amount, description, transaction_date, created_at`

func (s *FinanceStore) Create(ctx context.Context, tx Execer, transaction models.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, transaction_code, user_id, transaction_type, category, amount, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		transaction.ID, transaction.TransactionCode, transaction.UserID,
		transaction.TransactionType, transaction.Category, transaction.Amount,
		transaction.Description, transaction.TransactionDate)
	return err
}

func (s *FinanceStore) List(ctx context.Context, txType string, limit, offset int) ([]models.FinancialTransaction, error) {
	var rows []models.FinancialTransaction
	if txType != "" {
		err := s.db.SelectContext(ctx, &rows, `
			SELECT `+transactionColumns+`
			FROM financial_transactions
			WHERE transaction_type = $1
			ORDER BY transaction_date DESC, created_at DESC
			LIMIT $2 OFFSET $3
		`, txType, limit, offset)
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+transactionColumns+`
		FROM financial_transactions
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
