package store

import (
	"context"

	"htxagri/internal/models"
)

type ContractStore struct {
	db DB
}

func NewContractStore(db DB) *ContractStore {
	return &ContractStore{db: db}
}

const contractColumns = `id, contract_code, member_id, customer_id, title, description, start_date, end_date, status, notes, created_at, updated_at`

func (s *ContractStore) Create(ctx context.Context, tx Execer, contract models.Contract) error {
	query := `
		INSERT INTO contracts (id, contract_code, member_id, customer_id, title, description, start_date, end_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := tx.ExecContext(ctx, query,
		contract.ID, contract.ContractCode, contract.MemberID, contract.CustomerID,
		contract.Title, contract.Description, contract.StartDate, contract.EndDate,
		contract.Status, contract.Notes)
	return err
}

func (s *ContractStore) InsertItems(ctx context.Context, tx Execer, items []models.ContractItem) error {
	query := `
		INSERT INTO contract_items (id, contract_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.ContractID, item.ProductID,
			item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContractStore) List(ctx context.Context) ([]models.Contract, error) {
	var rows []models.Contract
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+contractColumns+`
		FROM contracts
		ORDER BY start_date DESC, contract_code
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ContractStore) GetByID(ctx context.Context, contractID string) (models.Contract, error) {
	var row models.Contract
	err := s.db.GetContext(ctx, &row, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, contractID)
	if err != nil {
		return models.Contract{}, err
	}
	return row, nil
}

func (s *ContractStore) ItemsByContract(ctx context.Context, contractID string) ([]models.ContractItem, error) {
	var rows []models.ContractItem
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, contract_id, product_id, quantity, unit_price, total_price
		FROM contract_items
		WHERE contract_id = $1
		ORDER BY id
	`, contractID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ContractStore) UpdateStatus(ctx context.Context, tx Execer, contractID, status string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE contracts
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, contractID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
