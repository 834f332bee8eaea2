package store

import (
	"context"

	"htxagri/internal/models"
)

type ProductStore struct {
	db DB
}

func NewProductStore(db DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, category, description, unit, member_id, is_active, created_at, updated_at`

func (s *ProductStore) Create(ctx context.Context, tx Execer, product models.Product) error {
	query := `
		INSERT INTO products (id, name, category, description, unit, member_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		product.ID, product.Name, product.Category, product.Description,
		product.Unit, product.MemberID, product.IsActive)
	return err
}

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ProductStore) GetByID(ctx context.Context, productID string) (models.Product, error) {
	var row models.Product
	err := s.db.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE id = $1`, productID)
	if err != nil {
		return models.Product{}, err
	}
	return row, nil
}

func (s *ProductStore) Update(ctx context.Context, tx Execer, product models.Product) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, category = $2, description = $3, unit = $4, member_id = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`, product.Name, product.Category, product.Description, product.Unit, product.MemberID, product.IsActive, product.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *ProductStore) Delete(ctx context.Context, tx Execer, productID string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
