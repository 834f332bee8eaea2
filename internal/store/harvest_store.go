package store

import (
	"context"

	"htxagri/internal/models"
)

type HarvestStore struct {
	db DB
}

func NewHarvestStore(db DB) *HarvestStore {
	return &HarvestStore{db: db}
}

const harvestColumns = `id, product_id, member_id, harvest_date, quantity, quality_grade, price_per_unit, total_value, notes, created_at`

func (s *HarvestStore) Create(ctx context.Context, tx Execer, harvest models.Harvest) error {
	query := `
		INSERT INTO harvests (id, product_id, member_id, harvest_date, quantity, quality_grade, price_per_unit, total_value, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.ExecContext(ctx, query,
		harvest.ID, harvest.ProductID, harvest.MemberID, harvest.HarvestDate,
		harvest.Quantity, harvest.QualityGrade, harvest.PricePerUnit, harvest.TotalValue, harvest.Notes)
	return err
}

func (s *HarvestStore) List(ctx context.Context) ([]models.Harvest, error) {
	var rows []models.Harvest
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+harvestColumns+`
		FROM harvests
		ORDER BY harvest_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *HarvestStore) GetByID(ctx context.Context, harvestID string) (models.Harvest, error) {
	var row models.Harvest
	err := s.db.GetContext(ctx, &row, `SELECT `+harvestColumns+` FROM harvests WHERE id = $1`, harvestID)
	if err != nil {
		return models.Harvest{}, err
	}
	return row, nil
}
