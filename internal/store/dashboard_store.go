package store

import (
	"context"

	"htxagri/internal/models"
)

type DashboardStore struct {
	db DB
}

func NewDashboardStore(db DB) *DashboardStore {
	return &DashboardStore{db: db}
}

func (s *DashboardStore) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM members WHERE is_active) AS total_members,
			(SELECT COUNT(*) FROM products WHERE is_active) AS total_products,
			(SELECT COALESCE(SUM(amount), 0) FROM financial_transactions WHERE transaction_type = 'income') AS total_revenue,
			(SELECT COUNT(*) FROM contracts WHERE status = 'active') AS active_contracts
	`)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
