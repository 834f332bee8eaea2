package store

import (
	"context"
	"database/sql"

	"htxagri/internal/models"
)

type MemberStore struct {
	db DB
}

func NewMemberStore(db DB) *MemberStore {
	return &MemberStore{db: db}
}

const memberColumns = `id, user_id, member_code, join_date, share_capital, is_active, notes, created_at, updated_at`

func (s *MemberStore) Create(ctx context.Context, tx Execer, member models.Member) error {
	query := `
		INSERT INTO members (id, user_id, member_code, join_date, share_capital, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		member.ID, member.UserID, member.MemberCode, member.JoinDate,
		member.ShareCapital, member.IsActive, member.Notes)
	return err
}

func (s *MemberStore) List(ctx context.Context) ([]models.Member, error) {
	var rows []models.Member
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+memberColumns+`
		FROM members
		ORDER BY member_code
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MemberStore) GetByID(ctx context.Context, memberID string) (models.Member, error) {
	var row models.Member
	err := s.db.GetContext(ctx, &row, `SELECT `+memberColumns+` FROM members WHERE id = $1`, memberID)
	if err != nil {
		return models.Member{}, err
	}
	return row, nil
}

func (s *MemberStore) Update(ctx context.Context, tx Execer, member models.Member) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE members
		SET user_id = $1, member_code = $2, join_date = $3, share_capital = $4, is_active = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`, member.UserID, member.MemberCode, member.JoinDate, member.ShareCapital, member.IsActive, member.Notes, member.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *MemberStore) Delete(ctx context.Context, tx Execer, memberID string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, memberID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
