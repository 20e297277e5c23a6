package analysis

import (
	"database/sql"
	"fmt"

	"github.com/enem-prep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveAnalysis(a *models.ItemAnalysis) error {
	err := s.db.QueryRow(
		`INSERT INTO item_analyses (param_a, param_b, param_c, commentary, ai_drafted)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.Discrimination, a.Difficulty, a.Guessing, a.Commentary, a.AIDrafted,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

func (s *Store) ListAnalyses(limit, offset int) ([]models.ItemAnalysis, error) {
	rows, err := s.db.Query(
		`SELECT id, param_a, param_b, param_c, COALESCE(commentary, ''), ai_drafted, created_at
		 FROM item_analyses
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.ItemAnalysis
	for rows.Next() {
		var a models.ItemAnalysis
		if err := rows.Scan(&a.ID, &a.Discrimination, &a.Difficulty, &a.Guessing,
			&a.Commentary, &a.AIDrafted, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}
