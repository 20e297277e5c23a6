package simulation

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/enem-prep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Item Selection ──────────────────────────────────────

// FetchRandomItems picks count random fully calibrated items for an area.
// Items missing any 3PL parameter are never served.
func (s *Store) FetchRandomItems(area models.KnowledgeArea, count int) ([]models.OfficialItem, error) {
	rows, err := s.db.Query(
		`SELECT id, exam_year, area, param_a, param_b, param_c, answer_key, topic
		 FROM official_items
		 WHERE area = $1
		   AND param_a IS NOT NULL
		   AND param_b IS NOT NULL
		   AND param_c IS NOT NULL
		   AND answer_key IS NOT NULL
		 ORDER BY RANDOM()
		 LIMIT $2`,
		area, count,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch random items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetItemsByIDs loads the referenced items, preserving no particular order.
func (s *Store) GetItemsByIDs(ids []int64) ([]models.OfficialItem, error) {
	rows, err := s.db.Query(
		`SELECT id, exam_year, area, param_a, param_b, param_c, answer_key, topic
		 FROM official_items
		 WHERE id = ANY($1)
		   AND param_a IS NOT NULL
		   AND param_b IS NOT NULL
		   AND param_c IS NOT NULL
		   AND answer_key IS NOT NULL`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]models.OfficialItem, error) {
	var items []models.OfficialItem
	for rows.Next() {
		var item models.OfficialItem
		if err := rows.Scan(&item.ID, &item.ExamYear, &item.Area,
			&item.Discrimination, &item.Difficulty, &item.Guessing,
			&item.AnswerKey, &item.Topic); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AreaStats returns the calibrated inventory count per knowledge area.
func (s *Store) AreaStats() ([]models.AreaStat, error) {
	rows, err := s.db.Query(
		`SELECT area, COUNT(*)
		 FROM official_items
		 WHERE param_a IS NOT NULL AND param_b IS NOT NULL AND param_c IS NOT NULL
		 GROUP BY area
		 ORDER BY area`,
	)
	if err != nil {
		return nil, fmt.Errorf("area stats: %w", err)
	}
	defer rows.Close()

	var stats []models.AreaStat
	for rows.Next() {
		var st models.AreaStat
		if err := rows.Scan(&st.Area, &st.ItemCount); err != nil {
			return nil, fmt.Errorf("scan area stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// ── Result Persistence ──────────────────────────────────

func (s *Store) SaveResult(result *models.SimulationResult) error {
	err := s.db.QueryRow(
		`INSERT INTO simulation_results (user_id, area, theta, score, correct_count, total_items)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, taken_at`,
		result.UserID, result.Area, result.Theta, result.Score,
		result.CorrectCount, result.TotalItems,
	).Scan(&result.ID, &result.TakenAt)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (s *Store) ListResultsByUser(userID int64) ([]models.SimulationResult, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, area, theta, score, correct_count, total_items, taken_at
		 FROM simulation_results
		 WHERE user_id = $1
		 ORDER BY taken_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []models.SimulationResult
	for rows.Next() {
		var r models.SimulationResult
		if err := rows.Scan(&r.ID, &r.UserID, &r.Area, &r.Theta, &r.Score,
			&r.CorrectCount, &r.TotalItems, &r.TakenAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
