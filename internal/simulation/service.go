package simulation

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/enem-prep/backend/internal/irt"
	"github.com/enem-prep/backend/internal/models"
)

const (
	defaultItemCount = 45
	maxItemCount     = 90
)

// ErrUnknownItems is returned when a submission references items that do
// not exist or are not calibrated.
var ErrUnknownItems = errors.New("submission references unknown or uncalibrated items")

type Service struct {
	store  *Store
	scales map[string]irt.Scale
}

// NewService builds a simulation service. scales holds per-area reporting
// scale overrides; areas without an entry use the default ENEM scale.
func NewService(store *Store, scales map[string]irt.Scale) *Service {
	return &Service{store: store, scales: scales}
}

// scaleFor resolves the reporting scale for an area.
func (s *Service) scaleFor(area models.KnowledgeArea) irt.Scale {
	if scale, ok := s.scales[string(area)]; ok {
		return scale
	}
	return irt.DefaultScale()
}

// StartSimulation selects a random set of calibrated items for the area.
// Answer keys are withheld from the response.
func (s *Service) StartSimulation(area models.KnowledgeArea, count int) (*models.StartSimulationResponse, error) {
	if count <= 0 {
		count = defaultItemCount
	}
	if count > maxItemCount {
		count = maxItemCount
	}

	items, err := s.store.FetchRandomItems(area, count)
	if err != nil {
		return nil, fmt.Errorf("start simulation: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("start simulation: no calibrated items for area %s", area)
	}

	public := make([]models.SimulationItem, len(items))
	for i, item := range items {
		public[i] = models.SimulationItem{
			ID:       item.ID,
			ExamYear: item.ExamYear,
			Area:     item.Area,
			Topic:    item.Topic,
		}
	}

	return &models.StartSimulationResponse{Area: area, Items: public}, nil
}

// ScoreSimulation derives the response vector from the submitted answers,
// estimates proficiency, rescales it, and persists the result. Estimation
// failures propagate to the caller and nothing is persisted.
func (s *Service) ScoreSimulation(userID int64, req models.ScoreSimulationRequest) (*models.ScoreSimulationResponse, error) {
	ids := make([]int64, len(req.Answers))
	for i, a := range req.Answers {
		ids[i] = a.ItemID
	}

	items, err := s.store.GetItemsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("score simulation: %w", err)
	}

	responses, params, correctCount, err := BuildResponseVector(req.Answers, items)
	if err != nil {
		return nil, err
	}

	scale := s.scaleFor(req.Area)
	estimator := irt.NewEstimator(scale)

	theta, err := estimator.Estimate(responses, params)
	if err != nil {
		return nil, err
	}
	score := scale.ToScore(theta)

	result := &models.SimulationResult{
		UserID:       userID,
		Area:         req.Area,
		Theta:        theta,
		Score:        score,
		CorrectCount: correctCount,
		TotalItems:   len(responses),
	}
	if err := s.store.SaveResult(result); err != nil {
		// The estimate itself succeeded; surface the persistence failure.
		return nil, fmt.Errorf("persist result: %w", err)
	}

	log.Printf("[simulation] user=%d area=%s theta=%.4f score=%.1f correct=%d/%d",
		userID, req.Area, theta, score, correctCount, len(responses))

	return &models.ScoreSimulationResponse{
		Area:         req.Area,
		Theta:        theta,
		Score:        score,
		CorrectCount: correctCount,
		TotalItems:   len(responses),
	}, nil
}

// ListResults returns the caller's past simulations, newest first.
func (s *Service) ListResults(userID int64) (*models.ResultListResponse, error) {
	results, err := s.store.ListResultsByUser(userID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.SimulationResult{}
	}
	return &models.ResultListResponse{Results: results, Total: len(results)}, nil
}

// AreaStats returns the calibrated item inventory per area.
func (s *Service) AreaStats() ([]models.AreaStat, error) {
	stats, err := s.store.AreaStats()
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.AreaStat{}
	}
	return stats, nil
}

// BuildResponseVector compares each submitted answer against its item's
// answer key, producing the binary response vector and the index-aligned
// parameter list the estimator needs. Every submitted item ID must
// resolve to a calibrated item.
func BuildResponseVector(answers []models.AnswerSubmission, items []models.OfficialItem) ([]bool, []irt.ItemParameters, int, error) {
	if len(answers) == 0 {
		return nil, nil, 0, ErrUnknownItems
	}

	byID := make(map[int64]models.OfficialItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	responses := make([]bool, len(answers))
	params := make([]irt.ItemParameters, len(answers))
	correctCount := 0

	for i, a := range answers {
		item, ok := byID[a.ItemID]
		if !ok {
			return nil, nil, 0, fmt.Errorf("%w: item %d", ErrUnknownItems, a.ItemID)
		}
		correct := strings.EqualFold(strings.TrimSpace(a.Chosen), item.AnswerKey)
		responses[i] = correct
		if correct {
			correctCount++
		}
		params[i] = item.Params()
	}

	return responses, params, correctCount, nil
}
