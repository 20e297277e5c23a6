package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/enem-prep/backend/internal/models"
)

type Service struct {
	store *Store
	llm   LLMClient
}

// NewService builds the analysis service. llm may be nil, in which case
// empty commentaries fall back to the deterministic parameter
// description.
func NewService(store *Store, llm LLMClient) *Service {
	return &Service{store: store, llm: llm}
}

// CreateAnalysis validates and stores a manual item analysis. When the
// analyst leaves the commentary empty, a draft is generated from the
// parameters; an LLM failure degrades to the deterministic fallback
// rather than failing the request.
func (s *Service) CreateAnalysis(ctx context.Context, req models.CreateAnalysisRequest) (*models.ItemAnalysis, error) {
	if req.Discrimination <= 0 {
		return nil, fmt.Errorf("discrimination (a) must be positive")
	}
	if req.Guessing < 0 || req.Guessing >= 1 {
		return nil, fmt.Errorf("guessing (c) must be in [0, 1)")
	}

	commentary := req.Commentary
	aiDrafted := false

	if commentary == "" {
		commentary, aiDrafted = s.draftCommentary(ctx, req)
	}

	a := &models.ItemAnalysis{
		Discrimination: req.Discrimination,
		Difficulty:     req.Difficulty,
		Guessing:       req.Guessing,
		Commentary:     commentary,
		AIDrafted:      aiDrafted,
	}
	if err := s.store.SaveAnalysis(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) draftCommentary(ctx context.Context, req models.CreateAnalysisRequest) (string, bool) {
	if s.llm == nil {
		return FallbackCommentary(req.Discrimination, req.Difficulty, req.Guessing), false
	}

	prompt := BuildCommentaryPrompt(req.Discrimination, req.Difficulty, req.Guessing)
	draft, err := s.llm.Generate(ctx, commentarySystemPrompt, prompt)
	if err != nil || draft == "" {
		log.Printf("[analysis] commentary draft failed, using fallback: %v", err)
		return FallbackCommentary(req.Discrimination, req.Difficulty, req.Guessing), false
	}
	return draft, true
}

func (s *Service) ListAnalyses(limit, offset int) (*models.AnalysisListResponse, error) {
	analyses, err := s.store.ListAnalyses(limit, offset)
	if err != nil {
		return nil, err
	}
	if analyses == nil {
		analyses = []models.ItemAnalysis{}
	}
	return &models.AnalysisListResponse{Analyses: analyses, Total: len(analyses)}, nil
}
