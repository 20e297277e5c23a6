package models

import "time"

// ── Request Types ────────────────────────────────────────

type StartSimulationRequest struct {
	Area  KnowledgeArea `json:"area"`
	Count int           `json:"count"`
}

// AnswerSubmission is the examinee's chosen alternative for one item.
type AnswerSubmission struct {
	ItemID int64  `json:"item_id"`
	Chosen string `json:"chosen"`
}

type ScoreSimulationRequest struct {
	Area    KnowledgeArea      `json:"area"`
	Answers []AnswerSubmission `json:"answers"`
}

// ── Response Types ────────────────────────────────────────

type StartSimulationResponse struct {
	Area  KnowledgeArea    `json:"area"`
	Items []SimulationItem `json:"items"`
}

type ScoreSimulationResponse struct {
	Area         KnowledgeArea `json:"area"`
	Theta        float64       `json:"theta"`
	Score        float64       `json:"score"`
	CorrectCount int           `json:"correct_count"`
	TotalItems   int           `json:"total_items"`
}

// SimulationResult is a persisted scoring outcome. Failed estimations are
// never persisted.
type SimulationResult struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"user_id"`
	Area         KnowledgeArea `json:"area"`
	Theta        float64       `json:"theta"`
	Score        float64       `json:"score"`
	CorrectCount int           `json:"correct_count"`
	TotalItems   int           `json:"total_items"`
	TakenAt      time.Time     `json:"taken_at"`
}

type ResultListResponse struct {
	Results []SimulationResult `json:"results"`
	Total   int                `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
