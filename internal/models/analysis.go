package models

import "time"

// ItemAnalysis is an analyst's written interpretation of a set of 3PL
// parameters, optionally drafted by the LLM client.
type ItemAnalysis struct {
	ID             int64     `json:"id"`
	Discrimination float64   `json:"param_a"`
	Difficulty     float64   `json:"param_b"`
	Guessing       float64   `json:"param_c"`
	Commentary     string    `json:"commentary"`
	AIDrafted      bool      `json:"ai_drafted"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateAnalysisRequest struct {
	Discrimination float64 `json:"param_a"`
	Difficulty     float64 `json:"param_b"`
	Guessing       float64 `json:"param_c"`
	Commentary     string  `json:"commentary,omitempty"`
}

type AnalysisListResponse struct {
	Analyses []ItemAnalysis `json:"analyses"`
	Total    int            `json:"total"`
}
