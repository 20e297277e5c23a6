package models

import "github.com/enem-prep/backend/internal/irt"

// KnowledgeArea is one of the four ENEM exam areas.
type KnowledgeArea string

const (
	AreaLanguages  KnowledgeArea = "LC" // Linguagens e Códigos
	AreaHumanities KnowledgeArea = "CH" // Ciências Humanas
	AreaNature     KnowledgeArea = "CN" // Ciências da Natureza
	AreaMath       KnowledgeArea = "MT" // Matemática
)

var ValidAreas = map[KnowledgeArea]bool{
	AreaLanguages:  true,
	AreaHumanities: true,
	AreaNature:     true,
	AreaMath:       true,
}

// OfficialItem is a pre-calibrated exam item imported from the INEP
// microdata. The 3PL parameters are externally supplied and never
// mutated by this service.
type OfficialItem struct {
	ID             int64         `json:"id"`
	ExamYear       int           `json:"exam_year"`
	Area           KnowledgeArea `json:"area"`
	Discrimination float64       `json:"param_a"`
	Difficulty     float64       `json:"param_b"`
	Guessing       float64       `json:"param_c"`
	AnswerKey      string        `json:"answer_key"`
	Topic          *string       `json:"topic,omitempty"`
}

// Params returns the item's 3PL parameters for the estimation engine.
func (i OfficialItem) Params() irt.ItemParameters {
	return irt.ItemParameters{
		Discrimination: i.Discrimination,
		Difficulty:     i.Difficulty,
		Guessing:       i.Guessing,
	}
}

// SimulationItem is the examinee-facing view of an item. The answer key
// stays server-side until scoring.
type SimulationItem struct {
	ID       int64         `json:"id"`
	ExamYear int           `json:"exam_year"`
	Area     KnowledgeArea `json:"area"`
	Topic    *string       `json:"topic,omitempty"`
}

// AreaStat summarizes importable inventory per knowledge area.
type AreaStat struct {
	Area      KnowledgeArea `json:"area"`
	ItemCount int           `json:"item_count"`
}
