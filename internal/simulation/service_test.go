package simulation

import (
	"errors"
	"testing"

	"github.com/enem-prep/backend/internal/models"
)

func testItems() []models.OfficialItem {
	return []models.OfficialItem{
		{ID: 101, ExamYear: 2022, Area: models.AreaMath, Discrimination: 1.2, Difficulty: -0.5, Guessing: 0.2, AnswerKey: "A"},
		{ID: 102, ExamYear: 2022, Area: models.AreaMath, Discrimination: 0.9, Difficulty: 0.3, Guessing: 0.25, AnswerKey: "B"},
		{ID: 103, ExamYear: 2022, Area: models.AreaMath, Discrimination: 1.5, Difficulty: -1.0, Guessing: 0.15, AnswerKey: "C"},
	}
}

func TestBuildResponseVector(t *testing.T) {
	answers := []models.AnswerSubmission{
		{ItemID: 101, Chosen: "A"}, // correct
		{ItemID: 102, Chosen: "E"}, // wrong
		{ItemID: 103, Chosen: "c"}, // correct, case-insensitive
	}

	responses, params, correct, err := BuildResponseVector(answers, testItems())
	if err != nil {
		t.Fatalf("BuildResponseVector: %v", err)
	}

	want := []bool{true, false, true}
	for i := range want {
		if responses[i] != want[i] {
			t.Errorf("responses[%d] = %v, want %v", i, responses[i], want[i])
		}
	}
	if correct != 2 {
		t.Errorf("correct = %d, want 2", correct)
	}
	if len(params) != 3 {
		t.Fatalf("len(params) = %d, want 3", len(params))
	}
	// Parameters stay index-aligned with the submission order.
	if params[1].Difficulty != 0.3 {
		t.Errorf("params[1].Difficulty = %v, want 0.3", params[1].Difficulty)
	}
}

func TestBuildResponseVectorTrimsWhitespace(t *testing.T) {
	answers := []models.AnswerSubmission{
		{ItemID: 101, Chosen: " a "},
		{ItemID: 102, Chosen: "B"},
	}

	responses, _, correct, err := BuildResponseVector(answers, testItems())
	if err != nil {
		t.Fatalf("BuildResponseVector: %v", err)
	}
	if !responses[0] || !responses[1] {
		t.Errorf("responses = %v, want both correct", responses)
	}
	if correct != 2 {
		t.Errorf("correct = %d, want 2", correct)
	}
}

func TestBuildResponseVectorUnknownItem(t *testing.T) {
	answers := []models.AnswerSubmission{
		{ItemID: 101, Chosen: "A"},
		{ItemID: 999, Chosen: "B"},
	}

	_, _, _, err := BuildResponseVector(answers, testItems())
	if !errors.Is(err, ErrUnknownItems) {
		t.Errorf("err = %v, want ErrUnknownItems", err)
	}
}

func TestBuildResponseVectorEmpty(t *testing.T) {
	_, _, _, err := BuildResponseVector(nil, testItems())
	if !errors.Is(err, ErrUnknownItems) {
		t.Errorf("err = %v, want ErrUnknownItems", err)
	}
}

func TestScaleForFallsBackToDefault(t *testing.T) {
	svc := NewService(nil, nil)
	scale := svc.scaleFor(models.AreaNature)
	if scale.ScoreMean != 500 || scale.ScoreSD != 100 {
		t.Errorf("default scale = %+v, want ENEM 500/100", scale)
	}
}
