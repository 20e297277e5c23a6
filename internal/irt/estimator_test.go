package irt

import (
	"errors"
	"math"
	"testing"
)

var scenarioItems = []ItemParameters{
	{Discrimination: 1.2, Difficulty: -0.5, Guessing: 0.2},
	{Discrimination: 0.9, Difficulty: 0.3, Guessing: 0.25},
	{Discrimination: 1.5, Difficulty: -1.0, Guessing: 0.15},
	{Discrimination: 1.1, Difficulty: 0.0, Guessing: 0.2},
	{Discrimination: 1.0, Difficulty: 1.2, Guessing: 0.25},
}

func TestEstimateMixedPattern(t *testing.T) {
	e := NewEstimator(DefaultScale())
	responses := []bool{true, false, true, true, false}

	theta, err := e.Estimate(responses, scenarioItems)
	if err != nil {
		t.Fatalf("Estimate returned error: %v", err)
	}
	if math.IsNaN(theta) || theta < -4 || theta > 4 {
		t.Fatalf("theta = %v, want finite value in [-4, 4]", theta)
	}

	// The estimate must sit at the likelihood minimum: nudging theta in
	// either direction cannot improve the objective.
	nll := NegLogLikelihood(theta, responses, scenarioItems)
	for _, delta := range []float64{-0.01, 0.01} {
		if NegLogLikelihood(theta+delta, responses, scenarioItems) < nll-1e-9 {
			t.Errorf("theta=%v is not a local minimum (improved at delta=%v)", theta, delta)
		}
	}

	score := e.Scale().ToScore(theta)
	want := 500 + 100*theta
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("ToScore(%v) = %v, want %v", theta, score, want)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	e := NewEstimator(DefaultScale())
	responses := []bool{true, false, true, true, false}

	first, err := e.Estimate(responses, scenarioItems)
	if err != nil {
		t.Fatalf("first estimate: %v", err)
	}
	second, err := e.Estimate(responses, scenarioItems)
	if err != nil {
		t.Fatalf("second estimate: %v", err)
	}
	if first != second {
		t.Errorf("estimates differ across identical calls: %v vs %v", first, second)
	}
}

func TestEstimateDegeneratePatterns(t *testing.T) {
	e := NewEstimator(DefaultScale())

	tests := []struct {
		name      string
		responses []bool
		items     []ItemParameters
	}{
		{"all correct", []bool{true, true, true, true, true}, scenarioItems},
		{"all incorrect", []bool{false, false, false, false, false}, scenarioItems},
		{"single correct", []bool{true}, scenarioItems[:1]},
		{"single incorrect", []bool{false}, []ItemParameters{{Discrimination: 1.0, Difficulty: 0.0, Guessing: 0.2}}},
	}

	for _, tt := range tests {
		_, err := e.Estimate(tt.responses, tt.items)
		if !errors.Is(err, ErrDegenerateResponses) {
			t.Errorf("%s: err = %v, want ErrDegenerateResponses", tt.name, err)
		}
	}
}

func TestEstimateSkewedPatterns(t *testing.T) {
	e := NewEstimator(DefaultScale())
	items := make([]ItemParameters, 10)
	for i := range items {
		items[i] = ItemParameters{Discrimination: 1.0, Difficulty: 0.0, Guessing: 0.2}
	}

	// Nine of ten correct → well above average ability.
	high := make([]bool, 10)
	for i := range high {
		high[i] = i != 9
	}
	thetaHigh, err := e.Estimate(high, items)
	if err != nil {
		t.Fatalf("high pattern: %v", err)
	}
	if thetaHigh <= 0 {
		t.Errorf("thetaHigh = %v, want > 0", thetaHigh)
	}

	// One of ten correct → well below average ability.
	low := make([]bool, 10)
	low[0] = true
	thetaLow, err := e.Estimate(low, items)
	if err != nil {
		t.Fatalf("low pattern: %v", err)
	}
	if thetaLow >= 0 {
		t.Errorf("thetaLow = %v, want < 0", thetaLow)
	}
}

func TestEstimateInvalidInput(t *testing.T) {
	e := NewEstimator(DefaultScale())

	tests := []struct {
		name      string
		responses []bool
		items     []ItemParameters
	}{
		{"empty input", nil, nil},
		{"length mismatch", []bool{true, false}, scenarioItems[:3]},
		{"zero discrimination", []bool{true, false}, []ItemParameters{
			{Discrimination: 0, Difficulty: 0, Guessing: 0.2},
			{Discrimination: 1, Difficulty: 0, Guessing: 0.2},
		}},
		{"negative discrimination", []bool{true, false}, []ItemParameters{
			{Discrimination: -1, Difficulty: 0, Guessing: 0.2},
			{Discrimination: 1, Difficulty: 0, Guessing: 0.2},
		}},
		{"guessing at one", []bool{true, false}, []ItemParameters{
			{Discrimination: 1, Difficulty: 0, Guessing: 1.0},
			{Discrimination: 1, Difficulty: 0, Guessing: 0.2},
		}},
		{"negative guessing", []bool{true, false}, []ItemParameters{
			{Discrimination: 1, Difficulty: 0, Guessing: -0.1},
			{Discrimination: 1, Difficulty: 0, Guessing: 0.2},
		}},
	}

	for _, tt := range tests {
		_, err := e.Estimate(tt.responses, tt.items)
		var invalid *InvalidItemError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: err = %v, want InvalidItemError", tt.name, err)
		}
	}
}

func TestEstimateIterationCap(t *testing.T) {
	// An exhausted iteration budget must surface as non-convergence, not
	// as a best-effort value.
	e := &Estimator{scale: DefaultScale(), tolerance: 1e-7, maxIter: 3}

	_, err := e.Estimate([]bool{true, false, true, true, false}, scenarioItems)
	var nonConv *NonConvergenceError
	if !errors.As(err, &nonConv) {
		t.Fatalf("err = %v, want NonConvergenceError", err)
	}
	if nonConv.Iterations != 3 {
		t.Errorf("Iterations = %d, want 3", nonConv.Iterations)
	}
}

func TestEstimateWithinBoundsUnderExtremeItems(t *testing.T) {
	// Very hard items answered correctly push theta toward the upper
	// bound but never beyond it.
	e := NewEstimator(DefaultScale())
	items := []ItemParameters{
		{Discrimination: 2.0, Difficulty: 3.5, Guessing: 0.1},
		{Discrimination: 2.0, Difficulty: 3.8, Guessing: 0.1},
		{Discrimination: 2.0, Difficulty: -3.9, Guessing: 0.1},
	}
	theta, err := e.Estimate([]bool{true, true, false}, items)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if theta < -4 || theta > 4 {
		t.Errorf("theta = %v, outside [-4, 4]", theta)
	}
}
