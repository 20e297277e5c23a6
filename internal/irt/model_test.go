package irt

import (
	"math"
	"testing"
)

func TestProbCorrectAtDifficulty(t *testing.T) {
	// At theta == b the probability is exactly halfway between c and 1.
	items := []ItemParameters{
		{Discrimination: 1.2, Difficulty: -0.5, Guessing: 0.2},
		{Discrimination: 0.9, Difficulty: 0.3, Guessing: 0.25},
		{Discrimination: 2.0, Difficulty: 1.8, Guessing: 0.0},
	}

	for _, item := range items {
		want := item.Guessing + (1-item.Guessing)/2
		got := ProbCorrect(item.Difficulty, item)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("ProbCorrect(b=%v) = %v, want %v", item.Difficulty, got, want)
		}
	}
}

func TestProbCorrectMonotonic(t *testing.T) {
	item := ItemParameters{Discrimination: 1.1, Difficulty: 0.0, Guessing: 0.2}

	prev := math.Inf(-1)
	for theta := -4.0; theta <= 4.0; theta += 0.25 {
		p := ProbCorrect(theta, item)
		if p <= prev {
			t.Fatalf("ProbCorrect not strictly increasing at theta=%v: %v <= %v", theta, p, prev)
		}
		prev = p
	}
}

func TestProbCorrectBounds(t *testing.T) {
	item := ItemParameters{Discrimination: 1.5, Difficulty: 0.5, Guessing: 0.15}

	// Near the lower bound p approaches but never goes below c.
	low := ProbCorrect(-4, item)
	if low < item.Guessing {
		t.Errorf("ProbCorrect(-4) = %v, below guessing floor %v", low, item.Guessing)
	}
	if low > item.Guessing+0.05 {
		t.Errorf("ProbCorrect(-4) = %v, expected close to guessing floor %v", low, item.Guessing)
	}

	// Near the upper bound p approaches but never reaches 1.
	high := ProbCorrect(4, item)
	if high >= 1 {
		t.Errorf("ProbCorrect(4) = %v, must stay below 1", high)
	}
	if high < 0.95 {
		t.Errorf("ProbCorrect(4) = %v, expected close to 1", high)
	}
}

func TestNegLogLikelihoodFinite(t *testing.T) {
	items := []ItemParameters{
		{Discrimination: 1.2, Difficulty: -0.5, Guessing: 0.2},
		{Discrimination: 0.9, Difficulty: 0.3, Guessing: 0.25},
		{Discrimination: 1.5, Difficulty: -1.0, Guessing: 0.15},
	}
	responses := []bool{true, false, true}

	for _, theta := range []float64{-4, -1, 0, 1, 4} {
		nll := NegLogLikelihood(theta, responses, items)
		if math.IsNaN(nll) || math.IsInf(nll, 0) {
			t.Errorf("NegLogLikelihood(%v) = %v, want finite", theta, nll)
		}
		if nll <= 0 {
			t.Errorf("NegLogLikelihood(%v) = %v, want positive", theta, nll)
		}
	}
}

func TestNegLogLikelihoodPrefersGoodFit(t *testing.T) {
	// A correct answer to an easy item and a miss on a hard item should
	// make a middling theta more likely than an extreme one.
	items := []ItemParameters{
		{Discrimination: 1.0, Difficulty: -1.0, Guessing: 0.2},
		{Discrimination: 1.0, Difficulty: 1.0, Guessing: 0.2},
	}
	responses := []bool{true, false}

	atZero := NegLogLikelihood(0, responses, items)
	atHigh := NegLogLikelihood(3.5, responses, items)
	atLow := NegLogLikelihood(-3.5, responses, items)

	if atZero >= atHigh || atZero >= atLow {
		t.Errorf("expected minimum near 0: nll(0)=%v nll(3.5)=%v nll(-3.5)=%v", atZero, atHigh, atLow)
	}
}
