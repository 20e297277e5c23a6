package irt

import (
	"math"
	"testing"
)

func TestToScoreDefaultScale(t *testing.T) {
	s := DefaultScale()

	tests := []struct {
		theta float64
		want  float64
	}{
		{0, 500},
		{1, 600},
		{-1, 400},
		{-4, 100},
		{4, 900},
		{0.5, 550},
	}

	for _, tt := range tests {
		got := s.ToScore(tt.theta)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ToScore(%v) = %v, want %v", tt.theta, got, tt.want)
		}
	}
}

func TestToScoreAlternateScale(t *testing.T) {
	// A TOEFL-style scale substituted without touching the algorithm.
	s := Scale{ThetaMean: 0, ThetaSD: 1, ScoreMean: 300, ScoreSD: 25, ThetaMin: -4, ThetaMax: 4}

	if got := s.ToScore(0); got != 300 {
		t.Errorf("ToScore(0) = %v, want 300", got)
	}
	if got := s.ToScore(2); got != 350 {
		t.Errorf("ToScore(2) = %v, want 350", got)
	}
}

func TestToScoreNonUnitThetaSD(t *testing.T) {
	s := Scale{ThetaMean: 1, ThetaSD: 2, ScoreMean: 500, ScoreSD: 100, ThetaMin: -4, ThetaMax: 4}

	// One theta SD above the theta mean is one score SD above the score mean.
	if got := s.ToScore(3); math.Abs(got-600) > 1e-9 {
		t.Errorf("ToScore(3) = %v, want 600", got)
	}
}
