package irt

import "math"

const (
	// invPhi is 1/phi, the golden-section reduction ratio.
	invPhi = 0.6180339887498949

	defaultTolerance = 1e-7
	defaultMaxIter   = 200
)

// Estimator finds the proficiency value that maximizes the likelihood of
// an observed response pattern. It is a pure value: identical inputs
// always produce bit-identical estimates, and independent estimations may
// run concurrently.
type Estimator struct {
	scale     Scale
	tolerance float64
	maxIter   int
}

// NewEstimator returns an estimator searching over the given scale's
// theta bounds.
func NewEstimator(scale Scale) *Estimator {
	return &Estimator{
		scale:     scale,
		tolerance: defaultTolerance,
		maxIter:   defaultMaxIter,
	}
}

// Scale returns the scale the estimator searches and reports on.
func (e *Estimator) Scale() Scale {
	return e.scale
}

// ValidateItems checks the 3PL preconditions for every item and the
// alignment between responses and items.
func ValidateItems(responses []bool, items []ItemParameters) error {
	if len(items) == 0 {
		return &InvalidItemError{Index: -1, Reason: "empty item list"}
	}
	if len(responses) != len(items) {
		return &InvalidItemError{Index: -1, Reason: "responses and items have different lengths"}
	}
	for i, item := range items {
		if item.Discrimination <= 0 {
			return &InvalidItemError{Index: i, Reason: "discrimination (a) must be positive"}
		}
		if item.Guessing < 0 || item.Guessing >= 1 {
			return &InvalidItemError{Index: i, Reason: "guessing (c) must be in [0, 1)"}
		}
	}
	return nil
}

// Estimate returns the maximum-likelihood proficiency for the response
// pattern, within the scale's theta bounds.
//
// An all-correct or all-incorrect pattern fails with
// ErrDegenerateResponses before the search runs. A search that exceeds
// its iteration budget fails with a NonConvergenceError; no best-effort
// value is returned.
func (e *Estimator) Estimate(responses []bool, items []ItemParameters) (float64, error) {
	if err := ValidateItems(responses, items); err != nil {
		return 0, err
	}

	allCorrect, allIncorrect := true, true
	for _, correct := range responses {
		if correct {
			allIncorrect = false
		} else {
			allCorrect = false
		}
	}
	if allCorrect || allIncorrect {
		return 0, ErrDegenerateResponses
	}

	objective := func(theta float64) float64 {
		return NegLogLikelihood(theta, responses, items)
	}

	theta, err := e.goldenSection(objective)
	if err != nil {
		return 0, err
	}
	return clamp(theta, e.scale.ThetaMin, e.scale.ThetaMax), nil
}

// goldenSection minimizes the objective over [ThetaMin, ThetaMax].
// The objective is smooth and, for a non-degenerate pattern, unimodal
// over the bounded domain, so bracket shrinking converges to the
// minimizer.
func (e *Estimator) goldenSection(objective func(float64) float64) (float64, error) {
	lo, hi := e.scale.ThetaMin, e.scale.ThetaMax

	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1 := objective(x1)
	f2 := objective(x2)

	for iter := 0; hi-lo > e.tolerance; iter++ {
		if iter >= e.maxIter {
			return 0, &NonConvergenceError{Iterations: iter, BracketWidth: hi - lo}
		}
		if f1 < f2 {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = objective(x1)
		} else {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = objective(x2)
		}
	}

	return (lo + hi) / 2, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
