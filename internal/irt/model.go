package irt

import "math"

// logisticD approximates the normal ogive with the logistic curve.
const logisticD = 1.7

// logEpsilon keeps the likelihood logs away from log(0) at extreme
// probabilities.
const logEpsilon = 1e-9

// ItemParameters holds the pre-calibrated 3PL parameters of a single item.
// Discrimination must be positive and Guessing must lie in [0, 1);
// Difficulty is unconstrained.
type ItemParameters struct {
	Discrimination float64 // a
	Difficulty     float64 // b
	Guessing       float64 // c
}

// ProbCorrect returns the probability that an examinee with the given
// proficiency (theta) answers the item correctly, under the 3-Parameter
// Logistic model. The result lies in [Guessing, 1) and is strictly
// increasing in theta. Inputs are assumed valid; see ValidateItems.
func ProbCorrect(theta float64, item ItemParameters) float64 {
	exponent := -logisticD * item.Discrimination * (theta - item.Difficulty)
	return item.Guessing + (1-item.Guessing)/(1+math.Exp(exponent))
}

// NegLogLikelihood returns the negative log-likelihood of the observed
// response pattern at the given theta. Minimizing it is equivalent to
// maximizing the likelihood. responses and items must be index-aligned.
func NegLogLikelihood(theta float64, responses []bool, items []ItemParameters) float64 {
	logLikelihood := 0.0
	for i, correct := range responses {
		p := ProbCorrect(theta, items[i])
		if correct {
			logLikelihood += math.Log(p + logEpsilon)
		} else {
			logLikelihood += math.Log(1 - p + logEpsilon)
		}
	}
	return -logLikelihood
}
