package irt

// Scale maps the standardized proficiency scale onto a public reporting
// scale, and bounds the proficiency search. The ENEM defaults are
// theta ~ N(0, 1) reported as N(500, 100), searched over [-4, 4].
type Scale struct {
	ThetaMean float64
	ThetaSD   float64
	ScoreMean float64
	ScoreSD   float64
	ThetaMin  float64
	ThetaMax  float64
}

// DefaultScale returns the standard ENEM reporting scale.
func DefaultScale() Scale {
	return Scale{
		ThetaMean: 0,
		ThetaSD:   1,
		ScoreMean: 500,
		ScoreSD:   100,
		ThetaMin:  -4,
		ThetaMax:  4,
	}
}

// ToScore converts a proficiency estimate to the reporting scale.
// It is total over all finite theta and has no failure modes of its own;
// estimation failures must be propagated by the caller instead of
// calling ToScore.
func (s Scale) ToScore(theta float64) float64 {
	return s.ScoreMean + (theta-s.ThetaMean)*(s.ScoreSD/s.ThetaSD)
}
