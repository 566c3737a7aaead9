package model

// CompatibilityResult is backend-computed compatibility content for a pair
// of profiles. Aspect scores arrive on a 0-10 scale; display normalization
// happens client-side via NormalizedScore so the stored reading keeps the
// raw values intact.
type CompatibilityResult struct {
	// ProfileA and ProfileB name the two compared profiles.
	ProfileA string `json:"profile_a"`
	ProfileB string `json:"profile_b"`

	// AspectScores maps an aspect (emotional, intellectual, physical, ...)
	// to its raw 0-10 score.
	AspectScores map[string]float64 `json:"aspect_scores,omitempty"`

	// Average is the backend-computed mean of the aspect scores.
	Average float64 `json:"average"`

	// Summary is the backend's explanation of the result.
	Summary string `json:"summary,omitempty"`
}

// NormalizedScore converts the raw average to the 0-100 display scale.
// The raw average is multiplied by 10 and clamped to [0, 100] so that a
// backend returning slightly out-of-range values never produces an
// impossible percentage.
func (c *CompatibilityResult) NormalizedScore() int {
	score := c.Average * 10
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
