package recommend

// Weights assigns points to each matching factor. A Weights value is never
// mutated by the engine; pass an alternative to ScoreWith to evaluate a
// different scheme.
type Weights struct {
	Climate        float64 `json:"climate"`
	LightIdeal     float64 `json:"light_ideal"`
	LightTolerated float64 `json:"light_tolerated"`
	Aesthetic      float64 `json:"aesthetic"`
	Watering       float64 `json:"watering"`
	MBTI           float64 `json:"mbti"`
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		Climate:        3,
		LightIdeal:     2,
		LightTolerated: 1,
		Aesthetic:      1,
		Watering:       1,
		MBTI:           3,
	}
}

// ActiveMax is the highest raw score reachable under the normalized filter
// f. Light contributes only its larger tier since a plant can earn one tier
// at most.
func (w Weights) ActiveMax(f Filter) float64 {
	var total float64
	if f.Climate != "" {
		total += w.Climate
	}
	if f.Light != "" {
		total += max(w.LightIdeal, w.LightTolerated)
	}
	if f.Aesthetic != "" {
		total += w.Aesthetic
	}
	if f.Watering != "" {
		total += w.Watering
	}
	if f.MBTI != "" {
		total += w.MBTI
	}
	return total
}
