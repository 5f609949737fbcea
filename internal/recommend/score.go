package recommend

import (
	"strings"

	"github.com/HerbHall/plantmatch/pkg/catalog"
)

// Factor names reported in ScoredPlant.MatchedFactors, in evaluation order.
const (
	FactorClimate        = "climate"
	FactorIdealLight     = "ideal light"
	FactorToleratedLight = "tolerated light"
	FactorAesthetic      = "aesthetic"
	FactorWatering       = "watering"
	FactorMBTI           = "mbti"
)

// ScoredPlant is a catalog plant annotated with its match result for one
// request. It is a view and is never persisted.
type ScoredPlant struct {
	catalog.Plant

	Score           float64  `json:"score"`
	NormalizedScore float64  `json:"normalized_score"`
	MBTIMatch       bool     `json:"mbti_match"`
	MatchedFactors  []string `json:"matched_factors"`
	HasActiveFilter bool     `json:"has_active_filter"`
}

// Percent returns the normalized score as a percentage in [0, 100].
func (s *ScoredPlant) Percent() float64 {
	return s.NormalizedScore * 100
}

// Score scores every plant against f using DefaultWeights. The result is in
// catalog order; use Rank or Recommend for the presentation order.
func Score(plants []catalog.Plant, f Filter) []ScoredPlant {
	return ScoreWith(plants, f, DefaultWeights())
}

// ScoreWith scores every plant against f using the given weights.
func ScoreWith(plants []catalog.Plant, f Filter, w Weights) []ScoredPlant {
	nf := f.Normalize()
	activeMax := w.ActiveMax(nf)

	out := make([]ScoredPlant, len(plants))
	for i := range plants {
		out[i] = scoreOne(&plants[i], nf, w, activeMax)
	}
	return out
}

// Recommend scores and ranks plants against f.
func Recommend(plants []catalog.Plant, f Filter) []ScoredPlant {
	return Rank(Score(plants, f))
}

func scoreOne(p *catalog.Plant, f Filter, w Weights, activeMax float64) ScoredPlant {
	sp := ScoredPlant{
		Plant:           *p,
		MatchedFactors:  []string{},
		HasActiveFilter: activeMax > 0,
	}
	award := func(points float64, factor string) {
		sp.Score += points
		sp.MatchedFactors = append(sp.MatchedFactors, factor)
	}

	if f.Climate != "" && contains(p.Climate, f.Climate) {
		award(w.Climate, FactorClimate)
	}

	if f.Light != "" {
		switch {
		case contains(p.IdealLight, f.Light):
			award(w.LightIdeal, FactorIdealLight)
		case contains(p.ToleratedLight, f.Light):
			award(w.LightTolerated, FactorToleratedLight)
		}
	}

	if f.Aesthetic != "" && anyContains(p.Use, f.Aesthetic) {
		award(w.Aesthetic, FactorAesthetic)
	}

	if f.Watering != "" && contains(wateringText(p), f.Watering) {
		award(w.Watering, FactorWatering)
	}

	if f.MBTI != "" && p.MBTI.Normalized() == f.MBTI {
		award(w.MBTI, FactorMBTI)
		sp.MBTIMatch = true
	}

	if activeMax > 0 {
		sp.NormalizedScore = sp.Score / activeMax
	} else {
		sp.NormalizedScore = 1
	}
	return sp
}

// wateringText is the text the watering filter is matched against: the
// free-text description, or a coarse label derived from the structured
// frequency when the description is empty.
func wateringText(p *catalog.Plant) string {
	if strings.TrimSpace(p.Watering) != "" {
		return p.Watering
	}
	if p.WateringFrequency == nil {
		return ""
	}
	return WateringLabel(p.WateringFrequency.Value)
}

// WateringLabel maps a waterings-per-period count onto the coarse labels
// used by the watering filter.
func WateringLabel(value float64) string {
	switch {
	case value >= 3:
		return "frequent"
	case value == 2:
		return "moderate"
	default:
		return "light"
	}
}

// contains reports whether text contains the already-lowercased needle,
// ignoring case in text.
func contains(text, needle string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), needle)
}

func anyContains(tags catalog.Tags, needle string) bool {
	for _, t := range tags {
		if contains(t, needle) {
			return true
		}
	}
	return false
}
