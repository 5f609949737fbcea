package recommend

import "fmt"

// Band identifies one of the fixed percentage buckets.
type Band string

const (
	BandPerfect    Band = "perfect"
	BandGreat      Band = "great"
	BandGood       Band = "good"
	BandAcceptable Band = "acceptable"
	BandPoor       Band = "poor"
)

// BandMeta is the display metadata for a band together with the bounds
// Group uses to assign plants to it.
type BandMeta struct {
	Key          Band    `json:"key"`
	Label        string  `json:"label"`
	Emoji        string  `json:"emoji"`
	Color        string  `json:"color"`
	Description  string  `json:"description"`
	Range        string  `json:"range"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	MinInclusive bool    `json:"min_inclusive"`
	MaxInclusive bool    `json:"max_inclusive"`
}

// contains reports whether pct (0-100) falls inside the band.
func (m *BandMeta) contains(pct float64) bool {
	if pct < m.Min || (pct == m.Min && !m.MinInclusive) {
		return false
	}
	if pct > m.Max || (pct == m.Max && !m.MaxInclusive) {
		return false
	}
	return true
}

var bands = []BandMeta{
	{
		Key: BandPerfect, Label: "Perfect Match", Emoji: "🌟", Color: "emerald",
		Description: "These plants match almost everything you asked for.",
		Min:         80, Max: 100, MinInclusive: true, MaxInclusive: true,
	},
	{
		Key: BandGreat, Label: "Great Match", Emoji: "✨", Color: "green",
		Description: "Strong candidates that miss only a minor preference.",
		Min:         60, Max: 80, MinInclusive: true,
	},
	{
		Key: BandGood, Label: "Good Match", Emoji: "👍", Color: "blue",
		Description: "Solid options that meet about half of your preferences.",
		Min:         40, Max: 60, MinInclusive: true,
	},
	{
		Key: BandAcceptable, Label: "Acceptable", Emoji: "🌱", Color: "yellow",
		Description: "Could work with some extra care or compromise.",
		Min:         20, Max: 40, MinInclusive: true,
	},
	{
		Key: BandPoor, Label: "Low Match", Emoji: "🍂", Color: "gray",
		Description: "Only a small part of your preferences is met.",
		Min:         0, Max: 20,
	},
}

func init() {
	for i := range bands {
		bands[i].Range = rangeText(&bands[i])
	}
}

func rangeText(m *BandMeta) string {
	open, closing := "(", ")"
	if m.MinInclusive {
		open = "["
	}
	if m.MaxInclusive {
		closing = "]"
	}
	return fmt.Sprintf("%s%g%%, %g%%%s", open, m.Min, m.Max, closing)
}

// Bands returns the metadata of all bands, best first.
func Bands() []BandMeta {
	out := make([]BandMeta, len(bands))
	copy(out, bands)
	return out
}

// BandInfo returns the metadata for a single band.
func BandInfo(b Band) (BandMeta, bool) {
	for i := range bands {
		if bands[i].Key == b {
			return bands[i], true
		}
	}
	return BandMeta{}, false
}

// BandFor returns the band a normalized score falls into. Scores of zero or
// below belong to no band.
func BandFor(normalizedScore float64) (Band, bool) {
	pct := normalizedScore * 100
	for i := range bands {
		if bands[i].contains(pct) {
			return bands[i].Key, true
		}
	}
	return "", false
}

// Groups is a ranked list partitioned into bands. Every band is present,
// possibly empty.
type Groups struct {
	Perfect    []ScoredPlant `json:"perfect"`
	Great      []ScoredPlant `json:"great"`
	Good       []ScoredPlant `json:"good"`
	Acceptable []ScoredPlant `json:"acceptable"`
	Poor       []ScoredPlant `json:"poor"`
}

// Get returns the members of band b.
func (g *Groups) Get(b Band) []ScoredPlant {
	if p := g.slot(b); p != nil {
		return *p
	}
	return nil
}

// Len returns the number of grouped plants.
func (g *Groups) Len() int {
	return len(g.Perfect) + len(g.Great) + len(g.Good) + len(g.Acceptable) + len(g.Poor)
}

func (g *Groups) slot(b Band) *[]ScoredPlant {
	switch b {
	case BandPerfect:
		return &g.Perfect
	case BandGreat:
		return &g.Great
	case BandGood:
		return &g.Good
	case BandAcceptable:
		return &g.Acceptable
	case BandPoor:
		return &g.Poor
	}
	return nil
}

// Group partitions a ranked list into bands, preserving order within each
// band. Plants with a zero normalized score are left out.
func Group(ranked []ScoredPlant) Groups {
	g := Groups{
		Perfect:    []ScoredPlant{},
		Great:      []ScoredPlant{},
		Good:       []ScoredPlant{},
		Acceptable: []ScoredPlant{},
		Poor:       []ScoredPlant{},
	}
	for i := range ranked {
		b, ok := BandFor(ranked[i].NormalizedScore)
		if !ok {
			continue
		}
		s := g.slot(b)
		*s = append(*s, ranked[i])
	}
	return g
}

// Visible returns the plants to display for a ranked list: zero-score plants
// are hidden when the request had an active filter and kept otherwise.
func Visible(ranked []ScoredPlant) []ScoredPlant {
	out := make([]ScoredPlant, 0, len(ranked))
	for i := range ranked {
		if ranked[i].HasActiveFilter && ranked[i].NormalizedScore <= 0 {
			continue
		}
		out = append(out, ranked[i])
	}
	return out
}
