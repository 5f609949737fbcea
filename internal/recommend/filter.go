// Package recommend scores catalog plants against a user filter, ranks them
// and buckets the ranked list into fixed percentage bands. Everything here
// is pure and safe for concurrent use.
package recommend

import "strings"

// Filter is the set of user-chosen constraints for one request. Empty
// fields impose no constraint.
type Filter struct {
	Light     string `json:"light,omitempty"`
	Climate   string `json:"climate,omitempty"`
	Aesthetic string `json:"aesthetic,omitempty"`
	Watering  string `json:"watering,omitempty"`
	MBTI      string `json:"mbti,omitempty"`

	// Category is accepted for compatibility with older callers and is
	// ignored by scoring.
	Category string `json:"category,omitempty"`
}

// Clean returns the trimmed, lowercased value, or "" when nothing but
// whitespace remains.
func Clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalize returns the canonical comparison form of f. Category is
// dropped.
func (f Filter) Normalize() Filter {
	return Filter{
		Light:     Clean(f.Light),
		Climate:   Clean(f.Climate),
		Aesthetic: Clean(f.Aesthetic),
		Watering:  Clean(f.Watering),
		MBTI:      Clean(f.MBTI),
	}
}

// Active reports whether any matchable field is set after normalization.
func (f Filter) Active() bool {
	n := f.Normalize()
	return n.Light != "" || n.Climate != "" || n.Aesthetic != "" || n.Watering != "" || n.MBTI != ""
}
