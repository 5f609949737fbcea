package recommend

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rank orders plants best first: normalized score descending, then raw
// score descending, then latin name ascending. The latin comparison is
// locale-aware with a byte-wise fallback, so distinct latin names never
// compare equal. MBTI matches get no priority beyond their weight.
//
// Rank sorts in place and returns its argument.
func Rank(plants []ScoredPlant) []ScoredPlant {
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.Und)

	slices.SortStableFunc(plants, func(a, b ScoredPlant) int {
		if c := cmp.Compare(b.NormalizedScore, a.NormalizedScore); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := col.CompareString(a.Latin, b.Latin); c != 0 {
			return c
		}
		return strings.Compare(a.Latin, b.Latin)
	})
	return plants
}
