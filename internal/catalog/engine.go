// Package catalog serves the plant catalog and recommendation results over
// HTTP. Engine adapts the pure recommend package to the catalog source;
// Handler maps it onto the JSON API.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/HerbHall/plantmatch/internal/recommend"
	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// Unset is the select-widget value meaning "no preference".
const Unset = "-"

// WateringChoices are the fixed watering dropdown options.
var WateringChoices = []string{Unset, "Light", "Moderate", "Frequent"}

// Result is one recommendation response.
type Result struct {
	HasActiveFilter bool                    `json:"has_active_filter"`
	Count           int                     `json:"count"`
	Plants          []recommend.ScoredPlant `json:"plants"`
	Groups          *recommend.Groups       `json:"groups,omitempty"`
}

// FilterOptions are the dropdown values offered for each filter field,
// each list starting with Unset.
type FilterOptions struct {
	Light     []string `json:"light"`
	Climate   []string `json:"climate"`
	Aesthetic []string `json:"aesthetic"`
	Watering  []string `json:"watering"`
	MBTI      []string `json:"mbti"`
}

// Engine scores the catalog against user filters.
type Engine struct {
	cat     *pkgcatalog.Catalog
	weights recommend.Weights
}

// NewEngine creates a new recommendation engine backed by the given catalog.
func NewEngine(cat *pkgcatalog.Catalog) *Engine {
	return &Engine{cat: cat, weights: recommend.DefaultWeights()}
}

// Catalog returns the underlying catalog.
func (e *Engine) Catalog() *pkgcatalog.Catalog {
	return e.cat
}

// Recommend scores, ranks and filters the catalog. Zero-score plants are
// hidden and the result is grouped only when f has an active field. A
// non-empty query further narrows the ranked list without reordering it.
func (e *Engine) Recommend(f recommend.Filter, query string) (Result, error) {
	plants, err := e.cat.Plants()
	if err != nil {
		return Result{}, err
	}

	ranked := recommend.Rank(recommend.ScoreWith(plants, f, e.weights))
	visible := Search(recommend.Visible(ranked), query)

	res := Result{
		HasActiveFilter: f.Active(),
		Count:           len(visible),
		Plants:          visible,
	}
	if res.HasActiveFilter {
		g := recommend.Group(visible)
		res.Groups = &g
	}
	return res, nil
}

// Search keeps the plants whose latin name, common names, category,
// climate or use tags contain query, ignoring case. Order is preserved.
func Search(plants []recommend.ScoredPlant, query string) []recommend.ScoredPlant {
	q := recommend.Clean(query)
	if q == "" {
		return plants
	}
	out := make([]recommend.ScoredPlant, 0, len(plants))
	for i := range plants {
		if matchesQuery(&plants[i].Plant, q) {
			out = append(out, plants[i])
		}
	}
	return out
}

func matchesQuery(p *pkgcatalog.Plant, q string) bool {
	fields := []string{p.Latin, p.Category, p.Climate}
	fields = append(fields, p.Common...)
	fields = append(fields, p.Use...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Plant returns a single plant.
func (e *Engine) Plant(id int) (pkgcatalog.Plant, error) {
	return e.cat.ByID(id)
}

// Plants returns the whole catalog.
func (e *Engine) Plants() ([]pkgcatalog.Plant, error) {
	return e.cat.Plants()
}

// Select returns the plants with the given ids in request order, skipping
// repeats. Any unknown id fails the whole call.
func (e *Engine) Select(ids []int) ([]pkgcatalog.Plant, error) {
	out := make([]pkgcatalog.Plant, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, err := e.cat.ByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Options derives the dropdown values from the catalog: light combines
// ideal and tolerated light ("/" placeholders skipped), aesthetic lists
// every use tag, watering is fixed.
func (e *Engine) Options() (FilterOptions, error) {
	plants, err := e.cat.Plants()
	if err != nil {
		return FilterOptions{}, err
	}

	light := map[string]bool{}
	climate := map[string]bool{}
	aesthetic := map[string]bool{}
	mbti := map[string]bool{}
	for i := range plants {
		p := &plants[i]
		addOption(light, p.IdealLight)
		addOption(light, p.ToleratedLight)
		addOption(climate, p.Climate)
		for _, u := range p.Use {
			addOption(aesthetic, u)
		}
		addOption(mbti, p.MBTI.Type)
	}

	return FilterOptions{
		Light:     sortedOptions(light),
		Climate:   sortedOptions(climate),
		Aesthetic: sortedOptions(aesthetic),
		Watering:  slices.Clone(WateringChoices),
		MBTI:      sortedOptions(mbti),
	}, nil
}

func addOption(set map[string]bool, v string) {
	v = strings.TrimSpace(v)
	if v == "" || v == "/" {
		return
	}
	set[v] = true
}

func sortedOptions(set map[string]bool) []string {
	vals := make([]string, 0, len(set))
	for v := range set {
		vals = append(vals, v)
	}
	col := collate.New(language.Und)
	slices.SortFunc(vals, func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return append([]string{Unset}, vals...)
}

// FilterFromValues builds a Filter from raw widget values, treating Unset
// as absent.
func FilterFromValues(light, climate, aesthetic, watering, mbti string) recommend.Filter {
	return recommend.Filter{
		Light:     unsetToEmpty(light),
		Climate:   unsetToEmpty(climate),
		Aesthetic: unsetToEmpty(aesthetic),
		Watering:  unsetToEmpty(watering),
		MBTI:      unsetToEmpty(mbti),
	}
}

func unsetToEmpty(v string) string {
	if strings.TrimSpace(v) == Unset {
		return ""
	}
	return v
}

// ActiveFields names the filter fields that take part in scoring.
func ActiveFields(f recommend.Filter) []string {
	n := f.Normalize()
	var out []string
	for _, kv := range []struct{ name, val string }{
		{"light", n.Light},
		{"climate", n.Climate},
		{"aesthetic", n.Aesthetic},
		{"watering", n.Watering},
		{"mbti", n.MBTI},
	} {
		if kv.val != "" {
			out = append(out, kv.name)
		}
	}
	return out
}

// IsNotFound reports whether err means the plant does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pkgcatalog.ErrPlantNotFound)
}

// ParseIDs parses a comma-separated id list such as "1,2,3".
func ParseIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid plant id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
