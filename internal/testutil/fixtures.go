package testutil

import "github.com/HerbHall/plantmatch/pkg/catalog"

// NewPlant returns a Plant with sensible defaults, suitable for test
// fixtures. Override individual fields with options.
func NewPlant(opts ...func(*catalog.Plant)) catalog.Plant {
	p := catalog.Plant{
		ID:             1,
		Latin:          "Testus plantus",
		Family:         "Testaceae",
		Common:         catalog.Tags{"Test plant"},
		Category:       "Foliage",
		Climate:        "Tropical",
		IdealLight:     "Bright indirect light",
		ToleratedLight: "Partial shade",
		Use:            catalog.Tags{"Table top"},
		Watering:       "Moderate",
		MBTI:           catalog.MBTI{Type: "INFJ"},
		Image:          "/images/plants/1.jpg",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithID sets the plant id.
func WithID(id int) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.ID = id }
}

// WithLatin sets the latin name.
func WithLatin(latin string) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.Latin = latin }
}

// WithCommon sets the common names.
func WithCommon(names ...string) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.Common = names }
}

// WithClimate sets the climate text.
func WithClimate(c string) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.Climate = c }
}

// WithLight sets the ideal and tolerated light text.
func WithLight(ideal, tolerated string) func(*catalog.Plant) {
	return func(p *catalog.Plant) {
		p.IdealLight = ideal
		p.ToleratedLight = tolerated
	}
}

// WithUse sets the aesthetic use tags.
func WithUse(tags ...string) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.Use = tags }
}

// WithWatering sets the watering text.
func WithWatering(w string) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.Watering = w }
}

// WithMBTI sets the MBTI type.
func WithMBTI(t string) func(*catalog.Plant) {
	return func(p *catalog.Plant) { p.MBTI = catalog.MBTI{Type: t} }
}
