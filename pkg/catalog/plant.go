// Package catalog defines the plant catalog records and loads them from the
// embedded seed data or an external JSON/YAML file.
package catalog

// WateringPeriod is the unit of a structured watering frequency.
type WateringPeriod string

const (
	PeriodDay   WateringPeriod = "day"
	PeriodWeek  WateringPeriod = "week"
	PeriodMonth WateringPeriod = "month"
)

// WateringFrequency is the structured alternative to the free-text
// watering description, e.g. {value: 2, period: week}.
type WateringFrequency struct {
	Value  float64        `json:"value" yaml:"value"`
	Period WateringPeriod `json:"period" yaml:"period"`
	Notes  string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Temperature is a temperature bound in both scales.
type Temperature struct {
	Celsius    float64 `json:"celsius" yaml:"celsius"`
	Fahrenheit float64 `json:"fahrenheit" yaml:"fahrenheit"`
}

// Plant is a single catalog entry. Plants are reference data and are never
// mutated after loading.
type Plant struct {
	ID     int    `json:"id" yaml:"id"`
	Latin  string `json:"latin" yaml:"latin"`
	Family string `json:"family,omitempty" yaml:"family,omitempty"`
	Common Tags   `json:"common" yaml:"common"`

	Category string       `json:"category,omitempty" yaml:"category,omitempty"`
	Origin   string       `json:"origin,omitempty" yaml:"origin,omitempty"`
	Climate  string       `json:"climate,omitempty" yaml:"climate,omitempty"`
	TempMax  *Temperature `json:"tempmax,omitempty" yaml:"tempmax,omitempty"`
	TempMin  *Temperature `json:"tempmin,omitempty" yaml:"tempmin,omitempty"`

	IdealLight     string `json:"ideallight,omitempty" yaml:"ideallight,omitempty"`
	ToleratedLight string `json:"toleratedlight,omitempty" yaml:"toleratedlight,omitempty"`

	Use Tags `json:"use,omitempty" yaml:"use,omitempty"`

	Watering          string             `json:"watering,omitempty" yaml:"watering,omitempty"`
	WateringFrequency *WateringFrequency `json:"watering_frequency,omitempty" yaml:"watering_frequency,omitempty"`

	Insects  Tags `json:"insects,omitempty" yaml:"insects,omitempty"`
	Diseases Tags `json:"diseases,omitempty" yaml:"diseases,omitempty"`
	CareTips Tags `json:"care_tips,omitempty" yaml:"care_tips,omitempty"`

	MBTI MBTI `json:"mbti,omitempty" yaml:"mbti,omitempty"`

	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// DisplayName returns the friendliest name for the plant: the second common
// name if present, else the first, else the latin name.
func (p *Plant) DisplayName() string {
	switch {
	case len(p.Common) > 1 && p.Common[1] != "":
		return p.Common[1]
	case len(p.Common) > 0 && p.Common[0] != "":
		return p.Common[0]
	default:
		return p.Latin
	}
}
