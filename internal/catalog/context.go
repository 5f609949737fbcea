package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// WriteContext writes the flat catalog summary used to ground the chat
// assistant, one line per plant.
func WriteContext(w io.Writer, plants []pkgcatalog.Plant) error {
	for i := range plants {
		if _, err := io.WriteString(w, contextLine(&plants[i])+"\n"); err != nil {
			return fmt.Errorf("write context: %w", err)
		}
	}
	return nil
}

// ContextText returns WriteContext output as a string.
func ContextText(plants []pkgcatalog.Plant) string {
	var b strings.Builder
	_ = WriteContext(&b, plants)
	return b.String()
}

func contextLine(p *pkgcatalog.Plant) string {
	parts := []string{
		"#" + strconv.Itoa(p.ID),
		orDash(strings.Join(p.Common, ", ")),
		"latin: " + p.Latin,
		"category: " + orDash(p.Category),
		"light: " + orDash(lightText(p)),
		"climate: " + orDash(p.Climate),
		"temperature: " + orDash(temperatureRange(p)),
		"watering: " + orDash(WateringText(p)),
	}
	return strings.Join(parts, " | ")
}

func lightText(p *pkgcatalog.Plant) string {
	ideal := strings.TrimSpace(p.IdealLight)
	tolerated := strings.TrimSpace(p.ToleratedLight)
	if tolerated == "" || tolerated == "/" {
		return ideal
	}
	if ideal == "" {
		return "tolerates " + tolerated
	}
	return ideal + " (tolerates " + tolerated + ")"
}

func temperatureRange(p *pkgcatalog.Plant) string {
	switch {
	case p.TempMin != nil && p.TempMax != nil:
		return celsius(p.TempMin) + "-" + celsius(p.TempMax) + "°C"
	case p.TempMin != nil:
		return "min " + celsius(p.TempMin) + "°C"
	case p.TempMax != nil:
		return "max " + celsius(p.TempMax) + "°C"
	}
	return ""
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unset
	}
	return s
}
