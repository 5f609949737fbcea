package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// csvHeaders returns the export column headers.
func csvHeaders() []string {
	return []string{
		"id", "latin", "common", "family", "category", "origin", "climate",
		"temp_min_c", "temp_max_c", "ideal_light", "tolerated_light", "use",
		"watering", "mbti", "care_tips",
	}
}

// plantToCSVRow converts a plant to a CSV row (matching csvHeaders order).
// List fields are joined with ";".
func plantToCSVRow(p *pkgcatalog.Plant) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Latin,
		strings.Join(p.Common, ";"),
		p.Family,
		p.Category,
		p.Origin,
		p.Climate,
		celsius(p.TempMin),
		celsius(p.TempMax),
		p.IdealLight,
		p.ToleratedLight,
		strings.Join(p.Use, ";"),
		WateringText(p),
		p.MBTI.Type,
		strings.Join(p.CareTips, ";"),
	}
}

func celsius(t *pkgcatalog.Temperature) string {
	if t == nil {
		return ""
	}
	return strconv.FormatFloat(t.Celsius, 'f', -1, 64)
}

// WateringText is the human-readable watering need: the free text when set,
// else the structured frequency as "2x per week".
func WateringText(p *pkgcatalog.Plant) string {
	if strings.TrimSpace(p.Watering) != "" {
		return p.Watering
	}
	if f := p.WateringFrequency; f != nil {
		return fmt.Sprintf("%sx per %s", strconv.FormatFloat(f.Value, 'f', -1, 64), f.Period)
	}
	return ""
}

// WriteCSV writes plants as CSV with a header row.
func WriteCSV(w io.Writer, plants []pkgcatalog.Plant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range plants {
		if err := cw.Write(plantToCSVRow(&plants[i])); err != nil {
			return fmt.Errorf("write csv row for plant %d: %w", plants[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
