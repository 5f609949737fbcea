package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_Embedded(t *testing.T) {
	plants, err := NewCatalog().Plants()
	require.NoError(t, err)
	require.NotEmpty(t, plants)

	for i := range plants {
		assert.NotEmpty(t, plants[i].Latin, "plant %d has no latin name", plants[i].ID)
		assert.NotEmpty(t, plants[i].Image, "plant %d has no image", plants[i].ID)
	}
}

func TestNewCatalog_MBTIShapes(t *testing.T) {
	cat := NewCatalog()

	// Object form {type, notes}.
	monstera, err := cat.ByID(2)
	require.NoError(t, err)
	assert.Equal(t, "INFJ", monstera.MBTI.Type)
	assert.NotEmpty(t, monstera.MBTI.Notes)

	// Bare string form.
	pothos, err := cat.ByID(3)
	require.NoError(t, err)
	assert.Equal(t, "ENFP", pothos.MBTI.Type)
	assert.Empty(t, pothos.MBTI.Notes)
}

func TestNewCatalog_ScalarUseBecomesList(t *testing.T) {
	zz, err := NewCatalog().ByID(4)
	require.NoError(t, err)
	assert.Equal(t, Tags{"Table top"}, zz.Use)
}

func TestCatalog_PlantsReturnsCopy(t *testing.T) {
	cat := NewCatalog()
	first, err := cat.Plants()
	require.NoError(t, err)
	first[0].Latin = "mutated"

	second, err := cat.Plants()
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Latin)
}

func TestCatalog_ByIDNotFound(t *testing.T) {
	_, err := NewCatalog().ByID(99999)
	assert.True(t, errors.Is(err, ErrPlantNotFound), "err = %v", err)
}

func TestParse_JSONArray(t *testing.T) {
	data := []byte(`[
		{"id": 1, "latin": "Monstera deliciosa", "common": "Monstera",
		 "mbti": {"type": "INFJ", "notes": "quiet"}, "use": ["Floor plant"]},
		{"id": 2, "latin": "Aloe vera", "mbti": "ISTP", "use": "Table top",
		 "watering_frequency": {"value": 1, "period": "month"}}
	]`)

	plants, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	require.Len(t, plants, 2)

	assert.Equal(t, Tags{"Monstera"}, plants[0].Common)
	assert.Equal(t, "INFJ", plants[0].MBTI.Type)
	assert.Equal(t, "ISTP", plants[1].MBTI.Type)
	assert.Equal(t, Tags{"Table top"}, plants[1].Use)
	require.NotNil(t, plants[1].WateringFrequency)
	assert.Equal(t, PeriodMonth, plants[1].WateringFrequency.Period)
	assert.Equal(t, "/images/plants/2.jpg", plants[1].Image)
}

func TestParse_JSONObject(t *testing.T) {
	data := []byte(`{"plants": [{"id": 7, "latin": "Ficus lyrata", "image": "/custom.png"}]}`)

	plants, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "/custom.png", plants[0].Image)
}

func TestParse_YAMLSequence(t *testing.T) {
	data := []byte(`
- id: 1
  latin: Aloe vera
  mbti:
    type: ISTP
- id: 2
  latin: Ficus lyrata
  mbti: null
`)
	plants, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, "ISTP", plants[0].MBTI.Type)
	assert.True(t, plants[1].MBTI.IsZero())
}

func TestParse_MalformedMBTIShape(t *testing.T) {
	data := []byte(`[{"id": 1, "latin": "Aloe vera", "mbti": 42},
		{"id": 2, "latin": "Ficus lyrata", "mbti": ["INFJ"]}]`)

	plants, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, plants[0].MBTI.Type)
	assert.Empty(t, plants[1].MBTI.Type)
}

func TestParse_MalformedMBTIShapeYAML(t *testing.T) {
	data := []byte(`- id: 1
  latin: Aloe vera
  mbti: 1234
- id: 2
  latin: Ficus lyrata
  mbti: true
- id: 3
  latin: Crassula ovata
  mbti: {type: 42, notes: steady}
- id: 4
  latin: Pilea peperomioides
  mbti: "1234"
`)

	plants, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, plants[0].MBTI.Type)
	assert.Empty(t, plants[1].MBTI.Type)
	assert.Empty(t, plants[2].MBTI.Type)
	assert.Equal(t, "steady", plants[2].MBTI.Notes)
	// Quoted scalars are strings.
	assert.Equal(t, "1234", plants[3].MBTI.Type)

	jsonPlants, err := Parse([]byte(`[{"id": 1, "latin": "Aloe vera", "mbti": 1234}]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, jsonPlants[0].MBTI.Type, plants[0].MBTI.Type)
}

func TestParse_IntegrityViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing latin", `[{"id": 1}]`},
		{"duplicate id", `[{"id": 1, "latin": "A"}, {"id": 1, "latin": "B"}]`},
		{"duplicate latin", `[{"id": 1, "latin": "A"}, {"id": 2, "latin": "A"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParse_InvalidSyntax(t *testing.T) {
	_, err := Parse([]byte(`[{"id": `), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("plants: [\n  - id: ["), FormatYAML)
	assert.Error(t, err)
}

func TestNewCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plants.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 5, "latin": "Aloe vera"}]`), 0o600))

	plants, err := NewCatalogFromFile(path).Plants()
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, 5, plants[0].ID)
}

func TestNewCatalogFromFile_Missing(t *testing.T) {
	_, err := NewCatalogFromFile(filepath.Join(t.TempDir(), "nope.yaml")).Plants()
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("data/PlantsData.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("catalog.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("catalog"))
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		plant Plant
		want  string
	}{
		{"second common name", Plant{Latin: "X", Common: Tags{"a", "b"}}, "b"},
		{"only first", Plant{Latin: "X", Common: Tags{"a"}}, "a"},
		{"latin fallback", Plant{Latin: "X"}, "X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plant.DisplayName())
		})
	}
}
