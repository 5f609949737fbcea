package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogRawData []byte

var (
	// ErrInvalidCatalog is returned when catalog data violates the identity
	// contract (missing latin name, duplicate id or latin name).
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrPlantNotFound is returned by ByID for unknown ids.
	ErrPlantNotFound = errors.New("plant not found")
)

// catalogFile is the top-level structure of an object-shaped catalog file.
type catalogFile struct {
	Plants []Plant `json:"plants" yaml:"plants"`
}

// Catalog provides lazy-loaded access to the plant catalog.
type Catalog struct {
	once   sync.Once
	load   func() ([]Plant, error)
	plants []Plant
	index  map[int]int
	err    error
}

// NewCatalog creates a Catalog that will parse the embedded seed data on
// first access.
func NewCatalog() *Catalog {
	return &Catalog{load: func() ([]Plant, error) {
		return Parse(catalogRawData, FormatYAML)
	}}
}

// NewCatalogFromFile creates a Catalog backed by a JSON or YAML file. The
// format is chosen by file extension; anything other than .json is YAML.
func NewCatalogFromFile(path string) *Catalog {
	return &Catalog{load: func() ([]Plant, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %q: %w", path, err)
		}
		return Parse(data, FormatForPath(path))
	}}
}

// NewCatalogFromPlants wraps an already-decoded plant list. The list is
// validated on first access like any other source.
func NewCatalogFromPlants(plants []Plant) *Catalog {
	cp := make([]Plant, len(plants))
	copy(cp, plants)
	return &Catalog{load: func() ([]Plant, error) {
		if err := Validate(cp); err != nil {
			return nil, err
		}
		return cp, nil
	}}
}

// Plants returns a copy of all catalog entries in source order.
func (c *Catalog) Plants() ([]Plant, error) {
	c.once.Do(c.doLoad)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]Plant, len(c.plants))
	copy(cp, c.plants)
	return cp, nil
}

// ByID returns the plant with the given id.
func (c *Catalog) ByID(id int) (Plant, error) {
	c.once.Do(c.doLoad)
	if c.err != nil {
		return Plant{}, c.err
	}
	i, ok := c.index[id]
	if !ok {
		return Plant{}, fmt.Errorf("plant %d: %w", id, ErrPlantNotFound)
	}
	return c.plants[i], nil
}

func (c *Catalog) doLoad() {
	plants, err := c.load()
	if err != nil {
		c.err = err
		return
	}
	c.plants = plants
	c.index = make(map[int]int, len(plants))
	for i := range plants {
		c.index[plants[i].ID] = i
	}
}

// Format identifies a catalog encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatForPath picks the decoder for a catalog file path.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes catalog data. Both a bare list of plants and an object with
// a "plants" key are accepted. Decoded plants are validated and get the
// default image path when none is set.
func Parse(data []byte, format Format) ([]Plant, error) {
	var plants []Plant
	var err error
	switch format {
	case FormatJSON:
		plants, err = parseJSON(data)
	default:
		plants, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	for i := range plants {
		if plants[i].Image == "" {
			plants[i].Image = fmt.Sprintf("/images/plants/%d.jpg", plants[i].ID)
		}
	}
	if err := Validate(plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func parseJSON(data []byte) ([]Plant, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var plants []Plant
		if err := json.Unmarshal(trimmed, &plants); err != nil {
			return nil, fmt.Errorf("catalog: parse json: %w", err)
		}
		return plants, nil
	}
	var f catalogFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse json: %w", err)
	}
	return f.Plants, nil
}

func parseYAML(data []byte) ([]Plant, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var plants []Plant
		if err := doc.Decode(&plants); err != nil {
			return nil, fmt.Errorf("catalog: parse yaml: %w", err)
		}
		return plants, nil
	}
	var f catalogFile
	if err := doc.Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	return f.Plants, nil
}

// Validate checks the identity contract the scoring engine relies on:
// every plant has a latin name, and ids and latin names are unique.
func Validate(plants []Plant) error {
	ids := make(map[int]struct{}, len(plants))
	latins := make(map[string]struct{}, len(plants))
	for i := range plants {
		p := &plants[i]
		if strings.TrimSpace(p.Latin) == "" {
			return fmt.Errorf("catalog: plant %d has no latin name: %w", p.ID, ErrInvalidCatalog)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("catalog: duplicate id %d: %w", p.ID, ErrInvalidCatalog)
		}
		if _, dup := latins[p.Latin]; dup {
			return fmt.Errorf("catalog: duplicate latin name %q: %w", p.Latin, ErrInvalidCatalog)
		}
		ids[p.ID] = struct{}{}
		latins[p.Latin] = struct{}{}
	}
	return nil
}
