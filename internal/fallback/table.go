// Package fallback supplies the static key/value configuration backing the
// weather and moon models: "Weather_<name>_<attribute>" and
// "Moons_<name>_<attribute>" entries, loadable from YAML with built-in
// defaults underneath.
package fallback

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/skysim/internal/sky"
)

// Table is a flat key/value configuration store. Lookups on missing keys
// return zero values; the simulation treats absent configuration as "off".
type Table struct {
	values map[string]string
}

// New wraps an explicit value map, mostly for tests.
func New(values map[string]string) *Table {
	t := &Table{values: make(map[string]string, len(values))}
	for k, v := range values {
		t.values[k] = v
	}
	return t
}

// Defaults returns the built-in table.
func Defaults() *Table {
	return New(defaultValues)
}

// Load reads a YAML mapping of key to value and layers it over the built-in
// defaults, so partial files only need to override what they change.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback file: %w", err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse fallback file %s: %w", path, err)
	}

	t := Defaults()
	for k, v := range overrides {
		t.values[k] = v
	}
	return t, nil
}

func (t *Table) String(key string) string {
	return t.values[key]
}

func (t *Table) Float(key string) float64 {
	raw, ok := t.values[key]
	if !ok {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func (t *Table) Bool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(t.values[key])) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Color parses "r,g,b" byte triples (the classic INI form) into a linear
// 0..1 color with full alpha. Malformed entries come back black.
func (t *Table) Color(key string) sky.Color {
	raw, ok := t.values[key]
	if !ok {
		return sky.Color{A: 1}
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return sky.Color{A: 1}
	}
	channel := func(s string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return v / 255
	}
	return sky.Color{
		R: channel(parts[0]),
		G: channel(parts[1]),
		B: channel(parts[2]),
		A: 1,
	}
}

// LoadRegions reads region definitions from a YAML list of {id, chances}.
func LoadRegions(path string) ([]sky.RegionDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	var defs []sky.RegionDefinition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse regions file %s: %w", path, err)
	}
	return defs, nil
}
