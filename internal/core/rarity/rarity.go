// Package rarity maps decorative inline markers to reward tiers.
// The table is loaded once at boot from the embedded tiers.yaml or an override file
// and is read-only afterwards
package rarity

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tiers.yaml
var embedded []byte

// marker matches <name:id> and the animated <a:name:id> form
var marker = regexp.MustCompile(`<a?:[^:<>\s]+:(\d+)>`)

// Tier is one rung of the rarity scale
type Tier struct {
	Name  string `json:"name" example:"SSR"`
	Value int    `json:"value" example:"13"`
}

// Table resolves marker ids to tiers
type Table struct {
	tiers    []Tier
	byMarker map[string]Tier
}

type rawTier struct {
	Name    string   `yaml:"name"`
	Value   int      `yaml:"value"`
	Markers []string `yaml:"markers"`
}

type rawTable struct {
	Tiers []rawTier `yaml:"tiers"`
}

// Load reads the table from path, or the embedded default when path is empty
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(embedded)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rarity: read %s: %w", path, err)
	}
	return Parse(b)
}

// MustLoad is Load that panics, for bootstrap
func MustLoad(path string) *Table {
	t, err := Load(path)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse compiles a YAML table
func Parse(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rarity: parse: %w", err)
	}
	if len(raw.Tiers) == 0 {
		return nil, fmt.Errorf("rarity: table has no tiers")
	}

	t := &Table{byMarker: make(map[string]Tier)}
	names := make(map[string]struct{}, len(raw.Tiers))
	for _, rt := range raw.Tiers {
		name := strings.TrimSpace(rt.Name)
		if name == "" {
			return nil, fmt.Errorf("rarity: tier without name")
		}
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("rarity: duplicate tier %q", name)
		}
		names[name] = struct{}{}
		if rt.Value <= 0 {
			return nil, fmt.Errorf("rarity: tier %q value must be positive, got %d", name, rt.Value)
		}
		tier := Tier{Name: name, Value: rt.Value}
		t.tiers = append(t.tiers, tier)
		for _, m := range rt.Markers {
			m = strings.TrimSpace(m)
			if m == "" || strings.Trim(m, "0123456789") != "" {
				return nil, fmt.Errorf("rarity: tier %q has non-numeric marker %q", name, m)
			}
			if prev, dup := t.byMarker[m]; dup {
				return nil, fmt.Errorf("rarity: marker %s mapped to both %q and %q", m, prev.Name, name)
			}
			t.byMarker[m] = tier
		}
	}
	return t, nil
}

// Tiers returns the tiers in declared order
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Lookup resolves a single marker id
func (t *Table) Lookup(markerID string) (Tier, bool) {
	tier, ok := t.byMarker[markerID]
	return tier, ok
}

// Classify returns the tier of the first known marker across fragments.
// Fragments are scanned in the order given and markers in textual order;
// nothing after the first hit is inspected
func (t *Table) Classify(fragments []string) (Tier, bool) {
	for _, f := range fragments {
		if f == "" {
			continue
		}
		for _, m := range marker.FindAllStringSubmatch(f, -1) {
			if tier, ok := t.Lookup(m[1]); ok {
				return tier, true
			}
		}
	}
	return Tier{}, false
}

// Field is a name/value pair of a notification
type Field struct {
	Name  string
	Value string
}

// Fragments lays out the scan order: title, body, each field name then value, footer
func Fragments(title, body string, fields []Field, footer string) []string {
	out := make([]string, 0, 3+2*len(fields))
	out = append(out, title, body)
	for _, f := range fields {
		out = append(out, f.Name, f.Value)
	}
	if footer != "" {
		out = append(out, footer)
	}
	return out
}

// MarkerIDs lists every marker id found across fragments in scan order, known or not
func MarkerIDs(fragments ...string) []string {
	var out []string
	for _, f := range fragments {
		for _, m := range marker.FindAllStringSubmatch(f, -1) {
			out = append(out, m[1])
		}
	}
	return out
}
