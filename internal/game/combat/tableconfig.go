package combat

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tablesFile is the YAML shape of a balance override file. Every rating and
// every level must be present: partial overrides are rejected so a dropped
// line can never silently zero a tier.
type tablesFile struct {
	Version string `yaml:"version"`
	Attack  struct {
		Rating     map[string]float64 `yaml:"rating"`
		Complexity map[int]float64    `yaml:"complexity"`
	} `yaml:"attack"`
	Defense struct {
		Rating     map[string]map[string]float64 `yaml:"rating"`
		Complexity map[int]float64               `yaml:"complexity"`
	} `yaml:"defense"`
}

var ratingLabels = []string{"excellent", "good", "okay", "needs_improvement"}

// LoadTablesFile reads a versioned balance override from path.
//
// Postcondition: Returns a complete, validated Tables, or an error naming the
// first missing or out-of-contract entry.
func LoadTablesFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading balance file %q: %w", path, err)
	}
	var tf tablesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("parsing balance file %q: %w", path, err)
	}

	t := &Tables{Version: tf.Version}
	if t.AttackRating, err = ratingBonuses(tf.Attack.Rating, "attack.rating"); err != nil {
		return nil, err
	}
	for _, col := range []struct {
		name string
		dst  *RatingBonuses
	}{
		{"regular", &t.DefenseRating.Regular},
		{"special", &t.DefenseRating.Special},
	} {
		m, ok := tf.Defense.Rating[col.name]
		if !ok {
			return nil, fmt.Errorf("balance file %q: missing defense.rating.%s column", path, col.name)
		}
		if *col.dst, err = ratingBonuses(m, "defense.rating."+col.name); err != nil {
			return nil, err
		}
	}
	if t.AttackComplexity, err = complexityBonuses(tf.Attack.Complexity, "attack.complexity"); err != nil {
		return nil, err
	}
	if t.DefenseComplexity, err = complexityBonuses(tf.Defense.Complexity, "defense.complexity"); err != nil {
		return nil, err
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("balance file %q: %w", path, err)
	}
	return t, nil
}

// ratingBonuses converts a wire-label map into RatingBonuses, requiring all
// four tiers and nothing else.
func ratingBonuses(m map[string]float64, section string) (RatingBonuses, error) {
	if len(m) != len(ratingLabels) {
		return RatingBonuses{}, fmt.Errorf("%s must define exactly %d tiers, got %d", section, len(ratingLabels), len(m))
	}
	for _, label := range ratingLabels {
		if _, ok := m[label]; !ok {
			return RatingBonuses{}, fmt.Errorf("%s missing tier %q", section, label)
		}
	}
	return RatingBonuses{
		Excellent:        m["excellent"],
		Good:             m["good"],
		Okay:             m["okay"],
		NeedsImprovement: m["needs_improvement"],
	}, nil
}

// complexityBonuses converts a level-keyed map into ComplexityBonuses,
// requiring levels 1..5 and nothing else.
func complexityBonuses(m map[int]float64, section string) (ComplexityBonuses, error) {
	var out ComplexityBonuses
	if len(m) != len(out) {
		return out, fmt.Errorf("%s must define exactly levels 1..%d, got %d entries", section, len(out), len(m))
	}
	for level := 1; level <= len(out); level++ {
		v, ok := m[level]
		if !ok {
			return out, fmt.Errorf("%s missing level %d", section, level)
		}
		out[level-1] = v
	}
	return out, nil
}
