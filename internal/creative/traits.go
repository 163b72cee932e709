package creative

import (
	"encoding/json"
	"os"
	"sort"
)

// Default banding thresholds, used when a trait's config leaves them
// unset. Both bands are inclusive.
const (
	defaultHighThreshold = 8
	defaultLowThreshold  = 3
)

// TraitRule maps a 1-10 trait dial onto natural-language hard
// requirements: score >= high threshold emits the high rule, score <=
// low threshold the low rule, anything between the optional mid rule.
type TraitRule struct {
	HighThreshold int    `json:"high_threshold"`
	LowThreshold  int    `json:"low_threshold"`
	HighRule      string `json:"high_rule"`
	MidRule       string `json:"mid_rule"`
	LowRule       string `json:"low_rule"`
}

// TraitConfig is the external trait-name → rule mapping.
type TraitConfig map[string]TraitRule

// LoadTraitConfig reads the trait rules file. A missing file yields an
// empty config, not an error — trait dials are optional.
func LoadTraitConfig(path string) (TraitConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return TraitConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg TraitConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TraitRules translates the score dials into hard-requirement lines,
// in stable trait-name order. Traits without config are skipped; empty
// rule strings are dropped.
func TraitRules(traits map[string]int, cfg TraitConfig) []string {
	names := make([]string, 0, len(traits))
	for name := range traits {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		rule, ok := cfg[name]
		if !ok {
			continue
		}
		high := rule.HighThreshold
		if high == 0 {
			high = defaultHighThreshold
		}
		low := rule.LowThreshold
		if low == 0 {
			low = defaultLowThreshold
		}

		score := traits[name]
		var line string
		switch {
		case score >= high:
			line = rule.HighRule
		case score <= low:
			line = rule.LowRule
		default:
			line = rule.MidRule
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
