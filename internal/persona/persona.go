// Package persona loads the static audience-persona library. Personas
// are immutable after load and reused across every pipeline call.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// FlexString accepts JSON strings and numbers; persona files mix both
// for fields like age and income.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

func (f FlexString) String() string { return string(f) }

type BehaviouralTraits struct {
	RiskTolerance        string   `json:"risk_tolerance"`
	InvestmentExperience string   `json:"investment_experience"`
	InformationSources   []string `json:"information_sources"`
	PreferredChannels    []string `json:"preferred_channels"`
}

type ContentConsumption struct {
	PreferredFormats  []string `json:"preferred_formats"`
	PreferredChannels []string `json:"preferred_channels"`
	AdditionalNotes   string   `json:"additional_notes"`
}

// Core holds the attributes prompts are built from. Extended enrichment
// stays out of prompts entirely.
type Core struct {
	Name              string             `json:"name"`
	Age               FlexString         `json:"age"`
	Occupation        string             `json:"occupation"`
	Location          string             `json:"location"`
	Income            FlexString         `json:"income"`
	Narrative         string             `json:"narrative"`
	Values            []string           `json:"values"`
	Goals             []string           `json:"goals"`
	Concerns          []string           `json:"concerns"`
	PersonalityTraits []string           `json:"personality_traits"`
	DecisionMaking    string             `json:"decision_making"`
	Behavioural       BehaviouralTraits  `json:"behavioural_traits"`
	Content           ContentConsumption `json:"content_consumption"`
}

type Persona struct {
	UID            string         `json:"uid"`
	SegmentID      string         `json:"segment_id"`
	SegmentLabel   string         `json:"segment_label"`
	SegmentSummary string         `json:"segment_summary"`
	ID             string         `json:"id"`
	Gender         string         `json:"gender"`
	Core           Core           `json:"core"`
	Extended       map[string]any `json:"extended,omitempty"`
}

func (p Persona) Name() string {
	if p.Core.Name == "" {
		return "Unknown"
	}
	return p.Core.Name
}

// Label is the human-friendly form used in CLI listings.
func (p Persona) Label() string {
	bits := []string{p.Name()}
	if p.Core.Age != "" {
		bits = append(bits, p.Core.Age.String())
	}
	if p.Core.Occupation != "" {
		bits = append(bits, p.Core.Occupation)
	}
	return strings.Join(bits, " - ")
}

var (
	dashRe    = regexp.MustCompile("[‐‑‒–—―−]")
	nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormalizeDashes folds typographic dash variants to ASCII hyphens.
func NormalizeDashes(s string) string {
	return dashRe.ReplaceAllString(s, "-")
}

func Slugify(s string) string {
	s = strings.ToLower(NormalizeDashes(s))
	s = nonWordRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func patchCore(c *Core) {
	if c.DecisionMaking == "" {
		c.DecisionMaking = "Unknown"
	}
	if c.Behavioural.RiskTolerance == "" {
		c.Behavioural.RiskTolerance = "Moderate"
	}
	if c.Behavioural.InvestmentExperience == "" {
		c.Behavioural.InvestmentExperience = "Unknown"
	}
}

type fileSegment struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Summary  string `json:"summary"`
	Personas []struct {
		ID       string         `json:"id"`
		Gender   string         `json:"gender"`
		Core     Core           `json:"core"`
		Extended map[string]any `json:"extended"`
	} `json:"personas"`
}

type personaFile struct {
	SchemaVersion string          `json:"schema_version"`
	Segments      []fileSegment   `json:"segments"`
	Legacy        []legacySegment `json:"personas"` // pre-1.0 files
}

type legacySegment struct {
	Segment string          `json:"segment"`
	Male    json.RawMessage `json:"male"`
	Female  json.RawMessage `json:"female"`
}

// Load reads a persona library file, converting the legacy
// {personas:[{segment,male,female}]} layout when present, and flattens
// segments into a single list with stable "segment:persona" uids.
func Load(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas from %s: %w", path, err)
	}

	var f personaFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse personas from %s: %w", path, err)
	}
	if len(f.Segments) == 0 && len(f.Legacy) > 0 {
		f.Segments = convertLegacy(f.Legacy)
	}

	var flat []Persona
	for _, seg := range f.Segments {
		segID := seg.ID
		if segID == "" {
			segID = Slugify(seg.Label)
		}
		for _, p := range seg.Personas {
			id := p.ID
			if id == "" {
				id = Slugify(p.Core.Name)
			}
			gender := p.Gender
			if gender == "" {
				gender = "unknown"
			}
			core := p.Core
			patchCore(&core)
			flat = append(flat, Persona{
				UID:            segID + ":" + id,
				SegmentID:      segID,
				SegmentLabel:   seg.Label,
				SegmentSummary: seg.Summary,
				ID:             id,
				Gender:         gender,
				Core:           core,
				Extended:       p.Extended,
			})
		}
	}
	return flat, nil
}

func convertLegacy(groups []legacySegment) []fileSegment {
	var segments []fileSegment
	for _, g := range groups {
		label := g.Segment
		if label == "" {
			label = "Unknown"
		}
		seg := fileSegment{ID: Slugify(label), Label: label}
		for _, entry := range []struct {
			gender string
			raw    json.RawMessage
		}{{"male", g.Male}, {"female", g.Female}} {
			gender, raw := entry.gender, entry.raw
			if len(raw) == 0 {
				continue
			}
			var core Core
			if err := json.Unmarshal(raw, &core); err != nil {
				continue
			}
			// Enrichment keys move to extended; they never feed prompts.
			var all map[string]any
			_ = json.Unmarshal(raw, &all)
			ext := map[string]any{}
			for _, k := range []string{"scenarios", "peer_influence", "risk_tolerance_differences", "behavioural_enrichment"} {
				if v, ok := all[k]; ok {
					ext[k] = v
				}
			}
			id := Slugify(core.Name)
			if id == "" {
				id = gender + "_" + seg.ID
			}
			seg.Personas = append(seg.Personas, struct {
				ID       string         `json:"id"`
				Gender   string         `json:"gender"`
				Core     Core           `json:"core"`
				Extended map[string]any `json:"extended"`
			}{ID: id, Gender: gender, Core: core, Extended: ext})
		}
		segments = append(segments, seg)
	}
	return segments
}

// Find looks up a persona by uid, plain id, or name (case-insensitive).
func Find(personas []Persona, key string) (Persona, bool) {
	for _, p := range personas {
		if p.UID == key || p.ID == key || strings.EqualFold(p.Name(), key) {
			return p, true
		}
	}
	return Persona{}, false
}
