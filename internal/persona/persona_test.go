package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "personas.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "self_directed_investors", Slugify("Self-Directed Investors"))
	assert.Equal(t, "pre_retirees", Slugify("Pre–Retirees")) // en dash folds to hyphen
	assert.Equal(t, "a_b", Slugify("  A  &  B  "))
}

func TestLoadSegments(t *testing.T) {
	path := writeFile(t, `{
		"schema_version": "1.0",
		"segments": [{
			"id": "worriers",
			"label": "Retirement Worriers",
			"summary": "Anxious about super",
			"personas": [{
				"id": "sarah",
				"gender": "female",
				"core": {"name": "Sarah", "age": 52, "occupation": "Nurse"}
			}, {
				"core": {"name": "Tom"}
			}]
		}]
	}`)

	ps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 2)

	assert.Equal(t, "worriers:sarah", ps[0].UID)
	assert.Equal(t, "Retirement Worriers", ps[0].SegmentLabel)
	assert.Equal(t, "52", ps[0].Core.Age.String(), "numeric age accepted")

	// Missing id and gender get derived defaults; sparse cores are patched.
	assert.Equal(t, "worriers:tom", ps[1].UID)
	assert.Equal(t, "unknown", ps[1].Gender)
	assert.Equal(t, "Unknown", ps[1].Core.DecisionMaking)
	assert.Equal(t, "Moderate", ps[1].Core.Behavioural.RiskTolerance)
}

func TestLoadLegacyLayout(t *testing.T) {
	path := writeFile(t, `{
		"personas": [{
			"segment": "Young Accumulators",
			"male": {
				"name": "Liam",
				"age": "29",
				"scenarios": ["scenario one"],
				"risk_tolerance_differences": "higher",
				"values": ["growth"]
			},
			"female": {"name": "Mia"}
		}]
	}`)

	ps, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ps, 2)

	// Male before female, always.
	assert.Equal(t, "Liam", ps[0].Name())
	assert.Equal(t, "male", ps[0].Gender)
	assert.Equal(t, "Mia", ps[1].Name())
	assert.Equal(t, "young_accumulators:liam", ps[0].UID)

	// Enrichment keys land in Extended; core keys stay out of it.
	assert.Contains(t, ps[0].Extended, "scenarios")
	assert.Contains(t, ps[0].Extended, "risk_tolerance_differences")
	assert.NotContains(t, ps[0].Extended, "values")
	assert.Equal(t, []string{"growth"}, ps[0].Core.Values)
}

func TestFind(t *testing.T) {
	ps := []Persona{
		{UID: "seg:sarah", ID: "sarah", Core: Core{Name: "Sarah"}},
		{UID: "seg:tom", ID: "tom", Core: Core{Name: "Tom"}},
	}
	for _, key := range []string{"seg:tom", "tom", "TOM"} {
		p, ok := Find(ps, key)
		require.True(t, ok, key)
		assert.Equal(t, "Tom", p.Name())
	}
	_, ok := Find(ps, "nobody")
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeFile(t, "not json")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	p := Persona{Core: Core{Name: "Sarah", Age: "52", Occupation: "Nurse"}}
	assert.Equal(t, "Sarah - 52 - Nurse", p.Label())
	assert.Equal(t, "Unknown", Persona{}.Label())
}
