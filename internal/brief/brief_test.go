package brief

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceIsTotal(t *testing.T) {
	got := Coerce(map[string]any{
		"hook":        "  Big promise  ",
		"offer_price": 49.0,
		"unrelated":   "dropped",
		"reports":     nil,
	})
	assert.Equal(t, "Big promise", got.Hook)
	assert.Equal(t, "49", got.OfferPrice)
	assert.Equal(t, "", got.Reports)
	assert.Equal(t, "", got.Details)

	// Coercing junk still yields a usable zero brief.
	assert.True(t, Coerce(nil).IsEmpty())
	assert.True(t, Coerce("not a map").IsEmpty())
	assert.True(t, Coerce([]any{"x"}).IsEmpty())
}

func TestCoerceIsIdempotent(t *testing.T) {
	in := map[string]any{"hook": "h", "details": "d", "offer_term": "1 year"}
	once := Coerce(in)
	twice := Coerce(once)
	assert.Equal(t, once, twice)
}

func TestMapHasAllKeys(t *testing.T) {
	m := Brief{}.Map()
	assert.Len(t, m, len(Keys))
	for _, k := range Keys {
		_, ok := m[k]
		assert.True(t, ok, "missing key %s", k)
	}
}

func TestSummary(t *testing.T) {
	b := Brief{Hook: "h", OfferPrice: "$99"}
	s := b.Summary()
	assert.Contains(t, s, "- hook: h")
	assert.Contains(t, s, "- offer_price: $99")
	assert.NotContains(t, s, "details")

	assert.Equal(t, "- (none provided)", Brief{}.Summary())
}
