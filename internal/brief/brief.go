// Package brief owns the campaign brief: a fixed 8-field record every
// mutation must round-trip through, plus the pipelines that fill it
// (one-shot extraction from messy notes, and the dialogue-first
// builder that asks one question per turn).
package brief

import (
	"fmt"
	"strings"
)

// Keys is the stable field order, used for prompts and map views.
var Keys = []string{
	"hook",
	"details",
	"offer_price",
	"retail_price",
	"offer_term",
	"reports",
	"stocks_to_tease",
	"quotes_news",
}

// Brief always carries exactly these fields; missing data is an empty
// string, never an absent key.
type Brief struct {
	Hook          string `json:"hook"`
	Details       string `json:"details"`
	OfferPrice    string `json:"offer_price"`
	RetailPrice   string `json:"retail_price"`
	OfferTerm     string `json:"offer_term"`
	Reports       string `json:"reports"`
	StocksToTease string `json:"stocks_to_tease"`
	QuotesNews    string `json:"quotes_news"`
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Coerce folds an arbitrary decoded JSON value into a Brief. Unrelated
// keys are dropped, missing keys collapse to empty strings, and
// applying it twice equals applying it once.
func Coerce(v any) Brief {
	m := map[string]any{}
	switch t := v.(type) {
	case map[string]any:
		m = t
	case map[string]string:
		for k, s := range t {
			m[k] = s
		}
	case Brief:
		return Coerce(t.Map())
	}
	return Brief{
		Hook:          coerceString(m["hook"]),
		Details:       coerceString(m["details"]),
		OfferPrice:    coerceString(m["offer_price"]),
		RetailPrice:   coerceString(m["retail_price"]),
		OfferTerm:     coerceString(m["offer_term"]),
		Reports:       coerceString(m["reports"]),
		StocksToTease: coerceString(m["stocks_to_tease"]),
		QuotesNews:    coerceString(m["quotes_news"]),
	}
}

// Map returns the canonical 8-key view.
func (b Brief) Map() map[string]string {
	return map[string]string{
		"hook":            b.Hook,
		"details":         b.Details,
		"offer_price":     b.OfferPrice,
		"retail_price":    b.RetailPrice,
		"offer_term":      b.OfferTerm,
		"reports":         b.Reports,
		"stocks_to_tease": b.StocksToTease,
		"quotes_news":     b.QuotesNews,
	}
}

// IsEmpty reports whether every field is blank.
func (b Brief) IsEmpty() bool {
	for _, v := range b.Map() {
		if v != "" {
			return false
		}
	}
	return true
}

// Summary renders the brief as the bullet block prompts embed.
func (b Brief) Summary() string {
	var sb strings.Builder
	m := b.Map()
	for _, k := range Keys {
		if m[k] == "" {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", k, m[k])
	}
	if sb.Len() == 0 {
		return "- (none provided)"
	}
	return strings.TrimRight(sb.String(), "\n")
}
