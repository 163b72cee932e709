package audience

import "strings"

// riskPatterns maps compliance-risk categories to the phrases that
// trigger them. Matching is case-insensitive substring — deterministic,
// and it runs whether or not any LLM is reachable.
var riskPatterns = []struct {
	label   string
	phrases []string
}{
	{"Guaranteed / certainty language", []string{
		"guaranteed", "can't lose", "sure thing", "no risk", "risk-free", "100%",
	}},
	{"Urgency pressure", []string{
		"urgent", "act now", "limited time", "today only", "last chance",
		"ends tonight", "flash sale", "expires",
	}},
	{"Implied future performance", []string{
		"will double", "will triple", "can't miss", "next nvidia", "take off explosively",
	}},
	{"Overly absolute claims", []string{
		"always", "never", "everyone", "no one",
	}},
}

// RiskFlags scans creative text for compliance-risk language and
// returns the categories that matched, in a fixed order.
func RiskFlags(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	t := strings.ToLower(text)
	var hits []string
	for _, cat := range riskPatterns {
		for _, phrase := range cat.phrases {
			if strings.Contains(t, phrase) {
				hits = append(hits, cat.label)
				break
			}
		}
	}
	return hits
}
