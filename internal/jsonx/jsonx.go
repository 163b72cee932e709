// Package jsonx recovers JSON objects from LLM output. Models wrap JSON
// in prose or markdown fences even when told not to, so extraction is
// best-effort: callers get a map or nil, never an error.
package jsonx

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

// StripFences removes a surrounding ```json ... ``` or ``` ... ``` block.
func StripFences(text string) string {
	if m := fenceRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return strings.ReplaceAll(strings.ReplaceAll(text, "```json", ""), "```", "")
}

// ExtractObject pulls a single JSON object out of raw model text.
// Strategy, stopping at first success:
//  1. strip markdown fences and try a strict parse
//  2. parse the substring between the first '{' and the last '}'
//
// Top-level arrays and scalars are rejected — every pipeline contract
// expects an object. Returns nil when nothing usable is found.
func ExtractObject(text string) map[string]any {
	cleaned := strings.TrimSpace(StripFences(text))
	if cleaned == "" {
		return nil
	}

	// The brace scan only rescues parse failures. A document that
	// parses cleanly to an array or scalar is rejected outright, never
	// mined for objects nested inside it.
	if obj, parsed := parseObject(cleaned); parsed {
		return obj
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil
	}
	obj, _ := parseObject(cleaned[start : end+1])
	return obj
}

// parseObject reports whether blob was valid JSON at all; the map is
// nil when it parsed to something other than an object.
func parseObject(blob string) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(blob), &v); err != nil {
		return nil, false
	}
	obj, _ := v.(map[string]any)
	return obj, true
}

// Decode re-marshals a loosely typed object into a concrete struct.
// Unknown keys are dropped and missing keys keep their zero values,
// mirroring the defaulting rules the pipelines rely on.
func Decode(obj map[string]any, out any) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// String returns obj[key] as a trimmed string, tolerating non-string
// values and missing keys.
func String(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Bool returns obj[key] as a bool, false when absent or mistyped.
func Bool(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}
