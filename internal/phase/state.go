// Package phase sequences the steps of the onboarding conversation: a registry of
// phase definitions, the machine that selects and advances them, and the context
// object handed to each phase controller.
package phase

import (
	"encoding/json"
	"fmt"
)

// NameKey is the reserved PhaseState key holding the current phase name.
const NameKey = "name"

// State is the flat, JSON-serializable record shared by all phases.
type State map[string]any

// Name returns the recorded phase name, or "" if none.
func (s State) Name() string {
	name, _ := s[NameKey].(string)
	return name
}

// Clone returns a copy whose values are deep-copied through JSON.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// Assign shallow-merges partial into s.
func (s State) Assign(partial State) {
	for k, v := range partial {
		s[k] = cloneValue(v)
	}
}

// Has reports whether key is present with a non-null value.
func (s State) Has(key string) bool {
	v, ok := s[key]
	return ok && v != nil
}

// Truthy follows the usual loose truthiness: false, 0, "" and null are false.
func (s State) Truthy(key string) bool {
	switch v := s[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

// Strings returns the string elements of the list under key.
func (s State) Strings(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Decode converts the value under key into v.
func (s State) Decode(key string, v any) error {
	raw, ok := s[key]
	if !ok || raw == nil {
		return fmt.Errorf("phase state has no %q", key)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// cloneValue normalizes v to its JSON form so stored state never aliases the
// caller's values and looks the same before and after a reload.
func cloneValue(v any) any {
	switch v.(type) {
	case nil, bool, string, float64:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
