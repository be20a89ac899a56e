package types

import "strings"

// FallbackProductName labels a line whose product has no usable display name.
const FallbackProductName = "Product"

// LocalizedText carries the bilingual display strings used across the catalog.
// English is the primary locale; Tamil is optional.
type LocalizedText struct {
	En string `json:"en"`
	Ta string `json:"ta,omitempty"`
}

// Resolve returns the English text, falling back to Tamil, then to the
// generic product label.
func (t LocalizedText) Resolve() string {
	if s := strings.TrimSpace(t.En); s != "" {
		return s
	}
	if s := strings.TrimSpace(t.Ta); s != "" {
		return s
	}
	return FallbackProductName
}

// IsEmpty reports whether no locale carries text.
func (t LocalizedText) IsEmpty() bool {
	return strings.TrimSpace(t.En) == "" && strings.TrimSpace(t.Ta) == ""
}
