// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// RequestMode selects the shape of a remote inference exchange.
type RequestMode string

// Request mode constants.
const (
	// ModeChat is free-form conversational advice.
	ModeChat RequestMode = "chat"
	// ModeAnalyze is free-text analysis of supplied financial facts.
	ModeAnalyze RequestMode = "analyze"
	// ModeParse is structured transaction labeling; responses must be an
	// array of {label, category} entries.
	ModeParse RequestMode = "parse"
)

// Valid reports whether m is one of the known request modes.
func (m RequestMode) Valid() bool {
	switch m {
	case ModeChat, ModeAnalyze, ModeParse:
		return true
	}
	return false
}

// Structured reports whether responses in this mode carry structured data
// rather than free text.
func (m RequestMode) Structured() bool {
	return m == ModeParse
}

func (m RequestMode) String() string {
	return string(m)
}

// ParseRequestMode converts a mode string into a RequestMode.
func ParseRequestMode(s string) (RequestMode, error) {
	m := RequestMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown request mode: %q", s)
	}
	return m, nil
}
