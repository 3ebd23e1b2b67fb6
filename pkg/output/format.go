// Package output renders generation results for scripts and terminals.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type
type Format string

const (
	// FormatText is a human-readable summary followed by the script
	FormatText Format = "text"
	// FormatJSON is JSON format, matching the backend wire format
	FormatJSON Format = "json"
	// FormatYAML is YAML format
	FormatYAML Format = "yaml"
	// FormatScript is the generated script alone
	FormatScript Format = "script"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatScript}
}

// ParseFormat parses a string into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatScript:
		return FormatScript, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (valid formats: text, json, yaml, script)", s)
	}
}

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}
