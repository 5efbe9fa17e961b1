// Package format renders response envelopes in the formats the tools expose:
// literal JSON or TOON, a token-compact textual encoding.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	mcperrors "github.com/ajitpratap0/uniprot-mcp-go/pkg/errors"
)

// Format selects a response encoding
type Format string

const (
	// FormatTOON is the token-compact encoding, the default
	FormatTOON Format = "toon"

	// FormatJSON is the literal structured encoding
	FormatJSON Format = "json"
)

// Names returns the supported format names
func Names() []string {
	return []string{string(FormatTOON), string(FormatJSON)}
}

// ParseFormat validates a format name. An empty name selects the default.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "":
		return FormatTOON, nil
	case string(FormatTOON):
		return FormatTOON, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", mcperrors.UnknownFormat(name, Names())
	}
}

// Encode renders an envelope in the requested format. The result is a JSON
// value ready to embed in a tool response: the envelope itself for json, a
// JSON string holding the TOON rendering for toon.
func Encode(v interface{}, f Format) (json.RawMessage, error) {
	switch f {
	case FormatJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal envelope: %w", err)
		}
		return data, nil
	case FormatTOON:
		text, err := EncodeTOON(v)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(text)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal TOON text: %w", err)
		}
		return data, nil
	default:
		return nil, mcperrors.UnknownFormat(string(f), Names())
	}
}
