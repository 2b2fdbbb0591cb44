package itinerary

import (
	"encoding/json"
	"errors"
	"strings"
)

// Document is the parsed, still untrusted, response of the generative service.
type Document map[string]any

const (
	fenceJSON = "```json"
	fence     = "```"
)

var errNotObject = errors.New("top-level value is not a JSON object")

// Normalize strips code fences and blank lines from raw and parses the rest as
// a JSON object. Any failure is returned as a *ParsingError carrying raw.
func Normalize(raw string) (Document, error) {
	cleaned := CleanResponse(raw)

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, &ParsingError{Raw: raw, Err: err}
	}

	doc, ok := value.(map[string]any)
	if !ok {
		return nil, &ParsingError{Raw: raw, Err: errNotObject}
	}
	return Document(doc), nil
}

// CleanResponse removes fence markers at the start or end of each line, drops
// blank lines and trims the result. Each line is trimmed on its own; a JSON
// string never contains a raw newline.
func CleanResponse(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, fenceJSON):
			trimmed = strings.TrimPrefix(trimmed, fenceJSON)
		case strings.HasPrefix(trimmed, fence):
			trimmed = strings.TrimPrefix(trimmed, fence)
		}
		trimmed = strings.TrimSuffix(trimmed, fence)

		trimmed = strings.TrimSpace(trimmed)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
