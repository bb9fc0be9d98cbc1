package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Completion text often wraps the requested JSON in prose or code fences.
// ExtractJSON runs an ordered chain of carving strategies and returns the
// first candidate that parses as a JSON object. Callers that need a default
// on ErrNoJSON substitute it themselves.

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

type extractStrategy func(string) (json.RawMessage, bool)

var strategies = []extractStrategy{
	extractWhole,
	extractFenced,
	extractBalanced,
	extractCleaned,
}

// ExtractJSON returns the first JSON object found in text, or ErrNoJSON.
func ExtractJSON(text string) (json.RawMessage, error) {
	for _, strat := range strategies {
		if raw, ok := strat(text); ok {
			return raw, nil
		}
	}
	return nil, wrapError("extract", "", ErrNoJSON)
}

// ExtractInto extracts a JSON object from text and unmarshals it into v.
func ExtractInto(text string, v any) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return wrapError("extract", "", ErrNoJSON)
	}
	return nil
}

// extractWhole accepts a response that is exactly a JSON object.
func extractWhole(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, false
	}
	return validate(trimmed)
}

// extractFenced pulls an object out of a ```json code fence.
func extractFenced(text string) (json.RawMessage, bool) {
	m := fencedBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return validate(m[1])
}

// extractBalanced scans from the first opening brace and carves the span
// where the brace depth returns to zero.
func extractBalanced(text string) (json.RawMessage, bool) {
	candidate, ok := balancedSpan(text)
	if !ok {
		return nil, false
	}
	return validate(candidate)
}

// extractCleaned retries the balanced span after repairing common model
// mistakes: literal newlines inside the object, trailing commas, and
// non-printable characters.
func extractCleaned(text string) (json.RawMessage, bool) {
	candidate, ok := balancedSpan(text)
	if !ok {
		return nil, false
	}

	cleaned := strings.NewReplacer("\n", " ", "\r", " ").Replace(candidate)
	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")
	cleaned = nonPrintableRe.ReplaceAllString(cleaned, "")

	return validate(cleaned)
}

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	nonPrintableRe  = regexp.MustCompile(`[^\x20-\x7E]`)
)

func balancedSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func validate(candidate string) (json.RawMessage, bool) {
	candidate = strings.TrimSpace(candidate)
	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	// Only objects count; bare arrays or scalars are not what callers ask for.
	if !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	return json.RawMessage(candidate), true
}
