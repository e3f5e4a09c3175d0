package ai

import (
	"encoding/json"
	"strings"
)

// Parsed is the result of decoding an AI completion. Structured is false when
// the completion held no decodable JSON; Value is then the zero value and the
// caller builds its fallback from Raw.
type Parsed[T any] struct {
	Value      T
	Structured bool
	Raw        string
}

// ParseJSON decodes the JSON payload embedded in text. open is '{' for an
// object or '[' for an array. It never fails.
func ParseJSON[T any](text string, open byte) Parsed[T] {
	result := Parsed[T]{Raw: text}

	for _, candidate := range jsonCandidates(text, open) {
		var value T
		if err := json.Unmarshal([]byte(candidate), &value); err == nil {
			result.Value = value
			result.Structured = true
			return result
		}
	}
	return result
}

// jsonCandidates returns every top-level balanced payload in order, followed
// by the widest span from the first opening to the last closing bracket.
func jsonCandidates(text string, open byte) []string {
	candidates := balancedSpans(text, open, -1)
	closeCh := closing(open)
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, closeCh)
	if start >= 0 && end > start {
		wide := text[start : end+1]
		if len(candidates) == 0 || candidates[0] != wide {
			candidates = append(candidates, wide)
		}
	}
	return candidates
}

// ExtractJSON returns the first balanced {...} or [...] substring of text.
// Brackets inside JSON strings are ignored.
func ExtractJSON(text string, open byte) (string, bool) {
	spans := balancedSpans(text, open, 1)
	if len(spans) == 0 {
		return "", false
	}
	return spans[0], true
}

// balancedSpans scans text for balanced payloads starting at open. limit < 0 means all.
func balancedSpans(text string, open byte, limit int) []string {
	closeCh := closing(open)
	if closeCh == 0 {
		return nil
	}

	var spans []string
	pos := 0
	for limit < 0 || len(spans) < limit {
		idx := strings.IndexByte(text[pos:], open)
		if idx < 0 {
			break
		}
		start := pos + idx
		if length, ok := matchBracket(text[start:], open, closeCh); ok {
			spans = append(spans, text[start:start+length])
			pos = start + length
		} else {
			pos = start + 1
		}
	}
	return spans
}

// matchBracket returns the length of the balanced payload at the start of s.
func matchBracket(s string, open, closeCh byte) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func closing(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '[':
		return ']'
	default:
		return 0
	}
}
