package ai

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/hr-scout/internal/talent"
)

const (
	minScore = 0
	maxScore = 100
)

// profileURLKeys are accepted in model output for the candidate's profile link, in priority order.
var profileURLKeys = []string{"linkedinUrl", "profileUrl", "url"}

// ParseCandidates extracts the candidate list from a model reply. It accepts a bare array,
// an object with a "candidates" array or an object whose first array-valued property holds
// the list. Anything else, including invalid JSON, yields an empty list.
func ParseCandidates(raw string) []talent.Candidate {
	list, _ := parseCandidates(raw)
	return list
}

// parseCandidates also reports how many array elements could not be decoded into a candidate.
func parseCandidates(raw string) ([]talent.Candidate, int) {
	cleaned := []byte(extractJSON(raw))

	var parsed any
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return []talent.Candidate{}, 0
	}

	var elements []any
	switch val := parsed.(type) {
	case []any:
		elements = val
	case map[string]any:
		if list, ok := val["candidates"].([]any); ok {
			elements = list
		} else {
			elements = firstArrayProperty(cleaned)
		}
	}

	candidates := make([]talent.Candidate, 0, len(elements))
	skipped := 0
	for _, element := range elements {
		candidate, ok := decodeCandidate(element)
		if !ok {
			skipped++
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, skipped
}

// firstArrayProperty walks a JSON object in document order and returns the first
// property value that is an array.
func firstArrayProperty(data []byte) []any {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}

		trimmed := bytes.TrimSpace(value)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			continue
		}

		var list []any
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil
		}
		return list
	}

	return nil
}

func decodeCandidate(element any) (talent.Candidate, bool) {
	fields, ok := element.(map[string]any)
	if !ok {
		return talent.Candidate{}, false
	}

	var candidate talent.Candidate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &candidate,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return talent.Candidate{}, false
	}

	if err := decoder.Decode(fields); err != nil {
		return talent.Candidate{}, false
	}

	if candidate.ProfileURL == "" {
		for _, key := range profileURLKeys[1:] {
			if url, ok := fields[key].(string); ok && strings.TrimSpace(url) != "" {
				candidate.ProfileURL = strings.TrimSpace(url)
				break
			}
		}
	}

	if candidate.Skills == nil {
		candidate.Skills = []string{}
	}
	candidate.Score = clampScore(candidate.Score)

	return candidate, true
}

func clampScore(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
