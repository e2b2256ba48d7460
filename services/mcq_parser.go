package services

import (
	"encoding/json"
	"strings"

	"student-chapter-system/models"
)

const codeFence = "```"

// stripCodeFence removes one level of markdown code-fence wrapping from raw
// generator output. Gemini frequently fences its JSON even when told not to,
// usually with a "json" language tag.
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, codeFence) {
		return cleaned
	}

	parts := strings.SplitN(cleaned, codeFence, 3)
	if len(parts) >= 2 {
		cleaned = parts[1]
	} else {
		cleaned = parts[0]
	}
	cleaned = strings.TrimPrefix(cleaned, "json")
	return strings.TrimSpace(cleaned)
}

// ParseMCQResponse normalizes the generator's free-form response into a list
// of questions. Three shapes are accepted: a bare JSON array, an object with
// an "mcqs" list, and a single question object (wrapped into a one-element
// list). Anything else is a *ParseError. Missing fields are tolerated and
// decode to empty strings.
func ParseMCQResponse(raw string) ([]models.MCQ, error) {
	working := stripCodeFence(raw)

	var value json.RawMessage
	if err := json.Unmarshal([]byte(working), &value); err != nil {
		return nil, &ParseError{Err: err}
	}

	trimmed := strings.TrimSpace(string(value))
	if strings.HasPrefix(trimmed, "{") {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(value, &keyed); err != nil {
			return nil, &ParseError{Err: err}
		}

		if rawList, ok := keyed["mcqs"]; ok {
			var mcqs []models.MCQ
			if err := json.Unmarshal(rawList, &mcqs); err == nil {
				return mcqs, nil
			}
			// "mcqs" present but not a usable list; fall through and treat
			// the object as a single question.
		}

		var single models.MCQ
		if err := json.Unmarshal(value, &single); err != nil {
			return nil, &ParseError{Err: err}
		}
		return []models.MCQ{single}, nil
	}

	var mcqs []models.MCQ
	if err := json.Unmarshal(value, &mcqs); err != nil {
		return nil, &ParseError{Err: err}
	}
	return mcqs, nil
}
