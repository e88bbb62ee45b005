package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"alfredoptarigan/ai-screener/internal/apperrors"
)

var validate = validator.New()

// decodeStrict parses a completion response into target, tolerating
// markdown code fences around the JSON but failing closed on any shape
// mismatch: unknown fields, type mismatches, and violated `validate`
// tags all surface as upstream errors.
func decodeStrict(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	dec := json.NewDecoder(bytes.NewReader([]byte(jsonStr)))
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return apperrors.Upstream("malformed completion response", err)
	}

	if err := validate.Struct(target); err != nil {
		return apperrors.Upstream("completion response failed validation", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
