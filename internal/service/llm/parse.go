package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseStructured decodes a model response that is expected to be JSON
// into dest. Models routinely wrap JSON in markdown fences or surround
// it with prose, so the raw text is reduced to its outermost JSON value
// before unmarshaling. Callers decide whether a failure is fatal: for
// suggestions, research and topic ideas an error means "no usable
// output"; playbook creation treats it as a hard failure.
func ParseStructured(raw string, dest interface{}) error {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return fmt.Errorf("no JSON value found in response")
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return fmt.Errorf("parse structured response: %w", err)
	}
	return nil
}

// extractJSON strips markdown code fences and any text outside the
// outermost JSON object or array. Returns "" when neither is present.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Strip a ```json ... ``` (or plain ```) fence if the response is wrapped in one
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	objStart := strings.IndexAny(s, "{[")
	if objStart < 0 {
		return ""
	}

	var closer byte
	if s[objStart] == '{' {
		closer = '}'
	} else {
		closer = ']'
	}
	objEnd := strings.LastIndexByte(s, closer)
	if objEnd <= objStart {
		return ""
	}

	return s[objStart : objEnd+1]
}
