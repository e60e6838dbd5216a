// Package normalize converts raw provider payloads into canonical Lead and
// Company records. LLM output is free text that may bury a JSON array inside
// prose or markdown fences; extraction fails soft so a malformed response
// degrades to zero results instead of failing the run.
package normalize

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// ExtractArray locates and parses a JSON array embedded in free text.
// Markdown code fences are stripped, then the outermost [..] span is parsed.
// Returns nil on any parse failure; never returns an error.
func ExtractArray(text string) []map[string]any {
	cleaned := cleanArrayJSON(text)
	if cleaned == "" {
		return nil
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		zap.L().Debug("normalize: response JSON did not parse", zap.Error(err))
		return nil
	}
	return records
}

// cleanArrayJSON strips markdown fences and isolates the outermost JSON
// array span. Returns "" when no bracketed span exists.
func cleanArrayJSON(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.LastIndex(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.LastIndex(text, "```"); end >= 0 {
			text = text[:end]
		}
	}

	// Outermost span: first [ and last ].
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}
