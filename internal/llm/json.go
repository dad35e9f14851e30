package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// DecodeCompletion parses a structured JSON payload out of raw completion
// text. Models wrap JSON in prose or markdown fences and occasionally emit
// broken syntax, so the payload is isolated first and repaired as a
// fallback when strict decoding fails.
func DecodeCompletion(raw string, v any) error {
	payload := isolateJSON(raw)
	if payload == "" {
		return fmt.Errorf("no JSON payload in completion")
	}

	if err := json.Unmarshal([]byte(payload), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(payload)
	if err != nil {
		return fmt.Errorf("repair completion JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("unmarshal repaired completion JSON: %w", err)
	}
	return nil
}

// isolateJSON cuts the first object or array span out of the text
func isolateJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	objStart := strings.IndexByte(raw, '{')
	arrStart := strings.IndexByte(raw, '[')

	start := objStart
	end := strings.LastIndexByte(raw, '}')
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndexByte(raw, ']')
	}

	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
