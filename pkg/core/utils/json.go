// Package utils holds small helpers shared across the engine, mostly
// around coping with imperfect JSON coming back from language models.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// StripCodeFences removes markdown code fences that models like to wrap
// around JSON output.
func StripCodeFences(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// RepairJSON attempts to fix common JSON errors from LLM outputs:
// missing quotes around keys, single quotes, unclosed brackets, trailing
// commas, comments.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// SmartParse tries multiple strategies to decode model output into the
// given schema:
//  1. standard JSON
//  2. JSON repair
//  3. Hjson (most lenient)
//
// Returns the variant that parsed, for logging.
func SmartParse(input string, schema interface{}) (string, error) {
	input = StripCodeFences(input)

	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	var loose interface{}
	if err := hjson.Unmarshal([]byte(input), &loose); err == nil {
		if jsonBytes, err := json.Marshal(loose); err == nil {
			if err := json.Unmarshal(jsonBytes, schema); err == nil {
				return string(jsonBytes), nil
			}
		}
	}

	return "", fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed")
}
