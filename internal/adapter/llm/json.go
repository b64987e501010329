package llm

import (
	"fmt"
	"strings"
)

// extractJSON pulls the first JSON object or array out of a raw LLM response.
// Reasoning models sometimes wrap their output in <think> blocks or prose;
// the payload is located by the outermost brace/bracket pair.
func extractJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	objStart := strings.Index(cleaned, "{")
	arrStart := strings.Index(cleaned, "[")

	start := objStart
	end := strings.LastIndex(cleaned, "}")
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(cleaned, "]")
	}

	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON payload found in LLM response: %q", truncate(cleaned, 200))
	}

	return cleaned[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
