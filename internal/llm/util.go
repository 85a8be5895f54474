// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanCompletion trims whitespace and removes markdown code fences from generated text.
// Completion models often start with blank lines, and chat-tuned models sometimes wrap
// plain text in ``` blocks even when asked not to.
func CleanCompletion(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	return text
}
