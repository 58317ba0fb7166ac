package llm

import (
	"regexp"
	"strings"
)

var thinkRe = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// SplitReasoning separates inline <think> blocks, emitted by reasoning
// models such as qwen3, from the visible answer.
func SplitReasoning(content string) (answer, reasoning string) {
	matches := thinkRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(content), ""
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if r := strings.TrimSpace(m[1]); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.TrimSpace(thinkRe.ReplaceAllString(content, "")), strings.Join(parts, "\n")
}

func StripReasoning(content string) string {
	answer, _ := SplitReasoning(content)
	return answer
}
