package llm

import (
	"regexp"
	"strings"
)

// NoThinkSuffix asks Qwen-style models to skip the reasoning phase.
const NoThinkSuffix = "/no_think"

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning removes <think>...</think> blocks emitted by reasoning models
// and trims the remaining content. A dangling </think> with no opening tag
// (the opener was consumed by the chat template) drops everything before it.
func StripReasoning(content string) string {
	content = thinkBlock.ReplaceAllString(content, "")
	if idx := strings.Index(content, "</think>"); idx >= 0 {
		content = content[idx+len("</think>"):]
	}
	return strings.TrimSpace(content)
}

// WithNoThink appends the no-think directive to a user prompt.
func WithNoThink(user string) string {
	if strings.HasSuffix(strings.TrimSpace(user), NoThinkSuffix) {
		return user
	}
	return user + "\n\n" + NoThinkSuffix
}
