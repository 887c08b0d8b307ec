package patch

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/jmylchreest/recipe-api/internal/llm"
)

const invalidJSONMessage = "LLM returned invalid JSON. Try running the analysis again."

var (
	leadingFence  = regexp.MustCompile("(?m)^```(?:json)?\\s*\\n?")
	trailingFence = regexp.MustCompile("(?m)\\n?```\\s*$")
)

// Sanitize strips reasoning blocks and markdown fences from a model reply
// and decodes the JSON object it holds.
func Sanitize(reply string) (map[string]any, error) {
	content := llm.StripReasoning(reply)
	content = leadingFence.ReplaceAllString(content, "")
	content = trailingFence.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	if content == "" {
		return nil, llm.NewInvalidResponseError("", "", invalidJSONMessage, errors.New("empty content"))
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, llm.NewInvalidResponseError("", "", invalidJSONMessage, err)
	}
	if out == nil {
		return nil, llm.NewInvalidResponseError("", "", invalidJSONMessage, errors.New("reply is not a JSON object"))
	}
	return out, nil
}
