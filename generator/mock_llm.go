package generator

import (
	"context"
	"strings"
)

// MockLLM is a local placeholder that never calls an external model. It
// echoes the prompt as Markdown so the whole pipeline can be exercised offline.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Offline preview\n\n")
	sb.WriteString("No language model is configured; this is the prompt that would be sent:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
