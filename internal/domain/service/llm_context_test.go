package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLLMCallFromContextDefaults(t *testing.T) {
	call := LLMCallFromContext(context.Background())

	assert.Equal(t, LLMCall{Workflow: "unknown", Provider: "unknown", Model: "unknown"}, call)
}

func TestWithLLMCallKeepsExistingValues(t *testing.T) {
	ctx := WithLLMCall(context.Background(), LLMCall{Workflow: "outline_generate", Provider: "anthropic", Model: "m1"})
	ctx = WithLLMCall(ctx, LLMCall{Model: " m2 "})

	call := LLMCallFromContext(ctx)
	assert.Equal(t, "outline_generate", call.Workflow)
	assert.Equal(t, "anthropic", call.Provider)
	assert.Equal(t, "m2", call.Model)
}
