package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRateLimitKey(t *testing.T) {
	assert.Equal(t, "iris:ratelimit:10.0.0.1:/v1/drafts", BuildRateLimitKey("iris:ratelimit", "10.0.0.1", "/v1/drafts"))
	assert.Equal(t, "ratelimit:anonymous:/v1/outlines", BuildRateLimitKey("", "", "/v1/outlines"))
}
