package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSuppressHeader(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))

	suppressed := WithSuppressHeader(ctx)
	assert.True(t, shouldSuppressHeader(suppressed))

	// The parent context stays untouched.
	assert.False(t, shouldSuppressHeader(ctx))
}
