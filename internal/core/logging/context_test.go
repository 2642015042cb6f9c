package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetPlugin(ctx))
	assert.Empty(t, GetCommand(ctx))

	ctx = WithPlugin(ctx, "todo")
	ctx = WithCommand(ctx, "done")

	assert.Equal(t, "todo", GetPlugin(ctx))
	assert.Equal(t, "done", GetCommand(ctx))

	// later values shadow earlier ones
	ctx = WithCommand(ctx, "add")
	assert.Equal(t, "add", GetCommand(ctx))
}
