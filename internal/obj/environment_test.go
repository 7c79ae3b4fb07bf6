package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_WithShadowsWithoutMutating(t *testing.T) {
	base := NewEnvironment(2)
	base.Set(0, NewInteger(1))

	shadowed := base.With(0, NewInteger(2))

	require.NotSame(t, base, shadowed)
	assert.Equal(t, int64(1), base.Get(0).(*Integer).N, "the original environment must not see the shadowing update")
	assert.Equal(t, int64(2), shadowed.Get(0).(*Integer).N)
}

func TestEnvironment_GetUnbound(t *testing.T) {
	env := NewEnvironment(3)
	assert.Nil(t, env.Get(1))
}

func TestEnvironment_SetReturnsPrevious(t *testing.T) {
	env := NewEnvironment(1)
	first := NewInteger(7)
	env.Set(0, first)

	prev := env.Set(0, NewInteger(8))
	assert.Same(t, first, prev)
	assert.Equal(t, int64(8), env.Get(0).(*Integer).N)
}

func TestEnvironment_NewIsOnStack(t *testing.T) {
	env := NewEnvironment(0)
	assert.True(t, env.OnStack)
	assert.Equal(t, TagEnvironment, env.Tag)
	assert.Equal(t, 0, env.Size())
}
