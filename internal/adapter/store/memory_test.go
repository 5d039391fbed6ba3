package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbowl/storefront-api/internal/usecase"
)

var (
	_ usecase.Store[int] = (*Memory[int])(nil)
	_ usecase.Store[int] = (*Redis[int])(nil)
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[string]()

	_, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, "a", "one"))
	require.NoError(t, m.Put(ctx, "b", "two"))

	v, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	require.NoError(t, m.Put(ctx, "a", "uno"))
	v, _, _ = m.Get(ctx, "a")
	assert.Equal(t, "uno", v)

	all, err := m.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"uno", "two"}, all)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[int]()

	existed, err := m.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, existed)

	require.NoError(t, m.Put(ctx, "k", 7))
	existed, err = m.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, existed)

	_, ok, _ := m.Get(ctx, "k")
	assert.False(t, ok)
}
