package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceKey(t *testing.T) {
	assert.Equal(t, "communications:jordan@example.com", NamespaceKey(KeyCommunications, "jordan@example.com"))
	assert.Equal(t, "communications:jordan@example.com", NamespaceKey(KeyCommunications, "  Jordan@Example.COM "))
	assert.Equal(t, "communications:anonymous", NamespaceKey(KeyCommunications, ""))
	assert.Equal(t, "localDonations:anonymous", NamespaceKey(KeyLocalDonations, "   "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail(" A@B.com "))
	assert.Equal(t, AnonymousUser, NormalizeEmail(""))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, _, _ = s.Get(ctx, "k")
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
