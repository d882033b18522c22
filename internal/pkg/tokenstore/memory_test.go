package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRevocation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "live", now.Add(time.Hour)))
	require.NoError(t, s.Revoke(ctx, "stale", now.Add(-time.Minute)))

	revoked, err := s.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = s.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation ends with the token lifetime")
}
