package regionrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

func TestMemoryRepositoryLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := tiles.Region{ID: uuid.New(), Name: "old", Status: tiles.RegionReady, ExpiresAt: &past}
	fresh := tiles.Region{ID: uuid.New(), Name: "new", Status: tiles.RegionPending, ExpiresAt: &future}
	forever := tiles.Region{ID: uuid.New(), Name: "keep", Status: tiles.RegionReady}

	for _, r := range []tiles.Region{expired, fresh, forever} {
		require.NoError(t, repo.Create(ctx, r))
	}
	require.Error(t, repo.Create(ctx, fresh))

	got, found, err := repo.Get(ctx, fresh.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "new", got.Name)

	got.Status = tiles.RegionReady
	require.NoError(t, repo.Update(ctx, got))
	got, _, _ = repo.Get(ctx, fresh.ID)
	require.Equal(t, tiles.RegionReady, got.Status)
	require.Error(t, repo.Update(ctx, tiles.Region{ID: uuid.New()}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	exp, err := repo.ListExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, exp, 1)
	require.Equal(t, expired.ID, exp[0].ID)

	require.NoError(t, repo.Delete(ctx, expired.ID))
	_, found, err = repo.Get(ctx, expired.ID)
	require.NoError(t, err)
	require.False(t, found)
}
