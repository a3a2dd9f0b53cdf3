package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImmediateQueueDeliversJob(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []string
		data []map[string]any
	)
	q := NewImmediateQueue(nil)
	require.NoError(t, q.Enqueue(context.Background(), "dropped", nil))

	q.SetHandler(func(_ context.Context, name string, payload map[string]any) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, name)
		data = append(data, payload)
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.Enqueue(ctx, "tiles.download", map[string]any{"region_id": "abc"}))
	require.NoError(t, q.Enqueue(ctx, "other", "not a map"))
	cancel()
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	require.ElementsMatch(t, []string{"tiles.download", "other"}, got)
	for i, name := range got {
		if name == "tiles.download" {
			require.Equal(t, "abc", data[i]["region_id"])
		} else {
			require.Empty(t, data[i])
		}
	}
}

func TestImmediateQueueDetachesCancellation(t *testing.T) {
	errs := make(chan error, 1)
	q := NewImmediateQueue(func(ctx context.Context, _ string, _ map[string]any) {
		errs <- ctx.Err()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, q.Enqueue(ctx, "tiles.download", map[string]any{}))
	q.Wait()
	require.NoError(t, <-errs)
}
