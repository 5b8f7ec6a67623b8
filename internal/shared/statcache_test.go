package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	Total int `json:"total"`
}

func newTestCache(t *testing.T) *StatsCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatsCache(client, time.Minute)
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return fakeStats{Total: 7}, nil
	}

	var got fakeStats
	require.NoError(t, cache.FetchJSON(ctx, "partners", &got, loader))
	require.Equal(t, 7, got.Total)
	require.Equal(t, 1, calls)

	got = fakeStats{}
	require.NoError(t, cache.FetchJSON(ctx, "partners", &got, loader))
	require.Equal(t, 7, got.Total)
	require.Equal(t, 1, calls)
}

func TestBumpInvalidatesCachedStats(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return fakeStats{Total: calls}, nil
	}

	var got fakeStats
	require.NoError(t, cache.FetchJSON(ctx, "partners", &got, loader))
	require.Equal(t, 1, got.Total)

	require.NoError(t, cache.Bump(ctx))

	require.NoError(t, cache.FetchJSON(ctx, "partners", &got, loader))
	require.Equal(t, 2, got.Total)
	require.Equal(t, 2, calls)
}

func TestNilCacheCallsLoaderDirectly(t *testing.T) {
	var cache *StatsCache
	ctx := context.Background()

	require.NoError(t, cache.Bump(ctx))

	var got fakeStats
	require.NoError(t, cache.FetchJSON(ctx, "partners", &got, func(context.Context) (any, error) {
		return fakeStats{Total: 3}, nil
	}))
	require.Equal(t, 3, got.Total)
}

func TestFetchJSONPropagatesLoaderError(t *testing.T) {
	cache := newTestCache(t)
	boom := errors.New("boom")

	var got fakeStats
	err := cache.FetchJSON(context.Background(), "partners", &got, func(context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}
