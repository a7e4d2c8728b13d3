package redis_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookieproxy/pkg/cookiejar"
	"github.com/dmitrymomot/cookieproxy/pkg/redis"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Every call moves time forward so write scores never tie.
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupStore(t *testing.T, opts ...redis.JarStoreOption) (*redis.JarStore, *miniredis.Miniredis, *stepClock) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &stepClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]redis.JarStoreOption{redis.WithClock(clock.Now)}, opts...)
	return redis.NewJarStore(client, opts...), mr, clock
}

func TestJarStore_AppendAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr, _ := setupStore(t)

	_, ok, err := store.Get(ctx, "X")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Append(ctx, "X", cookiejar.Pair{Name: "a", Value: "1"}))
	require.NoError(t, store.Append(ctx, "X", cookiejar.Pair{Name: "b", Value: "2"}, cookiejar.Pair{Name: "a", Value: "3"}))

	jar, ok, err := store.Get(ctx, "X")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cookiejar.Jar{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "a", Value: "3"}}, jar)

	has, err := store.Has(ctx, "X")
	require.NoError(t, err)
	assert.True(t, has)

	assert.True(t, mr.Exists("cookieproxy:jar:X"))
	assert.Equal(t, cookiejar.DefaultTTL, mr.TTL("cookieproxy:jar:X"))
}

func TestJarStore_Put(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := setupStore(t, redis.WithPrefix("test:"))

	require.NoError(t, store.Append(ctx, "X", cookiejar.Pair{Name: "a", Value: "1"}))
	require.NoError(t, store.Put(ctx, "X", cookiejar.Jar{{Name: "b", Value: "2"}}))

	jar, ok, err := store.Get(ctx, "X")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cookiejar.Jar{{Name: "b", Value: "2"}}, jar)

	require.NoError(t, store.Put(ctx, "X", nil))
	has, err := store.Has(ctx, "X")
	require.NoError(t, err)
	assert.False(t, has)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestJarStore_TTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr, _ := setupStore(t, redis.WithTTL(time.Minute))

	require.NoError(t, store.Append(ctx, "X", cookiejar.Pair{Name: "a", Value: "1"}))

	mr.FastForward(30 * time.Second)
	_, ok, err := store.Get(ctx, "X")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, mr.TTL("cookieproxy:jar:X"), "reads must not refresh expiry")

	require.NoError(t, store.Append(ctx, "X", cookiejar.Pair{Name: "b", Value: "2"}))
	assert.Equal(t, time.Minute, mr.TTL("cookieproxy:jar:X"), "writes refresh expiry")

	mr.FastForward(time.Minute)
	_, ok, err = store.Get(ctx, "X")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJarStore_Capacity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := setupStore(t, redis.WithCapacity(3))

	for i := range 3 {
		require.NoError(t, store.Append(ctx, "id-"+strconv.Itoa(i), cookiejar.Pair{Name: "n", Value: strconv.Itoa(i)}))
	}
	// Rewriting id-0 makes id-1 the least recently written.
	require.NoError(t, store.Append(ctx, "id-0", cookiejar.Pair{Name: "n", Value: "again"}))
	require.NoError(t, store.Append(ctx, "id-3", cookiejar.Pair{Name: "n", Value: "3"}))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	has, _ := store.Has(ctx, "id-1")
	assert.False(t, has, "least recently written identity should be evicted")
	for _, id := range []string{"id-0", "id-2", "id-3"} {
		has, err := store.Has(ctx, id)
		require.NoError(t, err)
		assert.True(t, has, id)
	}
}

func TestJarStore_PrunesExpiredIndexEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr, clock := setupStore(t, redis.WithCapacity(2), redis.WithTTL(time.Minute))

	require.NoError(t, store.Append(ctx, "old", cookiejar.Pair{Name: "n", Value: "1"}))
	clock.Advance(2 * time.Minute)
	mr.FastForward(2 * time.Minute)

	require.NoError(t, store.Append(ctx, "a", cookiejar.Pair{Name: "n", Value: "2"}))
	require.NoError(t, store.Append(ctx, "b", cookiejar.Pair{Name: "n", Value: "3"}))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	for _, id := range []string{"a", "b"} {
		has, _ := store.Has(ctx, id)
		assert.True(t, has, id)
	}
}

func TestJarStore_CorruptEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr, _ := setupStore(t)

	_, err := mr.Push("cookieproxy:jar:X", "not json")
	require.NoError(t, err)

	_, _, err = store.Get(ctx, "X")
	require.Error(t, err)
	assert.ErrorIs(t, err, redis.ErrCorruptJar)
}

func TestJarStore_FromConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redis.NewJarStoreFromConfig(client, cookiejar.Config{Prefix: "cfg:", Capacity: 1, TTL: time.Hour})
	require.NoError(t, store.Append(ctx, "X", cookiejar.Pair{Name: "a", Value: "1"}))

	assert.True(t, mr.Exists("cfg:jar:X"))
	assert.Equal(t, time.Hour, mr.TTL("cfg:jar:X"))
}

func TestJarStore_CaptureInjectRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := setupStore(t)

	h := make(map[string][]string)
	h["Set-Cookie"] = []string{"a=1; Path=/", "b=2"}
	_, err := cookiejar.Capture(ctx, store, "X", h)
	require.NoError(t, err)

	out, err := cookiejar.Inject(ctx, store, "X", nil)
	require.NoError(t, err)
	assert.Equal(t, "a=1;b=2", out.Get("Cookie"))
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	check := redis.Healthcheck(client, time.Second)
	require.NoError(t, check(context.Background()))

	mr.Close()
	err := check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)

		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + mr.Addr() + "/0",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		assert.NoError(t, client.Close())
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})
}
