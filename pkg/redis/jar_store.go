package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/cookieproxy/pkg/cookiejar"
)

// JarStore implements cookiejar.Store on Redis so several proxy replicas can
// share client jars.
//
// Each jar is a list of JSON-encoded pairs under "<prefix>jar:<identity>" whose
// expiry is reset on every write. A sorted set "<prefix>jars" scores identities
// by their last write time and drives capacity eviction.
type JarStore struct {
	db       redis.UniversalClient
	prefix   string
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

var _ cookiejar.Store = (*JarStore)(nil)

// JarStoreOption configures a JarStore.
type JarStoreOption func(*JarStore)

// WithPrefix namespaces every key written by the store.
func WithPrefix(prefix string) JarStoreOption {
	return func(s *JarStore) { s.prefix = prefix }
}

// WithCapacity bounds the number of identities kept.
func WithCapacity(n int) JarStoreOption {
	if n <= 0 {
		panic("WithCapacity: capacity must be positive")
	}
	return func(s *JarStore) { s.capacity = n }
}

// WithTTL sets how long a jar survives after its last write.
func WithTTL(d time.Duration) JarStoreOption {
	if d <= 0 {
		panic("WithTTL: duration must be > 0")
	}
	return func(s *JarStore) { s.ttl = d }
}

// WithClock replaces time.Now for write scores.
func WithClock(now func() time.Time) JarStoreOption {
	if now == nil {
		panic("WithClock: nil clock")
	}
	return func(s *JarStore) { s.now = now }
}

// NewJarStore wraps redisClient with cookiejar defaults for capacity and TTL.
func NewJarStore(redisClient redis.UniversalClient, opts ...JarStoreOption) *JarStore {
	s := &JarStore{
		db:       redisClient,
		prefix:   "cookieproxy:",
		capacity: cookiejar.DefaultCapacity,
		ttl:      cookiejar.DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewJarStoreFromConfig applies the non-zero values of cfg.
func NewJarStoreFromConfig(redisClient redis.UniversalClient, cfg cookiejar.Config, opts ...JarStoreOption) *JarStore {
	configOpts := make([]JarStoreOption, 0, 3)
	if cfg.Prefix != "" {
		configOpts = append(configOpts, WithPrefix(cfg.Prefix))
	}
	if cfg.Capacity > 0 {
		configOpts = append(configOpts, WithCapacity(cfg.Capacity))
	}
	if cfg.TTL > 0 {
		configOpts = append(configOpts, WithTTL(cfg.TTL))
	}
	return NewJarStore(redisClient, append(configOpts, opts...)...)
}

// Get reads the jar without touching its expiry.
func (s *JarStore) Get(ctx context.Context, identity string) (cookiejar.Jar, bool, error) {
	items, err := s.db.LRange(ctx, s.jarKey(identity), 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}

	jar := make(cookiejar.Jar, 0, len(items))
	for _, item := range items {
		var p cookiejar.Pair
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			return nil, false, errors.Join(ErrCorruptJar, err)
		}
		jar = append(jar, p)
	}
	return jar, true, nil
}

func (s *JarStore) Has(ctx context.Context, identity string) (bool, error) {
	n, err := s.db.Exists(ctx, s.jarKey(identity)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Put replaces the jar. An empty jar removes the identity, since Redis has no
// empty lists.
func (s *JarStore) Put(ctx context.Context, identity string, jar cookiejar.Jar) error {
	items, err := encodePairs(jar)
	if err != nil {
		return err
	}

	key := s.jarKey(identity)
	_, err = s.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(items) == 0 {
			pipe.ZRem(ctx, s.indexKey(), identity)
			return nil
		}
		pipe.RPush(ctx, key, items...)
		pipe.PExpire(ctx, key, s.ttl)
		pipe.ZAdd(ctx, s.indexKey(), s.score(identity))
		return nil
	})
	if err != nil {
		return err
	}
	return s.evict(ctx)
}

// Append extends the jar in a single MULTI/EXEC transaction.
func (s *JarStore) Append(ctx context.Context, identity string, pairs ...cookiejar.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	items, err := encodePairs(pairs)
	if err != nil {
		return err
	}

	key := s.jarKey(identity)
	_, err = s.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, items...)
		pipe.PExpire(ctx, key, s.ttl)
		pipe.ZAdd(ctx, s.indexKey(), s.score(identity))
		return nil
	})
	if err != nil {
		return err
	}
	return s.evict(ctx)
}

// Len returns the number of identities tracked in the recency index.
func (s *JarStore) Len(ctx context.Context) (int, error) {
	n, err := s.db.ZCard(ctx, s.indexKey()).Result()
	return int(n), err
}

// evict drops index members whose jars have expired, then pops the least
// recently written identities until the index fits the capacity.
func (s *JarStore) evict(ctx context.Context) error {
	cutoff := s.now().Add(-s.ttl).UnixMicro()
	if err := s.db.ZRemRangeByScore(ctx, s.indexKey(), "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return err
	}

	n, err := s.db.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return err
	}
	excess := n - int64(s.capacity)
	if excess <= 0 {
		return nil
	}

	popped, err := s.db.ZPopMin(ctx, s.indexKey(), excess).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(popped))
	for _, z := range popped {
		if id, ok := z.Member.(string); ok {
			keys = append(keys, s.jarKey(id))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return s.db.Del(ctx, keys...).Err()
}

func (s *JarStore) score(identity string) redis.Z {
	return redis.Z{Score: float64(s.now().UnixMicro()), Member: identity}
}

func (s *JarStore) jarKey(identity string) string {
	return s.prefix + "jar:" + identity
}

func (s *JarStore) indexKey() string {
	return s.prefix + "jars"
}

func encodePairs(pairs []cookiejar.Pair) ([]any, error) {
	items := make([]any, 0, len(pairs))
	for _, p := range pairs {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		items = append(items, string(b))
	}
	return items, nil
}
