package cookiejar

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/cookieproxy/pkg/cache"
	"github.com/dmitrymomot/cookieproxy/pkg/logger"
)

const (
	// DefaultCapacity is the number of identities kept before eviction.
	DefaultCapacity = 1000
	// DefaultTTL is how long a jar lives after its last write.
	DefaultTTL = 3 * time.Minute
)

// Store maps client identities to jars.
//
// Get and Has never extend the lifetime of an entry. Put replaces a jar and
// Append extends it; both count as writes for expiry and eviction. Append must
// be atomic per identity.
type Store interface {
	Get(ctx context.Context, identity string) (Jar, bool, error)
	Has(ctx context.Context, identity string) (bool, error)
	Put(ctx context.Context, identity string, jar Jar) error
	Append(ctx context.Context, identity string, pairs ...Pair) error
}

// Config holds store settings loaded from the environment.
type Config struct {
	Driver   string        `env:"COOKIE_STORE_DRIVER" envDefault:"memory"`       // Driver is "memory" or "redis".
	Capacity int           `env:"COOKIE_STORE_CAPACITY" envDefault:"1000"`       // Capacity is the maximum number of client identities.
	TTL      time.Duration `env:"COOKIE_STORE_TTL" envDefault:"3m"`              // TTL is measured from the last write of a jar.
	Prefix   string        `env:"COOKIE_STORE_PREFIX" envDefault:"cookieproxy:"` // Prefix namespaces keys in shared backends.
}

// StoreOption configures a MemoryStore.
type StoreOption func(*storeConfig)

type storeConfig struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// WithCapacity bounds the number of identities held at once.
func WithCapacity(n int) StoreOption {
	if n <= 0 {
		panic("WithCapacity: capacity must be positive")
	}
	return func(c *storeConfig) { c.capacity = n }
}

// WithTTL sets how long a jar survives after its last write.
func WithTTL(d time.Duration) StoreOption {
	if d <= 0 {
		panic("WithTTL: duration must be > 0")
	}
	return func(c *storeConfig) { c.ttl = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	if now == nil {
		panic("WithClock: nil clock")
	}
	return func(c *storeConfig) { c.now = now }
}

// WithLogger reports jars dropped by eviction or expiry at debug level.
func WithLogger(l *slog.Logger) StoreOption {
	return func(c *storeConfig) { c.log = l }
}

// MemoryStore is an in-process Store backed by an LRU cache with expiry.
// Its state is lost on restart; the origin re-issues cookies afterwards.
type MemoryStore struct {
	jars *cache.LRUCache[string, Jar]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding at most DefaultCapacity identities
// for DefaultTTL each, unless overridden by opts.
func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	cfg := storeConfig{
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	jars := cache.NewLRUCache[string, Jar](cfg.capacity,
		cache.WithTTL(cfg.ttl),
		cache.WithClock(cfg.now),
	)
	if cfg.log != nil {
		log := cfg.log.With(logger.Component("cookiejar"))
		jars.SetEvictCallback(func(identity string, jar Jar) {
			log.Debug("cookie jar dropped", logger.ClientIP(identity), logger.Cookies(len(jar)))
		})
	}
	return &MemoryStore{jars: jars}
}

// NewMemoryStoreFromConfig applies the non-zero values of cfg.
func NewMemoryStoreFromConfig(cfg Config, opts ...StoreOption) *MemoryStore {
	configOpts := make([]StoreOption, 0, 2)
	if cfg.Capacity > 0 {
		configOpts = append(configOpts, WithCapacity(cfg.Capacity))
	}
	if cfg.TTL > 0 {
		configOpts = append(configOpts, WithTTL(cfg.TTL))
	}
	return NewMemoryStore(append(configOpts, opts...)...)
}

// Get returns a copy of the jar for identity.
func (s *MemoryStore) Get(_ context.Context, identity string) (Jar, bool, error) {
	jar, ok := s.jars.Peek(identity)
	if !ok {
		return nil, false, nil
	}
	return jar.Clone(), true, nil
}

func (s *MemoryStore) Has(_ context.Context, identity string) (bool, error) {
	return s.jars.Has(identity), nil
}

// Put replaces the jar for identity and restarts its expiry clock.
func (s *MemoryStore) Put(_ context.Context, identity string, jar Jar) error {
	s.jars.Put(identity, jar.Clone())
	return nil
}

// Append adds pairs to the end of the identity's jar, creating it if needed.
func (s *MemoryStore) Append(_ context.Context, identity string, pairs ...Pair) error {
	s.jars.Upsert(identity, func(old Jar, _ bool) Jar {
		return slices.Concat(old, pairs)
	})
	return nil
}

// Len reports the number of resident identities.
func (s *MemoryStore) Len() int {
	return s.jars.Len()
}
