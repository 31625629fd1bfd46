package upat

import "sync"

// PatternCache caches compiled patterns by source. Get hands out
// clones sharing the cached tree, so callers release their copy
// independently of the cache.
type PatternCache struct {
	cache   sync.Map   // map[string]*Pattern - lock-free reads
	orderMu sync.Mutex // Protects order slice for eviction
	order   []string   // FIFO order for eviction
	maxSize int
	config  Config // Configuration for compiled patterns
}

// NewPatternCache creates a cache with the given configuration. Its
// CacheSize bounds the number of cached patterns.
func NewPatternCache(config Config) *PatternCache {
	config.applyDefaults()
	return &PatternCache{
		order:   make([]string, 0, config.CacheSize),
		maxSize: config.CacheSize,
		config:  config,
	}
}

// Get returns a clone of the compiled pattern for src, compiling and
// caching it if needed. The caller owns the clone.
func (c *PatternCache) Get(src string) (*Pattern, error) {
	// Fast path: lock-free cache lookup via sync.Map
	if p, ok := c.cache.Load(src); ok {
		// A concurrent eviction may have released the master.
		if clone := p.(*Pattern).Clone(); clone.Refs() > 0 {
			return clone, nil
		}
	}

	// Slow path: compile and cache with configured settings
	p, err := CompileWithConfig(src, c.config)
	if err != nil {
		return nil, err
	}

	// Try to store (another goroutine might have stored it already)
	if existing, loaded := c.cache.LoadOrStore(src, p); loaded {
		if clone := existing.(*Pattern).Clone(); clone.Refs() > 0 {
			p.Release()
			return clone, nil
		}
		// The stored master was released by eviction; replace it.
		c.cache.Store(src, p)
	}

	// Clone before eviction can release the master
	clone := p.Clone()

	// Successfully stored - update eviction order
	c.orderMu.Lock()
	c.order = append(c.order, src)

	// Evict oldest if at capacity (FIFO)
	for len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		if old, ok := c.cache.LoadAndDelete(oldest); ok {
			old.(*Pattern).Release()
		}
	}
	c.orderMu.Unlock()

	return clone, nil
}

// MustGet returns a compiled pattern, panicking on error.
func (c *PatternCache) MustGet(src string) *Pattern {
	p, err := c.Get(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	return len(c.order)
}

// Clear removes and releases all cached patterns. Clones handed out
// earlier stay valid.
func (c *PatternCache) Clear() {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	for _, src := range c.order {
		if p, ok := c.cache.LoadAndDelete(src); ok {
			p.(*Pattern).Release()
		}
	}
	c.order = c.order[:0]
}

// Config returns the cache's pattern configuration.
func (c *PatternCache) Config() Config {
	return c.config
}
