package upat

// Config holds configuration options for pattern compilation.
// The zero value is ready to use.
type Config struct {
	// DisablePrefilter turns off the rejection filters (coregex
	// automaton, required literals, start rune) built at compile time.
	// Results are identical either way; filters only skip work.
	DisablePrefilter bool

	// CacheSize is the maximum number of patterns a PatternCache keeps
	// (default: 100). Older entries are evicted first.
	CacheSize int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.CacheSize <= 0 {
		c.CacheSize = 100
	}
}
