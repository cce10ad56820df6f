package metadata

import (
	"context"
	"time"
)

// Fetcher retrieves a single document. Implementations issue exactly one
// outbound request per call and never retry.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Defaults applied by NewCollyFetcher when FetchConfig fields are zero.
const (
	// DefaultUserAgent mimics a desktop browser so servers that block
	// generic bots still answer with their real markup.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultTimeout = 10 * time.Second

	DefaultMaxBodyBytes = 2 << 20
)

// FetchConfig controls the outbound request issued per resolve.
type FetchConfig struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int
}

func (c FetchConfig) withDefaults() FetchConfig {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}
