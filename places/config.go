// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package places

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultRadius         uint = 10000
	MaxRadius             uint = 50000
	DefaultRateLimit           = 10
	DefaultRequestTimeout      = 10 * time.Second
)

// Config holds configuration for a places provider client.
type Config struct {
	// APIKey authenticates requests against the provider.
	APIKey string

	// Radius is the nearby-search radius in meters.
	// Default: 10000
	Radius uint

	// RateLimit caps outgoing requests per second. Zero disables the limiter.
	// Default: 10
	RateLimit int

	// RequestTimeout bounds a single provider request.
	// Default: 10s
	RequestTimeout time.Duration

	// Language is an optional BCP 47 tag for localized results, e.g. "en" or "pt-BR".
	Language string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithRadius sets the nearby-search radius in meters.
func WithRadius(meters uint) ConfigOption {
	return func(c *Config) {
		c.Radius = meters
	}
}

// WithRateLimit sets the maximum number of requests per second.
func WithRateLimit(qps int) ConfigOption {
	return func(c *Config) {
		c.RateLimit = qps
	}
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// WithLanguage sets the result language.
func WithLanguage(lang string) ConfigOption {
	return func(c *Config) {
		c.Language = lang
	}
}

// DefaultConfig returns a Config with the default radius, rate limit and timeout.
// The API key is left empty.
func DefaultConfig() *Config {
	return &Config{
		Radius:         DefaultRadius,
		RateLimit:      DefaultRateLimit,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("GOOGLE_MAPS_API_KEY")),
//	    WithRadius(5000),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims the API key, folds an unset radius to the default and
// canonicalizes the language tag separator.
func (c *Config) Normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Language = strings.ReplaceAll(strings.TrimSpace(c.Language), "_", "-")
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" {
		return ErrAPIKeyRequired
	}
	if c.Radius > MaxRadius {
		return fmt.Errorf("places config: Radius must be at most %d meters", MaxRadius)
	}
	if c.RateLimit < 0 {
		return errors.New("places config: RateLimit must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("places config: RequestTimeout must be positive")
	}
	return nil
}
