package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Option adjusts how environment variables are resolved.
type Option func(*env.Options)

// WithEnvironment resolves variables from vars instead of the process environment.
// Tests use it to avoid mutating global state.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) {
		o.Environment = vars
	}
}

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    Port    int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
//	    APIBase string `env:"VITE_API_BASE" envDefault:"http://localhost:4000"`
//	}
func Load(cfg any, opts ...Option) error {
	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}
	if err := env.ParseWithOptions(cfg, o); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
