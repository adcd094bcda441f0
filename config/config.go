// Package config holds the numeric and dispatch configuration of the fp
// packages. Values come from a literal [Config], optionally overridden by
// environment variables read once per process.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Environment variables read by [FromEnv].
const (
	EnvNoSIMD         = "FP_NO_SIMD"
	EnvM4RIBatch      = "FP_M4RI_K"
	EnvM4RIMinRows    = "FP_M4RI_MIN_ROWS"
	EnvM4RIMinColumns = "FP_M4RI_MIN_COLUMNS"
	EnvM4RIMinDensity = "FP_M4RI_MIN_DENSITY"
	EnvLogVerbosity   = "FP_LOG_V"
)

// MaxM4RIBatch is the largest supported number of rows batched in a M4RI
// table (the table then holds 2^MaxM4RIBatch combinations).
const MaxM4RIBatch = 10

// ErrInvalidConfig is returned by [Config.Validate].
var ErrInvalidConfig = errors.New("invalid fp configuration")

// Config is the set of tunables of the kernel.
type Config struct {
	// NoSIMD forces the scalar kernels regardless of CPU support.
	NoSIMD bool `json:"no_simd"`

	// M4RIBatch is the number k of pivot rows batched per M4RI table.
	M4RIBatch int `json:"m4ri_batch"`

	// M4RIMinRows and M4RIMinColumns are the dimensions from which
	// row reduction over F_2 switches to M4RI when left on automatic.
	M4RIMinRows    int `json:"m4ri_min_rows"`
	M4RIMinColumns int `json:"m4ri_min_columns"`

	// M4RIMinDensity is the fraction of nonzero entries below which the
	// table is not worth building.
	M4RIMinDensity float64 `json:"m4ri_min_density"`

	// LogVerbosity is the stdr verbosity: 0 info, 1 debug, 2 trace.
	LogVerbosity int `json:"log_verbosity"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		M4RIBatch:      8,
		M4RIMinRows:    256,
		M4RIMinColumns: 256,
		M4RIMinDensity: 0.05,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.M4RIBatch < 1 || c.M4RIBatch > MaxM4RIBatch {
		return fmt.Errorf("%w: m4ri batch %d not in [1, %d]", ErrInvalidConfig, c.M4RIBatch, MaxM4RIBatch)
	}
	if c.M4RIMinRows < 0 || c.M4RIMinColumns < 0 {
		return fmt.Errorf("%w: negative m4ri threshold", ErrInvalidConfig)
	}
	if c.M4RIMinDensity < 0 || c.M4RIMinDensity > 1 {
		return fmt.Errorf("%w: m4ri density %v not in [0, 1]", ErrInvalidConfig, c.M4RIMinDensity)
	}
	if c.LogVerbosity < 0 || c.LogVerbosity > 2 {
		return fmt.Errorf("%w: log verbosity %d not in [0, 2]", ErrInvalidConfig, c.LogVerbosity)
	}
	return nil
}

// MarshalJSON encodes the configuration.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	return json.Marshal(alias(c))
}

// UnmarshalJSON decodes a configuration; absent fields keep their defaults.
func (c *Config) UnmarshalJSON(p []byte) error {
	type alias Config
	a := alias(Default())
	if err := json.Unmarshal(p, &a); err != nil {
		return err
	}
	*c = Config(a)
	return c.Validate()
}

// FromEnv returns c with the fields overridden by the environment
// variables that are set.
func FromEnv(c Config) (Config, error) {
	return fromLookup(c, os.LookupEnv)
}

func fromLookup(c Config, lookup func(string) (string, bool)) (Config, error) {

	if val, ok := lookup(EnvNoSIMD); ok && val != "" {
		// Any non-empty value is considered true, but also parse as bool
		if b, err := strconv.ParseBool(val); err == nil {
			c.NoSIMD = b
		} else {
			c.NoSIMD = true
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvM4RIBatch, &c.M4RIBatch},
		{EnvM4RIMinRows, &c.M4RIMinRows},
		{EnvM4RIMinColumns, &c.M4RIMinColumns},
		{EnvLogVerbosity, &c.LogVerbosity},
	}

	for _, v := range ints {
		if val, ok := lookup(v.name); ok && val != "" {
			x, err := strconv.Atoi(val)
			if err != nil {
				return c, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, v.name, err)
			}
			*v.dst = x
		}
	}

	if val, ok := lookup(EnvM4RIMinDensity); ok && val != "" {
		x, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvM4RIMinDensity, err)
		}
		c.M4RIMinDensity = x
	}

	return c, c.Validate()
}

var (
	global     Config
	globalErr  error
	globalOnce sync.Once
)

// load returns [Default] overridden through lookup, or [Default] and the
// error if an override is invalid.
func load(lookup func(string) (string, bool)) (Config, error) {
	c, err := fromLookup(Default(), lookup)
	if err != nil {
		return Default(), err
	}
	return c, nil
}

// Global returns the process-wide configuration: [Default] overridden by the
// environment. An invalid environment falls back to [Default], and
// [GlobalErr] reports why.
func Global() Config {
	globalOnce.Do(func() {
		global, globalErr = load(os.LookupEnv)
	})
	return global
}

// GlobalErr returns the error that made [Global] ignore the environment, or
// nil.
func GlobalErr() error {
	Global()
	return globalErr
}
