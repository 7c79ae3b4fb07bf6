package schemert

import (
	"fmt"

	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
)

// defaultStackDepthLimit bounds the simulated call stack before the
// trampoline triggers a minor collection (spec.md §9: "N is a
// configuration constant, not derived from the platform").
const defaultStackDepthLimit = 4096

// defaultGCLogRate caps how many GC-cycle diagnostic lines Config.Logger
// is allowed to emit per second before GCLogThrottle starts dropping them.
const defaultGCLogRate = 5

// Config holds everything New resolves once and the Runtime then treats as
// immutable for its lifetime: the program's environment table, its
// diagnostics sink, and its resource limits.
type Config struct {
	EnvTable        obj.EnvTable
	Logger          *diag.Logger
	GCLogThrottle   *diag.GCLogThrottle
	StackDepthLimit int
	HeapLimit       int
}

// Option configures a Runtime at construction time. Grounded on
// eventloop/options.go's LoopOption/loopOptionImpl pattern: each Option is
// a small value wrapping a function that may itself fail validation,
// rather than a bare func(*Config) that cannot report a bad argument.
type Option interface {
	apply(*Config) error
}

type optionFunc func(*Config) error

func (f optionFunc) apply(cfg *Config) error { return f(cfg) }

// WithEnvTable supplies the compiler-emitted environment table the
// collector consults to resolve a closure's live variable-ids. Left unset,
// the table is empty; resolveConfig rejects an explicit nil table.
func WithEnvTable(t obj.EnvTable) Option {
	return optionFunc(func(cfg *Config) error {
		cfg.EnvTable = t
		return nil
	})
}

// WithLogger sets the structured logger GC-cycle diagnostics and fatal
// errors are written to. The zero value (unset) leaves diag.Discard in
// place.
func WithLogger(l *diag.Logger) Option {
	return optionFunc(func(cfg *Config) error {
		if l == nil {
			return fmt.Errorf("schemert: WithLogger given a nil logger")
		}
		cfg.Logger = l
		return nil
	})
}

// WithStackDepthLimit overrides how many nested calls the trampoline
// tolerates before bouncing into a minor collection.
func WithStackDepthLimit(n int) Option {
	return optionFunc(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("schemert: stack depth limit must be positive, got %d", n)
		}
		cfg.StackDepthLimit = n
		return nil
	})
}

// WithHeapLimit bounds the number of live heap entries gc_malloc will
// permit before reporting an allocation failure. Zero (the default) means
// unbounded.
func WithHeapLimit(n int) Option {
	return optionFunc(func(cfg *Config) error {
		if n < 0 {
			return fmt.Errorf("schemert: heap limit must not be negative, got %d", n)
		}
		cfg.HeapLimit = n
		return nil
	})
}

// WithGCLogRate overrides the GC-cycle diagnostic rate limit (lines/sec).
func WithGCLogRate(maxPerSecond int) Option {
	return optionFunc(func(cfg *Config) error {
		cfg.GCLogThrottle = diag.NewGCLogThrottle(maxPerSecond)
		return nil
	})
}

// resolveConfig applies defaults and then every opt in order, matching
// eventloop/options.go's resolveLoopOptions.
func resolveConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		EnvTable:        obj.EnvTable{},
		Logger:          diag.Discard,
		StackDepthLimit: defaultStackDepthLimit,
		GCLogThrottle:   diag.NewGCLogThrottle(defaultGCLogRate),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.EnvTable == nil {
		return nil, fmt.Errorf("schemert: WithEnvTable given a nil table")
	}
	return cfg, nil
}
