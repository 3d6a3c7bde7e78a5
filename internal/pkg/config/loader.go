// Package config loads optional tuning knobs fail-open: a malformed or out-of-range value
// never stops the process. The default is used instead and a warning explains why.
//
// Required settings whose absence must stop startup belong in internal/config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Result is a loaded value. Warning is set when the environment value was rejected
// and Value holds the default.
type Result[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnvInt reads an integer. Unset or empty yields the default without a warning.
//
//	res := LoadEnvInt("DB_MAX_OPEN_CONNS", 25, func(v int) error { return ValidateIntRange(v, 1, 1000) })
//	if res.FallbackApplied {
//	    logger.Warn(res.Warning)
//	}
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) Result[int] {
	return load(envKey, defaultValue, strconv.Atoi, validator)
}

// LoadEnvDuration reads a Go duration string such as "30s" or "1h30m".
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) Result[time.Duration] {
	return load(envKey, defaultValue, time.ParseDuration, validator)
}

func load[T any](envKey string, defaultValue T, parse func(string) (T, error), validator func(T) error) Result[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return Result[T]{Value: defaultValue}
	}

	fallback := func(err error) Result[T] {
		return Result[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}

	v, err := parse(raw)
	if err != nil {
		return fallback(err)
	}
	if validator != nil {
		if err := validator(v); err != nil {
			return fallback(err)
		}
	}
	return Result[T]{Value: v}
}
