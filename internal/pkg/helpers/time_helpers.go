package helpers

import (
	"time"

	"github.com/rs/zerolog"
)

// DurationOrDefault parses a configured duration such as "24h". An empty value yields
// fallback silently; an unparsable one is logged under name and also yields fallback.
func DurationOrDefault(lgr zerolog.Logger, name, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		lgr.Warn().Err(err).Str("setting", name).Str("value", value).Dur("fallback", fallback).
			Msg("Invalid duration setting, using fallback")
		return fallback
	}
	return d
}
