// Package logging builds the zerolog loggers used by the solar binaries.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Profile selects a logger preset.
type Profile int

const (
	// ProfileRuntime logs at info with timestamps.
	ProfileRuntime Profile = iota
	// ProfileTest logs at debug without timestamps or color.
	ProfileTest
)

// Environment overrides, applied after the profile.
const (
	EnvLevel     = "SOLAR_LOG_LEVEL"
	EnvTimestamp = "SOLAR_LOG_TIMESTAMP"
	EnvNoColor   = "SOLAR_LOG_NOCOLOR"
	EnvBypass    = "SOLAR_LOG_BYPASS"
)

// Options is the resolved logger setup.
type Options struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	// Bypass discards all output.
	Bypass bool
	Out    io.Writer
}

// ProfileOptions returns the defaults for p.
func ProfileOptions(p Profile) Options {
	switch p {
	case ProfileTest:
		return Options{Level: zerolog.DebugLevel, NoColor: true, Out: os.Stderr}
	default:
		return Options{Level: zerolog.InfoLevel, Timestamp: true, Out: os.Stderr}
	}
}

// ApplyEnv overrides o from the SOLAR_LOG_* variables using lookup.
// Malformed values are ignored.
func (o Options) ApplyEnv(lookup func(string) (string, bool)) Options {
	if v, ok := lookup(EnvLevel); ok {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v))); err == nil {
			o.Level = lvl
		}
	}
	if b, ok := envBool(lookup, EnvTimestamp); ok {
		o.Timestamp = b
	}
	if b, ok := envBool(lookup, EnvNoColor); ok {
		o.NoColor = b
	}
	if b, ok := envBool(lookup, EnvBypass); ok {
		o.Bypass = b
	}
	return o
}

func envBool(lookup func(string) (string, bool), key string) (bool, bool) {
	v, ok := lookup(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}

// New builds a console logger from o tagged with app.
func New(app string, o Options) zerolog.Logger {
	if o.Bypass {
		return zerolog.Nop()
	}
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    o.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !o.Timestamp {
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(w).Level(o.Level).With()
	if o.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Logger()
}

// Configure builds the logger for profile with environment overrides and
// installs it as the global zerolog logger.
func Configure(app string, p Profile) zerolog.Logger {
	logger := New(app, ProfileOptions(p).ApplyEnv(os.LookupEnv))
	log.Logger = logger
	return logger
}
