// Package logger builds the process-wide zerolog logger for the marketplace
// API. main calls Init once from the loaded config; handlers and services
// receive the result by injection, and Get exists for code that cannot.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options mirrors the LOG_* settings of the API config.
type Options struct {
	// Level is one of trace, debug, info, warn or error. Anything else means info.
	Level string
	// Pretty switches stdout to the console format for local runs.
	Pretty bool
	// Output replaces stdout, mostly for tests.
	Output io.Writer
	// File adds a rotated JSON copy of the log, e.g. /var/log/marketplace/api.log.
	File string
	// Service tags every entry, so API and worker logs can share a sink.
	Service string
}

// Rotation limits for Options.File.
const (
	fileMaxSizeMB  = 100
	fileMaxBackups = 5
	fileMaxAgeDays = 28
)

var levels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

var (
	mu   sync.Mutex
	root *zerolog.Logger
)

// Init builds the logger on first use and returns it. Later calls return the
// same logger and ignore their options.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return *root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := zerolog.New(sink(opts)).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	l := fields.Logger()
	root = &l
	return l
}

// Get returns the logger built by Init and panics if there is none.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		panic("logger: Get called before Init")
	}
	return *root
}

// Reset drops the logger so tests can call Init again.
func Reset() {
	mu.Lock()
	root = nil
	mu.Unlock()
}

func sink(opts Options) io.Writer {
	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if opts.File == "" {
		return out
	}
	return zerolog.MultiLevelWriter(out, &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	})
}

func parseLevel(s string) zerolog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}
