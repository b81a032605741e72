// Package logger configures the process-wide zerolog logger. Packages that
// cannot carry an injected zerolog.Logger (config loading, repositories)
// log through the helpers here; everything else receives a logger from
// bootstrap.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel names a zerolog level in configuration files
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config controls the global logger
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to the human console format
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

var root zerolog.Logger

// Configure rebuilds the global logger. Unknown levels fall back to info.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(string(config.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	root = zerolog.New(writer).With().
		Timestamp().
		Str("service", "alumni-backend").
		Logger()
	log.Logger = root
}

func Debug() *zerolog.Event { return root.Debug() }
func Info() *zerolog.Event  { return root.Info() }
func Warn() *zerolog.Event  { return root.Warn() }
func Error() *zerolog.Event { return root.Error() }
func Fatal() *zerolog.Event { return root.Fatal() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
