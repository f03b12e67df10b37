// Package logging builds the zerolog loggers used across argmap.
//
// Three streams exist: progress (stdout, timestamp + message), diagnostics
// (stderr, message only) and service (stderr, full console format). When a
// log file is configured every stream is also written to it as JSON, rotated
// by lumberjack.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ProgressTimeFormat renders progress timestamps with microseconds.
const ProgressTimeFormat = "2006-01-02 15:04:05.000000"

// Options configures New.
type Options struct {
	// Level is one of trace|debug|info|warn|error|disabled. Default info.
	Level string
	// File, when set, receives a JSON copy of every record.
	File string
	// MaxSizeMB and MaxBackups tune rotation of File.
	MaxSizeMB  int
	MaxBackups int
	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Loggers bundles the configured streams.
type Loggers struct {
	Progress    zerolog.Logger
	Diagnostics zerolog.Logger
	Service     zerolog.Logger
	closer      io.Closer
}

// Close flushes and closes the log file, if any.
func (l Loggers) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel maps a level name to a zerolog level; unknown names mean info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel
	case "off", "none":
		return zerolog.Disabled
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// New builds the three loggers described in the package comment.
func New(opts Options) Loggers {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var file io.WriteCloser
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			Compress:   true,
		}
	}
	tee := func(w io.Writer) io.Writer {
		if file == nil {
			return w
		}
		return zerolog.MultiLevelWriter(w, file)
	}
	lvl := ParseLevel(opts.Level)
	out := Loggers{
		Progress:    zerolog.New(tee(ProgressWriter(stdout))).Level(lvl),
		Diagnostics: zerolog.New(tee(DiagnosticsWriter(stderr))).Level(lvl),
		Service:     zerolog.New(tee(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339})).Level(lvl).With().Timestamp().Logger(),
	}
	if file != nil {
		out.closer = file
	}
	return out
}

// ProgressWriter formats records as "<timestamp> <message>". Records
// without a time field print the bare message.
func ProgressWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:             w,
		NoColor:         true,
		TimeFormat:      ProgressTimeFormat,
		PartsOrder:      []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: formatProgressTime,
	}
}

func formatProgressTime(i interface{}) string {
	s, ok := i.(string)
	if !ok {
		return ""
	}
	ts, err := time.Parse(zerolog.TimeFieldFormat, s)
	if err != nil {
		return s
	}
	return ts.Local().Format(ProgressTimeFormat)
}

// DiagnosticsWriter formats records as the bare message.
func DiagnosticsWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
