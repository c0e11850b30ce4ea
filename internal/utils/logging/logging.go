// Package logging builds the leveled logging capability passed to each
// component. Messages go to two sinks: the console at one level, the
// log file at another.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/models"

	"github.com/rs/zerolog"
)

// Logger writes leveled messages to the console and the log file.
type Logger struct {
	console   zerolog.Logger
	file      zerolog.Logger
	out       io.Writer
	verbosity int
	logFile   *os.File
}

// New opens the configured log file and returns the logging capability
// for this run.
func New(set *models.Settings) (*Logger, error) {
	f, err := os.OpenFile(set.Paths.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, consts.PermsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", set.Paths.LogFile, err)
	}

	l := newLogger(set, os.Stdout, f)
	l.logFile = f

	l.file.Info().Msgf("=========== %s ===========", time.Now().Format(time.RFC1123Z))
	return l, nil
}

// newLogger wires the two sinks. Split out so tests can capture both.
func newLogger(set *models.Settings, console, file io.Writer) *Logger {
	cw := zerolog.ConsoleWriter{
		Out:         console,
		FormatLevel: consoleLevelTag,
	}
	fw := zerolog.ConsoleWriter{
		Out:        file,
		NoColor:    true,
		TimeFormat: set.Logging.DateFormat,
	}

	return &Logger{
		console:   zerolog.New(cw).Level(sinkLevel(set.Logging.ConsoleLevel)),
		file:      zerolog.New(fw).Level(sinkLevel(set.Logging.Level)).With().Timestamp().Logger(),
		out:       console,
		verbosity: set.Logging.Verbosity,
	}
}

// Discard returns a logger whose sinks all drop their input. Handy for
// tests of components that require the capability.
func Discard() *Logger {
	set := &models.Settings{}
	set.Logging.Level = consts.LogLevelError
	set.Logging.ConsoleLevel = consts.LogLevelError
	l := newLogger(set, io.Discard, io.Discard)
	l.console = l.console.Level(zerolog.Disabled)
	l.file = l.file.Level(zerolog.Disabled)
	return l
}

// ToWriter returns a logger with both sinks directed at w, open to
// debug level. Tests use this to capture component output.
func ToWriter(w io.Writer) *Logger {
	set := &models.Settings{}
	set.Logging.Level = consts.LogLevelDebug
	set.Logging.ConsoleLevel = consts.LogLevelDebug
	set.Logging.Verbosity = 3
	return newLogger(set, w, w)
}

// I logs at info level.
func (l *Logger) I(format string, args ...any) {
	l.console.Info().Msgf(format, args...)
	l.file.Info().Msgf(format, args...)
}

// S logs a success at info level, colored on the console.
func (l *Logger) S(format string, args ...any) {
	l.console.Info().Msgf(consts.ColorGreen+format+consts.ColorReset, args...)
	l.file.Info().Msgf(format, args...)
}

// W logs at warn level.
func (l *Logger) W(format string, args ...any) {
	l.console.Warn().Msgf(format, args...)
	l.file.Warn().Msgf(format, args...)
}

// E logs at error level.
func (l *Logger) E(format string, args ...any) {
	l.console.Error().Msgf(format, args...)
	l.file.Error().Msgf(format, args...)
}

// D logs at debug level when the run verbosity is at or above the
// given level.
func (l *Logger) D(level int, format string, args ...any) {
	if level > l.verbosity {
		return
	}
	l.console.Debug().Msgf(format, args...)
	l.file.Debug().Msgf(format, args...)
}

// P prints a plain line to the console only. Used for progress output.
func (l *Logger) P(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Close releases the log file.
func (l *Logger) Close() {
	if l.logFile != nil {
		_ = l.logFile.Close()
	}
}

// sinkLevel maps a configured level name onto the zerolog level for
// one sink. Unknown names fall back to info.
func sinkLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case consts.LogLevelDebug:
		return zerolog.DebugLevel
	case consts.LogLevelInfo:
		return zerolog.InfoLevel
	case consts.LogLevelWarning, "WARN":
		return zerolog.WarnLevel
	case consts.LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// consoleLevelTag renders the colored level tags on the console sink.
func consoleLevelTag(i any) string {
	lvl, _ := i.(string)
	switch lvl {
	case zerolog.LevelDebugValue:
		return consts.ColorYellow + "[Debug]" + consts.ColorReset
	case zerolog.LevelInfoValue:
		return consts.ColorCyan + "[Info]" + consts.ColorReset
	case zerolog.LevelWarnValue:
		return consts.ColorYellow + "[Warn]" + consts.ColorReset
	case zerolog.LevelErrorValue:
		return consts.ColorRed + "[ERROR]" + consts.ColorReset
	default:
		return lvl
	}
}
