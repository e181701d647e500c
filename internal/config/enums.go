package config

import (
	"sort"
	"strings"
)

// normalizer maps loosely formatted strings onto enum values.
type normalizer[T ~string] struct {
	values       map[string]T
	defaultValue T
}

func newNormalizer[T ~string](defaultValue T, values ...T) normalizer[T] {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return normalizer[T]{values: m, defaultValue: defaultValue}
}

func (n normalizer[T]) normalize(raw string) T {
	if v, ok := n.lookup(raw); ok {
		return v
	}
	return n.defaultValue
}

func (n normalizer[T]) lookup(raw string) (T, bool) {
	v, ok := n.values[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

func (n normalizer[T]) validKeys() []string {
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = newNormalizer(LogLevelInfo, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)

// NormalizeLogLevel maps raw onto a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevels.normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = newNormalizer(LogFormatText, LogFormatJSON, LogFormatText)

// NormalizeLogFormat maps raw onto a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormats.normalize(raw)
}

// OutputFormat is the module format of the emitted bundle.
type OutputFormat string

const (
	OutputFormatESM  OutputFormat = "esm"
	OutputFormatCJS  OutputFormat = "cjs"
	OutputFormatIIFE OutputFormat = "iife"
)

var outputFormats = newNormalizer(OutputFormatESM, OutputFormatESM, OutputFormatCJS, OutputFormatIIFE)

// NormalizeOutputFormat maps raw onto an OutputFormat. Empty input yields
// esm; unknown values are kept verbatim so validation can report them.
func NormalizeOutputFormat(raw string) OutputFormat {
	if strings.TrimSpace(raw) == "" {
		return OutputFormatESM
	}
	if v, ok := outputFormats.lookup(raw); ok {
		return v
	}
	return OutputFormat(raw)
}
