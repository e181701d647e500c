package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyModuleID   = "module_id"
	KeyExtension  = "extension"
	KeyBytes      = "bytes"
	KeyPlugin     = "plugin"
	KeyBuildID    = "build_id"
	KeyPath       = "path"
	KeyEntry      = "entry"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ModuleID(id string) slog.Attr { return slog.String(KeyModuleID, id) }
func Extension(ext string) slog.Attr { return slog.String(KeyExtension, ext) }
func Bytes(n int) slog.Attr { return slog.Int(KeyBytes, n) }
func Plugin(name string) slog.Attr { return slog.String(KeyPlugin, name) }
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Entry(e string) slog.Attr { return slog.String(KeyEntry, e) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
