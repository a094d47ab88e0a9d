package slides3d

import "log/slog"

// RuntimeConfig carries process-wide flags into the slide constructors.
type RuntimeConfig struct {
	// Debug turns on timing logs, path overlays and the pointer gizmo.
	Debug bool
	// Mobile disables pointer displacement.
	Mobile bool
	// Logger is used for all logging; slog.Default() is used if it's nil.
	Logger *slog.Logger
}

func (rc RuntimeConfig) logger() *slog.Logger {
	if rc.Logger != nil {
		return rc.Logger
	}
	return slog.Default()
}
