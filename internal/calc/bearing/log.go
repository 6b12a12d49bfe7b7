package bearing

import "log/slog"

var logger = slog.Default()

// SetLogger replaces the logger used for unit resolution warnings.
// Call it once at startup, before serving calculations.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
