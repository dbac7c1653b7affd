package initializers

import (
	"log/slog"
	"os"
)

// SetupLogger installs the process wide slog logger: text in development,
// JSON in production.
func SetupLogger(cfg *Config) {
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}
