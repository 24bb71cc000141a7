package scrape

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DebugDirEnv names the environment variable that, when set, enables saving
// page HTML for manual inspection whenever a source finds no job cards.
const DebugDirEnv = "JOB_SCOUT_DEBUG_DIR"

// captureDebugHTML saves the page markup to <dir>/<source>_debug.html.
// Best effort: every failure is swallowed after logging, since a debug
// artifact must never fail a scrape.
func captureDebugHTML(logger *zap.Logger, source, html string) {
	dir := os.Getenv(DebugDirEnv)
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("could not create debug dir", zap.String("source", source), zap.Error(err))
		return
	}
	path := filepath.Join(dir, source+"_debug.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		logger.Warn("could not save debug HTML", zap.String("source", source), zap.Error(err))
		return
	}
	logger.Info("saved page HTML for inspection", zap.String("source", source), zap.String("path", path))
}
