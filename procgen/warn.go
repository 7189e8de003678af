package procgen

import (
	"log"
	"sync"
)

// LevelMissingOptionalTileData is logged when a level's terrain masks are not
// fully configured. Chunk spawning pauses for that level until they are.
const LevelMissingOptionalTileData = "Missing some tile data for level. Chunks will not spawn until every terrain mask is configured."

// Warner logs each distinct warning once.
type Warner struct {
	mu     sync.Mutex
	logger *log.Logger
	seen   map[string]struct{}
}

func NewWarner(logger *log.Logger) *Warner {
	if logger == nil {
		logger = log.Default()
	}
	return &Warner{logger: logger, seen: make(map[string]struct{})}
}

// DefaultWarner writes to the standard logger.
var DefaultWarner = NewWarner(nil)

// Once logs msg the first time it is seen and reports whether it did.
func (w *Warner) Once(msg string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.seen[msg]; ok {
		return false
	}
	w.seen[msg] = struct{}{}
	w.logger.Printf("WARN %s", msg)
	return true
}

// Forget lets msg be logged again, e.g. after the condition cleared.
func (w *Warner) Forget(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.seen, msg)
}

// WarnOnce logs through DefaultWarner.
func WarnOnce(msg string) bool {
	return DefaultWarner.Once(msg)
}
