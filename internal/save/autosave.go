package save

import (
	"context"
	"log"
	"time"
)

// Saver is what the autosaver drives. The session's HTTP save endpoint and
// the autosaver share one implementation.
type Saver interface {
	SaveNow() error
}

// Autosave writes the session to disk on the given interval until ctx is
// cancelled. Failures are logged and the loop keeps going; a full disk at
// 03:00 should not kill the game.
func Autosave(ctx context.Context, s Saver, interval time.Duration, logger *log.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.SaveNow(); err != nil && logger != nil {
				logger.Printf("autosave: %v", err)
			}
		}
	}
}
