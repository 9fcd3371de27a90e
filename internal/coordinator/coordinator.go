package coordinator

import (
	"context"
	"time"

	"stokercloud_gateway/internal/logger"
)

// Loop names used in logs and metrics.
const (
	deviceLoop = "device"
	eventLoop  = "events"
)

// SetupError means the very first device-state cycle failed: there is no
// usable snapshot to serve, so initialization must abort. Unwrap to tell
// "need new credentials" (tokenguard.AuthExhaustedError) from "service
// unreachable" (stokerapi.ProtocolError).
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return "initial controller fetch failed: " + e.Err.Error()
}

func (e *SetupError) Unwrap() error { return e.Err }

// runEvery drives one coordinator's refresh cycles until ctx is canceled.
// Each refresh runs to completion on this goroutine before the next tick is
// read, so cycles for the same coordinator never overlap; ticks that elapse
// mid-cycle are dropped by the ticker.
func runEvery(ctx context.Context, name string, interval time.Duration, log *logger.Logger, refresh func(ctx context.Context) error) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infow("poll loop stopped", "loop", name)
			return
		case <-t.C:
			if err := refresh(ctx); err != nil {
				log.Errorw("poll cycle failed", "loop", name, "err", err)
			}
		}
	}
}
