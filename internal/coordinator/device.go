package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	models "stokercloud_gateway"
	"stokercloud_gateway/internal/logger"
	"stokercloud_gateway/internal/metrics"
	"stokercloud_gateway/internal/tokenguard"
)

// ControllerFetcher fetches one complete controller snapshot with a session
// token. Satisfied by *stokerapi.Client.
type ControllerFetcher interface {
	ControllerData(ctx context.Context, token string) (models.ControllerSnapshot, error)
}

// Device is the fast poll loop for controller state. It publishes each
// successful snapshot by whole-value swap and keeps the last good one
// through failures.
type Device struct {
	guard    *tokenguard.Guard
	fetcher  ControllerFetcher
	interval time.Duration
	log      *logger.Logger

	mu       sync.RWMutex
	snapshot models.ControllerSnapshot // nil until the first success
	info     models.RefreshInfo
	lastErr  error
}

// NewDevice wires a device-state coordinator to the shared token guard.
func NewDevice(guard *tokenguard.Guard, fetcher ControllerFetcher, interval time.Duration, log *logger.Logger) *Device {
	return &Device{guard: guard, fetcher: fetcher, interval: interval, log: log}
}

// Start performs the first refresh synchronously and then polls in the
// background. A first-cycle failure is a hard setup failure: nothing usable
// exists to serve yet.
func (d *Device) Start(ctx context.Context) error {
	if err := d.Refresh(ctx); err != nil {
		return &SetupError{Err: err}
	}
	go runEvery(ctx, deviceLoop, d.interval, d.log, d.Refresh)
	return nil
}

// Refresh runs one poll cycle. On success the published snapshot is replaced
// atomically; on failure the previous snapshot stays and the error is
// recorded for external reporting.
func (d *Device) Refresh(ctx context.Context) error {
	cycle := uuid.NewString()
	start := time.Now()

	var snapshot models.ControllerSnapshot
	err := d.guard.WithToken(ctx, func(ctx context.Context, token string) error {
		var ferr error
		snapshot, ferr = d.fetcher.ControllerData(ctx, token)
		return ferr
	})
	metrics.ObservePoll(deviceLoop, time.Since(start), err)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.lastErr = err
		return err
	}
	d.snapshot = snapshot
	d.info = models.RefreshInfo{CycleID: cycle, UpdatedAt: time.Now().UTC()}
	d.lastErr = nil
	d.log.Debugw("controller snapshot published", "loop", deviceLoop, "cycle", cycle)
	return nil
}

// Snapshot returns the last good snapshot and its refresh metadata. ok is
// false until the first successful cycle.
func (d *Device) Snapshot() (models.ControllerSnapshot, models.RefreshInfo, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	info := d.info
	if d.lastErr != nil {
		info.LastError = d.lastErr.Error()
	}
	return d.snapshot, info, d.snapshot != nil
}
