package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	models "stokercloud_gateway"
	"stokercloud_gateway/internal/events"
	"stokercloud_gateway/internal/logger"
	"stokercloud_gateway/internal/metrics"
	"stokercloud_gateway/internal/tokenguard"
)

// EventFetcher fetches one page of the furnace event log with a session
// token. Satisfied by *stokerapi.Client.
type EventFetcher interface {
	EventData(ctx context.Context, token string, count, offset int) (models.EventBatch, error)
}

// EventsConfig carries the static request parameters of the event loop.
type EventsConfig struct {
	Interval time.Duration
	Count    int
	Offset   int
	Language string
}

// Events is the slow poll loop for the furnace event log. It shares the
// token guard with the device loop, annotates records with the translation
// table and stamps each batch with its request echoes.
type Events struct {
	guard   *tokenguard.Guard
	fetcher EventFetcher
	cfg     EventsConfig
	// translation table fetched once at startup; empty when the fetch
	// failed, which only disables annotation.
	translations map[string]string
	log          *logger.Logger

	mu      sync.RWMutex
	batch   *models.EventBatch
	info    models.RefreshInfo
	lastErr error
}

// NewEvents wires an event-log coordinator to the shared token guard.
func NewEvents(guard *tokenguard.Guard, fetcher EventFetcher, cfg EventsConfig, translations map[string]string, log *logger.Logger) *Events {
	return &Events{guard: guard, fetcher: fetcher, cfg: cfg, translations: translations, log: log}
}

// Start attempts the first refresh and then polls in the background. Unlike
// the device loop, a first-cycle failure only degrades to "no event data
// yet"; it never blocks overall startup.
func (e *Events) Start(ctx context.Context) {
	if err := e.Refresh(ctx); err != nil {
		e.log.Warnw("unable to fetch event log on startup", "err", err)
	}
	go runEvery(ctx, eventLoop, e.cfg.Interval, e.log, e.Refresh)
}

// Refresh runs one poll cycle and publishes a complete EventBatch on
// success.
func (e *Events) Refresh(ctx context.Context) error {
	cycle := uuid.NewString()
	start := time.Now()

	var batch models.EventBatch
	err := e.guard.WithToken(ctx, func(ctx context.Context, token string) error {
		var ferr error
		batch, ferr = e.fetcher.EventData(ctx, token, e.cfg.Count, e.cfg.Offset)
		return ferr
	})
	metrics.ObservePoll(eventLoop, time.Since(start), err)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.lastErr = err
		return err
	}

	batch.Events = events.Annotate(batch.Events, e.translations)
	batch.Count = e.cfg.Count
	batch.Offset = e.cfg.Offset
	batch.TranslationLanguage = e.cfg.Language
	batch.TranslationsLoaded = len(e.translations) > 0

	e.batch = &batch
	e.info = models.RefreshInfo{CycleID: cycle, UpdatedAt: time.Now().UTC()}
	e.lastErr = nil
	metrics.SetEventsPublished(len(batch.Events))
	e.log.Debugw("event batch published", "loop", eventLoop, "cycle", cycle, "events", len(batch.Events))
	return nil
}

// Latest returns the last good event batch and its refresh metadata. ok is
// false until the first successful cycle.
func (e *Events) Latest() (models.EventBatch, models.RefreshInfo, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	info := e.info
	if e.lastErr != nil {
		info.LastError = e.lastErr.Error()
	}
	if e.batch == nil {
		return models.EventBatch{}, info, false
	}
	return *e.batch, info, true
}
