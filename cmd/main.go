package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stokercloud_gateway/internal/coordinator"
	"stokercloud_gateway/internal/handlers"
	"stokercloud_gateway/internal/logger"
	"stokercloud_gateway/internal/metrics"
	"stokercloud_gateway/internal/server"
	"stokercloud_gateway/internal/service"
	"stokercloud_gateway/internal/stokerapi"
	"stokercloud_gateway/internal/tokenguard"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml first; the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	metrics.Init()

	username := viper.GetString("stokercloud.username")
	if username == "" {
		log.Fatalw("stokercloud.username is not configured")
	}

	// vendor API client over a shared transport with a hard timeout
	httpClient := &http.Client{Timeout: viper.GetDuration("stokercloud.http_timeout")}
	client := stokerapi.NewClient(
		viper.GetString("stokercloud.api_base"),
		viper.GetString("stokercloud.translation_base"),
		viper.GetString("stokercloud.screen"),
		httpClient,
	)
	guard := tokenguard.New(client, username, log)

	// context for background polling loops
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	translations := fetchTranslations(ctx, client, log)

	device, events, err := startCoordinators(ctx, guard, client, translations, log)
	if err != nil {
		// Setup failure: nothing usable to serve. Distinguish bad account
		// from unreachable service for the operator.
		if tokenguard.IsAuthExhausted(err) {
			log.Fatalw("setup failed: account rejected, re-check stokercloud.username", "err", err)
		}
		log.Fatalw("setup failed: stokercloud unreachable or misbehaving", "err", err)
	}

	auth, err := service.NewAuthService(
		viper.GetString("local_api.access_key"),
		viper.GetString("local_api.signing_key"),
		viper.GetDuration("local_api.token_ttl"),
	)
	if err != nil {
		log.Fatalw("failed to init local API auth", "err", err)
	}

	services := service.NewService(device, events, auth)
	apiHandler := handlers.NewHandler(services, log, viper.GetInt("events.attr_byte_budget"))

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("stokercloud.http_timeout", 15*time.Second)
	viper.SetDefault("stokercloud.update_interval", 30*time.Second)
	viper.SetDefault("stokercloud.event_update_interval", 5*time.Minute)
	viper.SetDefault("stokercloud.event_count", 100)
	viper.SetDefault("stokercloud.event_offset", 0)
	viper.SetDefault("stokercloud.translation_language", "uk")
	viper.SetDefault("events.attr_byte_budget", 16000)
	viper.SetDefault("local_api.token_ttl", time.Hour)
	return viper.ReadInConfig()
}

// fetchTranslations loads the code→text table once at startup. Best-effort:
// a failure only disables event annotation and must never block startup.
func fetchTranslations(ctx context.Context, client *stokerapi.Client, log *logger.Logger) map[string]string {
	language := viper.GetString("stokercloud.translation_language")
	translations, err := client.Translations(ctx, language)
	if err != nil {
		log.Debugw("failed to fetch translations", "language", language, "err", err)
		return nil
	}
	log.Infow("translations loaded", "language", language, "entries", len(translations))
	return translations
}

// startCoordinators runs the first device refresh synchronously (hard
// failure aborts startup) and starts both polling loops. The event loop's
// first failure only degrades to "no event data yet".
func startCoordinators(
	ctx context.Context,
	guard *tokenguard.Guard,
	client *stokerapi.Client,
	translations map[string]string,
	log *logger.Logger,
) (*coordinator.Device, *coordinator.Events, error) {
	device := coordinator.NewDevice(guard, client, viper.GetDuration("stokercloud.update_interval"), log)
	if err := device.Start(ctx); err != nil {
		return nil, nil, err
	}

	events := coordinator.NewEvents(guard, client, coordinator.EventsConfig{
		Interval: viper.GetDuration("stokercloud.event_update_interval"),
		Count:    viper.GetInt("stokercloud.event_count"),
		Offset:   viper.GetInt("stokercloud.event_offset"),
		Language: viper.GetString("stokercloud.translation_language"),
	}, translations, log)
	events.Start(ctx)

	return device, events, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down gateway...")

	// stop polling loops; an abandoned cycle leaves the last-good snapshot as is
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
