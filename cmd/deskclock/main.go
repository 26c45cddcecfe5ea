package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "deskclock/docs"
	"deskclock/internal/clock"
	"deskclock/internal/config"
	"deskclock/internal/handlers"
	"deskclock/internal/logger"
	"deskclock/internal/metrics"
	"deskclock/internal/models"
	"deskclock/internal/repository"
	"deskclock/internal/repository/db"
	"deskclock/internal/server"
	"deskclock/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Desk clock API
// @version                     1.0
// @description                 Clock state, alarm and event log of a desk clock.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer followed by a token from POST /auth/token.
func main() {
	configPath := flag.String("config", "", "config file (default configs/config.yml)")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of this operator password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := service.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	metrics.Init(nil)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos := repository.NewRepository(sqlDB)

	configured, err := cfg.AlarmConfig()
	if err != nil {
		log.Fatalw("invalid alarm config", "err", err)
	}
	startAlarm := startupAlarm(ctx, repos.AlarmRepo, configured, log)

	melody, err := cfg.Melody()
	if err != nil {
		log.Fatalw("invalid alarm melody", "err", err)
	}

	devs, err := openDevices(cfg, log)
	if err != nil {
		log.Fatalw("failed to open devices", "err", err)
	}
	defer devs.Close(log)

	feed := service.NewStateFeed()
	loop := service.NewClockLoop(service.LoopDeps{
		Time:      clock.NewLocalTimeProvider(clock.SystemSource{}, clock.SwedishDST{}),
		Sensor:    devs.sensor,
		Display:   devs.display,
		Sender:    devs.sender,
		Tone:      devs.tone,
		StateRepo: repos.StateRepo,
		EventRepo: repos.EventRepo,
		AlarmRepo: repos.AlarmRepo,
		Feed:      feed,
		Log:       log,
	}, service.LoopSettings{
		Alarm:      startAlarm,
		Melody:     melody,
		Tempo:      cfg.Alarm.Tempo,
		ErrorPause: cfg.Loop.ErrorPause,
	})

	services := service.NewService(repos, loop, feed, configured, service.AuthSettings{
		PasswordHash: cfg.Auth.PasswordHash,
		SigningKey:   cfg.Auth.SigningKey,
		TokenTTL:     cfg.Auth.TokenTTL,
	})
	if services.Operator.Locked() {
		log.Warnw("auth.password_hash is empty; alarm changes over HTTP are disabled")
	}
	apiHandler := handlers.NewHandler(services, log, handlers.Options{AllowedOrigins: cfg.HTTP.AllowedOrigins})

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		services.Loop.Run(ctx, cfg.Loop.Tick)
	}()

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, loopDone, srv, log)
}

// startupAlarm prefers the alarm saved through the API over the configured one.
func startupAlarm(ctx context.Context, repo repository.AlarmRepo, configured models.AlarmConfig, log *logger.Logger) models.AlarmConfig {
	saved, found, err := repo.Load(ctx)
	if err != nil {
		log.Warnw("failed to load saved alarm; using config", "err", err)
		return configured
	}
	if !found {
		return configured
	}
	log.Infow("using saved alarm", "alarm", saved.Summary())
	return saved
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, loopDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")

	// stop the clock loop; a playing melody is cut short
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	select {
	case <-loopDone:
	case <-ctx.Done():
		log.Warnw("clock loop did not stop in time")
	}
}
