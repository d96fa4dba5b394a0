package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/Frostyanand/SpeakEasy/auth"
	"github.com/Frostyanand/SpeakEasy/handlers"
	"github.com/Frostyanand/SpeakEasy/lib/logger/sl"
	"github.com/Frostyanand/SpeakEasy/router"
	"github.com/Frostyanand/SpeakEasy/services"
)

type ServeCmd struct{}

func (cmd *ServeCmd) Run(app *Context) error {
	cfg, log := app.Config, app.Log

	log.Info("starting speakeasy", slog.String("env", cfg.Env), slog.String("store", cfg.Store.Driver))
	log.Debug("debug messages are enabled")

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("failed to close storage", sl.Err(err))
		}
	}()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Error("failed to prepare storage", sl.Err(err))
		return err
	}

	dispatcher, drain, err := newDispatcher(cfg.Notify, log)
	if err != nil {
		log.Error("failed to init notifier", sl.Err(err))
		return err
	}
	defer drain()

	opts := services.Options{StoreTimeout: cfg.Store.Timeout, MaxTxRetries: cfg.Store.MaxTxRetries}
	gate := auth.NewGate(cfg.Auth.Sign, cfg.Auth.TokenTTL)

	h := handlers.New(log,
		services.NewAccountService(log, store, gate, dispatcher, cfg.Auth.OTPTTL, opts),
		services.NewSpeakerService(log, store, opts),
		services.NewBookingService(log, store, dispatcher, opts),
	)

	server := fiber.New(fiber.Config{
		AppName:      "SpeakEasy",
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	})
	router.SetupRoutes(server, h, gate)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	failed := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := server.Listen(cfg.HTTPServer.Address); err != nil {
			failed <- err
		}
	}()

	select {
	case sign := <-stop:
		log.Info("application stopping", slog.String("signal", sign.String()))
	case err := <-failed:
		log.Error("failed to start server", sl.Err(err))
		return err
	}

	if err := server.Shutdown(); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")
	return nil
}
