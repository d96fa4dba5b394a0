// Package cli holds the speakeasy commands and the wiring they share.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Frostyanand/SpeakEasy/config"
	"github.com/Frostyanand/SpeakEasy/database"
	"github.com/Frostyanand/SpeakEasy/database/mongodb"
	"github.com/Frostyanand/SpeakEasy/database/sqlite"
	"github.com/Frostyanand/SpeakEasy/lib/logger/handlers/slogpretty"
	"github.com/Frostyanand/SpeakEasy/lib/logger/sl"
	"github.com/Frostyanand/SpeakEasy/notify"
)

// Context is handed to every command's Run.
type Context struct {
	Config *config.Config
	Log    *slog.Logger
}

func NewContext(configPath string) (*Context, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &Context{Config: cfg, Log: setupLogger(cfg.Env)}, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

func openStore(ctx context.Context, cfg config.Store) (database.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	switch cfg.Driver {
	case config.StoreMongo:
		return mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StoreSQLite:
		return sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// newDispatcher returns the dispatcher and a func that drains and releases it.
func newDispatcher(cfg config.Notify, log *slog.Logger) (*notify.Dispatcher, func(), error) {
	var sink notify.Sink
	release := func() {}

	switch cfg.Driver {
	case config.NotifySMTP:
		sink = notify.NewMailer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	case config.NotifyAMQP:
		pub, err := notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, nil, err
		}
		sink = notify.NewEventSink(pub)
		release = func() {
			if err := pub.Close(); err != nil {
				log.Error("failed to close amqp publisher", sl.Err(err))
			}
		}
	default:
		sink = notify.NewLogSink(log)
	}

	d := notify.NewDispatcher(sink, cfg.Timeout, log)
	return d, func() {
		d.Wait()
		release()
	}, nil
}
