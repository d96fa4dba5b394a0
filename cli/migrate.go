package cli

import (
	"context"
	"log/slog"

	"github.com/Frostyanand/SpeakEasy/lib/logger/sl"
)

// MigrateCmd creates the tables or indexes of the configured store.
type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(app *Context) error {
	const op = "cli.MigrateCmd.Run"
	log := app.Log.With(slog.String("op", op), slog.String("store", app.Config.Store.Driver))

	ctx := context.Background()

	store, err := openStore(ctx, app.Config.Store)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	ctx, cancel := context.WithTimeout(ctx, app.Config.Store.Timeout)
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Error("failed to migrate storage", sl.Err(err))
		return err
	}

	log.Info("storage is up to date")
	return nil
}
