package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Frostyanand/SpeakEasy/cli"
)

var CLI struct {
	Config string `help:"Config file path." type:"path" env:"CONFIG_PATH"`

	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP API." default:"1"`
	Migrate cli.MigrateCmd `cmd:"" help:"Create the tables or indexes of the configured store."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("speakeasy"),
		kong.Description("Session booking API for speakers and their audience"),
		kong.UsageOnError(),
	)

	app, err := cli.NewContext(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
