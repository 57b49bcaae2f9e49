package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the WebSocket game server"`
	Deal    DealCmd          `cmd:"" help:"Print the opening deal for a seed"`
	Replay  ReplayCmd        `cmd:"" help:"Replay a JSON-lines script against a seed"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("doubleklondike"),
		kong.Description("Two-deck Klondike rule engine with a WebSocket server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
