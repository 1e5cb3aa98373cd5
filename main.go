package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build.
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" default:"withargs" help:"Run the matchmaking and game server"`
	Token   TokenCmd         `cmd:"" help:"Issue a signed player token"`
}

// main - is the entry point of the application. It parses the command line and runs the selected command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gameroom"),
		kong.Description("Two-player matchmaking and game room server"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
