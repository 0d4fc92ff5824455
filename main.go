package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/patrikhermansson/vdist/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main is the entry point of the application.
// It sets up console logging and executes the main command with a context
// that is cancelled on interrupt. Log levels are applied by the command tree
// from the VDIST_LOG environment variable and the config file.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		log.Warn().Msg("Interrupt signal received. Exiting...")
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}
