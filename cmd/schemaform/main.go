package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/goliatone/go-schemaform/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrValidation) {
			fmt.Fprintf(os.Stderr, "schemaform: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
