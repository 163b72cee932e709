package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MBurgo/omni/internal/cli"
	"github.com/MBurgo/omni/internal/observability"
)

func main() {
	ctx := context.Background()

	tp, err := observability.InitTracer(ctx, "omni", cli.Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracing disabled: %v\n", err)
	}
	if tp != nil {
		defer tp.Shutdown(ctx)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
