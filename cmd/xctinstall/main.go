package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/xctinstall/internal/cli"
	"github.com/arthur-debert/xctinstall/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, output.Error(err, output.SupportsColor(os.Stderr)))
		stop()
		os.Exit(1)
	}
}
