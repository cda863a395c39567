package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/arcbuilder/cmd/arcbuilder"
	"github.com/arthur-debert/arcbuilder/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := arcbuilder.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		stop()
		os.Exit(arcbuilder.ExitCode(err))
	}
}
