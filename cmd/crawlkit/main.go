// Command crawlkit is a command-line client for the CrawlKit API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mozhn/crawlkit-sdk/internal/cli"
)

// Injected at build time via ldflags.
var version = "dev"

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()
	if err := cli.NewRootCmd(env, version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(env.Stderr, "Error:", err)
		cancel()
		os.Exit(cli.ExitCode(err))
	}
}
