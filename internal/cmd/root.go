// Package cmd holds the market command line: the HTTP server plus database maintenance commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "market",
	Short: "Artisan marketplace API",
	Long: `Serves the artisan marketplace: catalog search, carts, checkout,
orders, reviews and the seller dashboard.

State lives in memory by default. Set STORE_DRIVER=postgres to use
PostgreSQL, REDIS_ADDR to keep carts in Redis and KAFKA_BROKERS to
publish order events.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
