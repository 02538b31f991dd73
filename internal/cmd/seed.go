package cmd

import (
	"github.com/safar/artisan-market/internal/config"
	"github.com/safar/artisan-market/internal/logger"
	"github.com/safar/artisan-market/internal/store/postgres"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the seed collections into PostgreSQL",
	Long: `Inserts the seed shops, products, orders and reviews with their ids
kept. Rows that already exist are skipped, so the command can be rerun.
STORE_SEED_DIR replaces the embedded seed files.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	data, err := loadSeed(cfg.Store)
	if err != nil {
		return err
	}

	db, err := openDatabase(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Seed(cmd.Context(), db, data); err != nil {
		return err
	}

	log.Info().
		Int("shops", len(data.Shops)).
		Int("products", len(data.Products)).
		Int("orders", len(data.Orders)).
		Int("reviews", len(data.Reviews)).
		Msg("seed loaded")
	return nil
}
