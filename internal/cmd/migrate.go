package cmd

import (
	"github.com/safar/artisan-market/internal/config"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/logger"
	"github.com/safar/artisan-market/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the PostgreSQL schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	db, err := openDatabase(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := database.RunMigrations(cmd.Context(), db, migrations.Files, args[0])
	if err != nil {
		return err
	}

	for _, name := range applied {
		log.Info().Str("file", name).Msg("migration applied")
	}
	log.Info().Int("count", len(applied)).Str("direction", args[0]).Msg("migrations complete")
	return nil
}
