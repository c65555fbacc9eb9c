package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/jon4hz/funfacts/internal/engine"
	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove favorites that point to deleted facts",
	Long:  `Deleting a fact does not remove the favorites that reference it. This command removes those orphaned favorites right away instead of waiting for the maintenance job.`,
	Run:   prune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func prune(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	engine, err := engine.New(cfg, db)
	if err != nil {
		log.Fatalf("failed to create engine: %v", err)
	}
	defer engine.Close() //nolint:errcheck

	log.Info("Pruning orphaned favorites...")

	deleted, err := engine.Favorites.PruneOrphans(cmd.Context())
	if err != nil {
		log.Fatalf("failed to prune favorites: %v", err)
	}

	log.Info("Pruned orphaned favorites", "deleted", deleted)
}
