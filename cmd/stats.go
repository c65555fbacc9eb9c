package cmd

import (
	"fmt"

	"github.com/jon4hz/funfacts/internal/database"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display the number of users, facts, favorites and categories in the store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := database.New(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Users: %s\n", formatCount(stats.Users))
		fmt.Printf("Facts: %s\n", formatCount(stats.Facts))
		fmt.Printf("Favorites: %s\n", formatCount(stats.Favorites))
		fmt.Printf("Categories: %s\n", formatCount(stats.Categories))
		if stats.LastFactDate != nil {
			fmt.Printf("Last Fact Added: %s\n", formatAge(*stats.LastFactDate))
		}

		counts, err := db.GetCategoryCounts(cmd.Context())
		if err == nil && len(counts) > 0 {
			fmt.Println("\nFacts per Category:")
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{c.Category, formatCount(c.Count)})
			}
			printTable([]string{"Category", "Facts"}, rows)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
