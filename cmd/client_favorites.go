package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clientFavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the favorites of a user",
}

var clientFavoritesListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List the favorite facts of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseIDArg(args[0], "user id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		favorites, err := c.ListFavorites(cmd.Context(), userID)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(favorites))
		for _, f := range favorites {
			rows = append(rows, []string{formatID(f.ID), formatID(f.FactID), f.Category, f.FactText})
		}
		printTable([]string{"ID", "Fact ID", "Category", "Fact"}, rows)
		return nil
	},
}

var clientFavoritesAddCmd = &cobra.Command{
	Use:   "add <user-id> <fact-id>",
	Short: "Add a fact to the favorites of a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseIDArg(args[0], "user id")
		if err != nil {
			return err
		}
		factID, err := parseIDArg(args[1], "fact id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		result, msg, err := c.AddFavorite(cmd.Context(), userID, factID)
		if err != nil {
			return err
		}
		if result.Favorite != nil {
			fmt.Printf("%s (favorite id %d)\n", msg, result.Favorite.ID)
			return nil
		}
		fmt.Println(msg)
		return nil
	},
}

var clientFavoritesRemoveCmd = &cobra.Command{
	Use:   "remove <favorite-id>",
	Short: "Remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "favorite id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := c.RemoveFavorite(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Removed from favorites!")
		return nil
	},
}

func init() {
	clientFavoritesCmd.AddCommand(
		clientFavoritesListCmd,
		clientFavoritesAddCmd,
		clientFavoritesRemoveCmd,
	)
	clientCmd.AddCommand(clientFavoritesCmd)
}
