package cmd

import (
	"fmt"

	"github.com/jon4hz/funfacts/internal/engine"
	"github.com/spf13/cobra"
)

var clientFactsFlags struct {
	Content  string
	Category string
	UserID   uint
}

var clientFactsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Manage facts",
}

var clientFactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all facts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		facts, err := c.ListFacts(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(facts))
		for _, f := range facts {
			rows = append(rows, []string{formatID(f.ID), f.Category, f.Content, formatAge(f.CreatedAt)})
		}
		printTable([]string{"ID", "Category", "Fact", "Added"}, rows)
		return nil
	},
}

var clientFactsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new fact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		input := engine.NewFact{
			Content:  clientFactsFlags.Content,
			Category: clientFactsFlags.Category,
		}
		if cmd.Flags().Changed("user-id") {
			input.UserID = &clientFactsFlags.UserID
		}
		fact, err := c.AddFact(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Fact added successfully with id %d\n", fact.ID)
		return nil
	},
}

var clientFactsUpdateCmd = &cobra.Command{
	Use:   "update <fact-id>",
	Short: "Update a fact",
	Long:  `Update a fact. Only the flags given on the command line are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "fact id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		fact, err := c.UpdateFact(cmd.Context(), id, engine.FactUpdate{
			Content:  stringFlag(cmd, "content"),
			Category: stringFlag(cmd, "category"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Fact %d updated: [%s] %s\n", fact.ID, fact.Category, fact.Content)
		return nil
	},
}

var clientFactsDeleteCmd = &cobra.Command{
	Use:   "delete <fact-id>",
	Short: "Delete a fact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "fact id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := c.DeleteFact(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Fact %d deleted\n", id)
		return nil
	},
}

var clientFactsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their number of facts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		counts, err := c.Categories(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(counts))
		for _, cc := range counts {
			rows = append(rows, []string{cc.Category, formatCount(cc.Count)})
		}
		printTable([]string{"Category", "Facts"}, rows)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{clientFactsAddCmd, clientFactsUpdateCmd} {
		cmd.Flags().StringVar(&clientFactsFlags.Content, "content", "", "Text of the fact")
		cmd.Flags().StringVar(&clientFactsFlags.Category, "category", "", "Category of the fact")
	}
	clientFactsAddCmd.Flags().UintVar(&clientFactsFlags.UserID, "user-id", 0, "Id of the user who submitted the fact")

	clientFactsCmd.AddCommand(
		clientFactsListCmd,
		clientFactsAddCmd,
		clientFactsUpdateCmd,
		clientFactsDeleteCmd,
		clientFactsCategoriesCmd,
	)
	clientCmd.AddCommand(clientFactsCmd)
}
