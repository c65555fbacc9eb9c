package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clientRandomFlags struct {
	Category string
}

var clientRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random fact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		fact, err := c.RandomFact(cmd.Context(), clientRandomFlags.Category)
		if err != nil {
			return err
		}
		fmt.Println(factStyle.Render(fact.Content))
		fmt.Println(mutedStyle.Render(fmt.Sprintf("#%d · %s", fact.ID, fact.Category)))
		return nil
	},
}

func init() {
	clientRandomCmd.Flags().StringVar(&clientRandomFlags.Category, "category", "", "Only pick facts of this category")
	clientCmd.AddCommand(clientRandomCmd)
}
