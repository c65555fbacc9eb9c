package cmd

import (
	"fmt"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/jon4hz/funfacts/internal/client"
	"github.com/spf13/cobra"
)

var clientCmdFlags struct {
	Server string
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Talk to a running funfacts server",
	Long:  `Manage users, facts and favorites of a running funfacts server through its HTTP API.`,
	Example: `funfacts client users list
  funfacts client facts add --content "Octopi have three hearts" --category biology
  funfacts client random --category biology
  funfacts client favorites add 1 2 --server http://facts.example.com`,
}

var clientHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		msg, err := c.Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

func init() {
	clientCmd.PersistentFlags().StringVar(&clientCmdFlags.Server, "server", "http://localhost:8000", "Base URL of the funfacts server")
	clientCmd.AddCommand(clientHealthCmd)
	rootCmd.AddCommand(clientCmd)
}

func newAPIClient() (*client.Client, error) {
	return client.New(clientCmdFlags.Server)
}

func parseIDArg(arg, label string) (uint, error) {
	raw, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || raw == 0 {
		return 0, fmt.Errorf("invalid %s %q", label, arg)
	}
	id, err := safecast.ToUint(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", label, arg, err)
	}
	return id, nil
}

// stringFlag returns a pointer to the flag value if it was set on the command line.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}
