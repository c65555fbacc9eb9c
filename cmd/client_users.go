package cmd

import (
	"fmt"

	"github.com/jon4hz/funfacts/internal/engine"
	"github.com/spf13/cobra"
)

var clientUsersFlags struct {
	Username string
	Email    string
	Password string
}

var clientUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var clientUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		users, err := c.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{formatID(u.ID), u.Username, u.Email, formatAge(u.CreatedAt)})
		}
		printTable([]string{"ID", "Username", "Email", "Created"}, rows)
		return nil
	},
}

var clientUsersRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		user, err := c.Register(cmd.Context(), engine.NewUser{
			Username: clientUsersFlags.Username,
			Email:    clientUsersFlags.Email,
			Password: clientUsersFlags.Password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("User registered successfully with id %d\n", user.ID)
		return nil
	},
}

var clientUsersLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check a user's credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		userID, err := c.Login(cmd.Context(), clientUsersFlags.Email, clientUsersFlags.Password)
		if err != nil {
			return err
		}
		fmt.Printf("Login successful, user id %d\n", userID)
		return nil
	},
}

var clientUsersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user",
	Long:  `Update a user. Only the flags given on the command line are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "user id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		user, err := c.UpdateUser(cmd.Context(), id, engine.UserUpdate{
			Username: stringFlag(cmd, "username"),
			Email:    stringFlag(cmd, "email"),
			Password: stringFlag(cmd, "password"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("User %d updated: %s <%s>\n", user.ID, user.Username, user.Email)
		return nil
	},
}

var clientUsersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "user id")
		if err != nil {
			return err
		}
		c, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := c.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("User %d deleted\n", id)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{clientUsersRegisterCmd, clientUsersUpdateCmd} {
		cmd.Flags().StringVar(&clientUsersFlags.Username, "username", "", "Username")
		cmd.Flags().StringVar(&clientUsersFlags.Email, "email", "", "Email address")
		cmd.Flags().StringVar(&clientUsersFlags.Password, "password", "", "Password")
	}
	clientUsersLoginCmd.Flags().StringVar(&clientUsersFlags.Email, "email", "", "Email address")
	clientUsersLoginCmd.Flags().StringVar(&clientUsersFlags.Password, "password", "", "Password")

	clientUsersCmd.AddCommand(
		clientUsersListCmd,
		clientUsersRegisterCmd,
		clientUsersLoginCmd,
		clientUsersUpdateCmd,
		clientUsersDeleteCmd,
	)
	clientCmd.AddCommand(clientUsersCmd)
}
