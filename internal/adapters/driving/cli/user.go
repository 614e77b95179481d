package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var userAddAdmin bool

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote [username]",
	Short: "Grant admin rights to an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPromote,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE:  runUserList,
}

func init() {
	userAddCmd.Flags().BoolVar(&userAddAdmin, "admin", false, "create the account with admin rights")
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userPromoteCmd)
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	user, err := userService.Create(context.Background(), args[0], userAddAdmin)
	if err != nil {
		return fmt.Errorf("user add failed: %w", err)
	}

	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	cmd.Printf("Created %s %q\n", role, user.Username)
	return nil
}

func runUserPromote(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	if err := userService.Promote(context.Background(), args[0]); err != nil {
		return fmt.Errorf("user promote failed: %w", err)
	}

	cmd.Printf("Promoted %q to admin\n", args[0])
	return nil
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	users, err := userService.List(context.Background())
	if err != nil {
		return fmt.Errorf("user list failed: %w", err)
	}

	if len(users) == 0 {
		cmd.Println("No accounts.")
		return nil
	}

	for _, user := range users {
		marker := ""
		if user.IsAdmin {
			marker = " (admin)"
		}
		cmd.Printf("  %s%s\n", user.Username, marker)
	}
	return nil
}
