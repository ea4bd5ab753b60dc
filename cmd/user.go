package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/ui"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create [username]",
	Short: "Create an account",
	Long: `Creates an account that can log in and keep a friend list.

Prompts for the username when not given as an argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var username string
		if len(args) == 1 {
			username = args[0]
		} else {
			err := huh.NewInput().
				Title("Username").
				Value(&username).
				Run()
			if err != nil {
				return err
			}
		}

		u := &contact.User{Username: username}
		if err := dir.CreateUser(cmd.Context(), u); err != nil {
			return fmt.Errorf("creating account: %w", err)
		}

		fmt.Println(ui.Success.Render("Account created: ") + u.Username + "  " + ui.ID.Render(u.ID))
		return nil
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
