package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hmans/rolodex/internal/graph"
	"github.com/hmans/rolodex/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and print a bearer token",
	Long: `Verifies the account password and prints a signed token.

Use the token with the serve endpoint or the graphql command:

  rolodex graphql --token <token> '{ me { username } }'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := requireCodec()
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, "Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		engine := graph.NewEngine(graph.NewResolver(dir, codec))
		resp := engine.Execute(cmd.Context(),
			`mutation Login($username: String!, $password: String!) {
				login(username: $username, password: $password) { value }
			}`,
			map[string]interface{}{"username": args[0], "password": string(password)},
			"Login")
		if len(resp.Errors) > 0 {
			return fmt.Errorf("login failed: %s", resp.Errors[0].Message)
		}

		tok, _ := resp.Data["login"].(map[string]interface{})
		value, _ := tok["value"].(string)
		if value == "" {
			return fmt.Errorf("login returned no token")
		}

		fmt.Fprintln(os.Stderr, ui.Success.Render("Logged in."))
		fmt.Println(value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
