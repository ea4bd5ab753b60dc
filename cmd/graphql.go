package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/hmans/rolodex/internal/auth"
	"github.com/hmans/rolodex/internal/graph"
)

var (
	queryJSON       bool
	queryVariables  string
	queryOperation  string
	queryToken      string
	querySchemaOnly bool
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query"},
	Short:   "Execute a GraphQL query or mutation",
	Long: `Execute a GraphQL query or mutation against the local directory.

The argument should be a valid GraphQL query or mutation string.

Examples:
  # Count contacts
  rolodex graphql '{ personCount }'

  # Find a contact
  rolodex graphql '{ findPerson(name: "Arto Hellas") { phone address { city } } }'

  # Use variables
  rolodex graphql -v '{"name": "Arto Hellas"}' 'query Find($name: String!) { findPerson(name: $name) { phone } }'

  # Act as a logged-in account
  rolodex graphql --token <token> '{ me { username friends { name } } }'

  # Read from stdin (useful for complex queries or escaping issues)
  echo '{ personCount }' | rolodex graphql

  # Print the schema
  rolodex graphql --schema`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return nil
		}
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			fmt.Print(graph.SDL)
			return nil
		}

		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		var variables map[string]interface{}
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		codec, err := requireCodec()
		if err != nil {
			return err
		}

		authorization := ""
		if queryToken != "" {
			authorization = "Bearer " + queryToken
		}
		ctx, err := auth.NewBuilder(dir, codec).Resolve(context.Background(), authorization)
		if err != nil {
			return err
		}

		resp := graph.NewEngine(graph.NewResolver(dir, codec)).Execute(ctx, query, variables, queryOperation)
		if len(resp.Errors) > 0 {
			return formatGraphQLErrors(resp)
		}

		data, err := json.Marshal(resp.Data)
		if err != nil {
			return err
		}
		if queryJSON {
			fmt.Println(string(data))
		} else {
			fmt.Println(string(pretty.Color(pretty.Pretty(data), nil)))
		}
		return nil
	},
}

// readFromStdin reads the query from stdin if data is available.
func readFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}

	// Stdin is a terminal, nothing piped
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// formatGraphQLErrors folds the response errors into a single error.
func formatGraphQLErrors(resp *graph.Response) error {
	if len(resp.Errors) == 1 {
		return fmt.Errorf("graphql: %s", resp.Errors[0].Message)
	}
	var msgs []string
	for _, e := range resp.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql errors:\n  %s", strings.Join(msgs, "\n  "))
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	graphqlCmd.Flags().StringVar(&queryToken, "token", "", "Bearer token to act as a logged-in account")
	graphqlCmd.Flags().BoolVar(&querySchemaOnly, "schema", false, "Print the GraphQL schema and exit")
	rootCmd.AddCommand(graphqlCmd)
}
