// Package cmd implements the rolodex command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/config"
	"github.com/hmans/rolodex/internal/store"
	"github.com/hmans/rolodex/internal/token"
)

var dir *store.SQLite
var cfg *config.Config
var dataDir string

var rootCmd = &cobra.Command{
	Use:   "rolodex",
	Short: "A contact directory with a GraphQL API",
	Long: `Rolodex keeps a directory of contacts in a local SQLite database and
exposes it through a GraphQL API. Contacts can also be kept as markdown
cards and imported in bulk.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dir, err = store.Open(cfg.Store.Database)
		if err != nil {
			return fmt.Errorf("opening database %s: %w", cfg.Store.Database, err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dir != nil {
			return dir.Close()
		}
		return nil
	},
}

// requireCodec builds the token codec from the configured secret.
// Commands that sign or verify tokens call this in their RunE.
func requireCodec() (*token.Codec, error) {
	secret, err := config.Secret()
	if err != nil {
		return nil, err
	}
	return token.NewCodec(secret), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "Directory holding rolodex.toml and the database")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
