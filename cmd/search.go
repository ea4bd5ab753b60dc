package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/search"
	"github.com/hmans/rolodex/internal/store"
	"github.com/hmans/rolodex/internal/ui"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over contacts",
	Long: `Searches contact names, addresses and notes.

The query supports the Bleve query-string syntax: bare terms, AND/OR,
wildcards, quoted phrases and field:term filters.

Examples:
  rolodex search arto
  rolodex search 'city:helsinki'
  rolodex search '"fullstack course"'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		persons, err := dir.AllPersons(cmd.Context(), store.PhoneAny)
		if err != nil {
			return fmt.Errorf("loading contacts: %w", err)
		}

		idx, err := search.NewIndex()
		if err != nil {
			return fmt.Errorf("building search index: %w", err)
		}
		defer idx.Close()

		if err := idx.IndexPersons(persons); err != nil {
			return fmt.Errorf("indexing contacts: %w", err)
		}

		ids, err := idx.Search(args[0], searchLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(ids) == 0 {
			fmt.Println(ui.Muted.Render("No matches."))
			return nil
		}

		byID := make(map[string]*contact.Person, len(persons))
		for _, p := range persons {
			byID[p.ID] = p
		}
		for _, id := range ids {
			if p, ok := byID[id]; ok {
				fmt.Println(ui.ContactRow(p.Name, p.Phone, p.Street, p.City, false))
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (0 for default)")
	rootCmd.AddCommand(searchCmd)
}
