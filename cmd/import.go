package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/importer"
	"github.com/hmans/rolodex/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import markdown contact cards",
	Long: `Imports every .md card from the given directory.

Cards carry the contact fields as YAML front matter and free-form notes
as the body:

  ---
  name: Arto Hellas
  phone: 040-123543
  street: Tapiolankatu 5 A
  city: Espoo
  ---
  Met at the fullstack course.

Existing contacts are matched by name and updated in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := importer.Import(cmd.Context(), dir, args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("%s created, %s updated\n",
			ui.Success.Render(fmt.Sprintf("%d", result.Created)),
			ui.Primary.Render(fmt.Sprintf("%d", result.Updated)))

		for _, s := range result.Skipped {
			fmt.Println(ui.Warning.Render("skipped ") + s.Path + ui.Muted.Render(": "+s.Reason.Error()))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export contacts as markdown cards",
	Long:  `Writes every contact as a .md card into the given directory.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := importer.Export(cmd.Context(), dir, args[0])
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("%s cards written\n", ui.Success.Render(fmt.Sprintf("%d", n)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
