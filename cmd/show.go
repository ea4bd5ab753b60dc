package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a contact's details",
	Long:  `Shows a single contact including its notes, looked up by exact name.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := dir.PersonByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("looking up contact: %w", err)
		}
		if p == nil {
			return fmt.Errorf("no contact named %q", args[0])
		}

		fmt.Println(ui.Title.Render(p.Name) + "  " + ui.ID.Render(p.ID))
		fmt.Println(ui.Muted.Render("Phone   ") + ui.RenderPhone(p.Phone))
		fmt.Println(ui.Muted.Render("Street  ") + p.Street)
		fmt.Println(ui.Muted.Render("City    ") + p.City)

		if p.Notes == "" {
			return nil
		}

		fmt.Println()
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			fmt.Println(p.Notes)
			return nil
		}
		out, err := r.Render(p.Notes)
		if err != nil {
			fmt.Println(p.Notes)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
