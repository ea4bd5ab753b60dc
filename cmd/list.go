package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hmans/rolodex/internal/store"
	"github.com/hmans/rolodex/internal/ui"
)

var (
	listJSON  bool
	listPhone string
	listQuiet bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contacts",
	Long:    `Lists all contacts in the directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := store.PhoneAny
		switch strings.ToLower(listPhone) {
		case "":
		case "yes":
			filter = store.PhoneSet
		case "no":
			filter = store.PhoneUnset
		default:
			return fmt.Errorf("invalid --phone value %q (want yes or no)", listPhone)
		}

		persons, err := dir.AllPersons(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("listing contacts: %w", err)
		}

		sort.Slice(persons, func(i, j int) bool {
			return strings.ToLower(persons[i].Name) < strings.ToLower(persons[j].Name)
		})

		if listJSON {
			data, err := json.MarshalIndent(persons, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if listQuiet {
			for _, p := range persons {
				fmt.Println(p.Name)
			}
			return nil
		}

		if len(persons) == 0 {
			fmt.Println(ui.Muted.Render("No contacts found. Add one with: rolodex graphql"))
			return nil
		}

		headerCol := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		nameStyle := lipgloss.NewStyle().Width(ui.NameColWidth)
		phoneStyle := lipgloss.NewStyle().Width(ui.PhoneColWidth)

		header := lipgloss.JoinHorizontal(lipgloss.Top,
			"  ",
			nameStyle.Render(headerCol.Render("NAME")),
			phoneStyle.Render(headerCol.Render("PHONE")),
			headerCol.Render("ADDRESS"),
		)
		fmt.Println(header)
		fmt.Println(ui.Muted.Render(strings.Repeat("─", ui.NameColWidth+ui.PhoneColWidth+30)))

		for _, p := range persons {
			fmt.Println(ui.ContactRow(p.Name, p.Phone, p.Street, p.City, false))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&listPhone, "phone", "", "Filter by phone presence (yes or no)")
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only print contact names")
	rootCmd.AddCommand(listCmd)
}
