package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <page.html>",
	Short: "Show which fragments of a page the stored keys cover",
	Long: `Lists the protected fragments of a page with the tags each requires,
marking tags without a stored password. Nothing is decrypted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Status(context.Background(), workflows.StatusOptions{Env: env(), Input: args[0]})
		if err != nil {
			fmt.Println(formatDocumentError(err, args[0]))
			if isExpectedError(err) {
				return nil
			}
			return err
		}

		if len(result.Fragments) == 0 {
			fmt.Println("No protected fragments in " + ui.Path.Sprint(args[0]) + ".")
			return nil
		}

		for _, f := range result.Fragments {
			missing := make(map[string]bool)
			for _, tag := range f.Missing {
				missing[tag] = true
			}

			tags := make([]string, len(f.Tags))
			for i, tag := range f.Tags {
				if missing[tag] {
					tags[i] = ui.Error.Sprint(tag)
				} else {
					tags[i] = ui.Success.Sprint(tag)
				}
			}

			state := ui.Success.Sprint("available")
			if !f.Available() {
				state = ui.Muted.Sprint("locked")
			}
			fmt.Printf("%-10s  %-12s  %s\n", f.ID, state, strings.Join(tags, ", "))
		}

		fmt.Printf("\n%d of %d fragments can be unlocked\n", result.AvailableCount(), len(result.Fragments))
		return nil
	},
}
