package cmd

import (
	"context"
	"strings"

	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var keysVerifyCmd = &cobra.Command{
	Use:   "verify <page.html>",
	Short: "Check stored passwords against a page's key tests",
	Long: `Runs the key tests embedded in a page's key menu and reports which
stored passwords are right, which are wrong, and which tags have none.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Verifying keys...")
		defer cleanup()

		result, err := workflows.Verify(context.Background(), workflows.VerifyOptions{Env: env(), Input: args[0]})
		if err != nil {
			spinner.FinalMSG = formatDocumentError(err, args[0])
			if isExpectedError(err) {
				return nil
			}
			return err
		}

		var lines []string
		for _, tag := range result.Verified {
			lines = append(lines, successLine(ui.Tag.Sprint(tag)+" unlocked"))
		}
		for _, tag := range result.Incorrect {
			lines = append(lines, errorLine(ui.Tag.Sprint(tag)+" incorrect"))
		}
		for _, tag := range result.NoKey {
			lines = append(lines, "- "+ui.Tag.Sprint(tag)+" "+ui.Muted.Sprint("no key"))
		}
		if len(result.Incorrect) > 0 {
			lines = append(lines, hintLine("Run "+ui.Code.Sprint("tagkeys keys add <tag>")+" to replace a wrong password"))
		}

		spinner.FinalMSG = strings.Join(lines, "\n")
		return nil
	},
}
