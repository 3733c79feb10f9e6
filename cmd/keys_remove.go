package cmd

import (
	"context"

	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var keysRemoveCmd = &cobra.Command{
	Use:   "remove <tag>",
	Short: "Forget the password for a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]

		spinner, cleanup := startSpinner("Removing key...")
		defer cleanup()

		if _, err := workflows.RemoveKey(context.Background(), workflows.RemoveKeyOptions{Env: env(), Tag: tag}); err != nil {
			spinner.FinalMSG = formatKeysError(err, tag)
			if isExpectedError(err) {
				return nil
			}
			return err
		}

		spinner.FinalMSG = successLine("Removed the key for " + ui.Tag.Sprint(tag))
		return nil
	},
}
