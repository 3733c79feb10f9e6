package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with a stored password",
	Long:  `Lists every tag with a stored password. Passwords are masked.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.ListKeys(context.Background(), workflows.ListKeysOptions{Env: env()})
		if err != nil {
			fmt.Println(formatKeysError(err, ""))
			return err
		}

		if len(result.Tags) == 0 {
			fmt.Println("No keys stored.")
			fmt.Println(hintLine("Run " + ui.Code.Sprint("tagkeys keys add <tag>") + " to add one"))
			return nil
		}

		for _, tag := range result.Tags {
			fmt.Printf("%-24s  %s\n", ui.Tag.Sprint(tag), ui.Muted.Sprint(ui.Mask(result.Keys[tag])))
		}
		return nil
	},
}
