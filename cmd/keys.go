package cmd

import (
	"github.com/spf13/cobra"
)

// KeysCmd groups the commands that manage stored tag passwords.
var KeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the passwords stored for tags",
	Long: `Adds, lists, removes and verifies the passwords tagkeys uses to unlock
pages. Passwords are stored in the key store chosen in config.toml.`,
}

func init() {
	KeysCmd.AddCommand(keysAddCmd)
	KeysCmd.AddCommand(keysListCmd)
	KeysCmd.AddCommand(keysRemoveCmd)
	KeysCmd.AddCommand(keysVerifyCmd)
}
