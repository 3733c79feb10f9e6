package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/PolarWolf314/tagkeys/internal/utils"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	keysAddPasswordStdin bool
	keysAddPage          string
	keysAddOutput        string
)

func init() {
	keysAddCmd.Flags().BoolVar(&keysAddPasswordStdin, "password-stdin", false, "read the password from stdin")
	keysAddCmd.Flags().StringVar(&keysAddPage, "page", "", "unlock this page with the updated keys")
	keysAddCmd.Flags().StringVarP(&keysAddOutput, "output", "o", "", "where to write the unlocked page (default <name>.unlocked.html)")
}

func resetKeysAddCommandState() {
	keysAddPasswordStdin = false
	keysAddPage = ""
	keysAddOutput = ""
}

var keysAddCmd = &cobra.Command{
	Use:   "add <tag> [password]",
	Short: "Store the password for a tag",
	Long: `Stores the password for a tag, replacing any previous one.

Without a password argument the password is read from stdin: prompted
without echo on a terminal, or the first line of piped input.

With --page, the page is unlocked with the updated keys right away and
written next to it, as "tagkeys unlock" would.

Examples:
  tagkeys keys add guild
  echo "s3cret" | tagkeys keys add guild --password-stdin
  tagkeys keys add guild --page notes.html`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runKeysAdd,
}

func runKeysAdd(cmd *cobra.Command, args []string) error {
	tag := args[0]

	password, err := resolvePassword(args)
	if err != nil {
		fmt.Println(errorLine(err.Error()))
		return nil
	}

	spinner, cleanup := startSpinner("Storing key...")
	defer cleanup()

	result, err := workflows.AddKey(context.Background(), workflows.AddKeyOptions{
		Env:      env(),
		Tag:      tag,
		Password: password,
		Page:     keysAddPage,
		Output:   keysAddOutput,
	})
	if err != nil {
		if keysAddPage != "" {
			spinner.FinalMSG = formatDocumentError(err, keysAddPage)
		} else {
			spinner.FinalMSG = formatKeysError(err, tag)
		}
		if isExpectedError(err) {
			return nil
		}
		return err
	}

	var lines []string
	if result.Replaced {
		lines = append(lines, successLine("Replaced the key for "+ui.Tag.Sprint(tag)))
	} else {
		lines = append(lines, successLine("Stored a key for "+ui.Tag.Sprint(tag)))
	}

	if sweep := result.Sweep; sweep != nil {
		lines = append(lines, successLine(fmt.Sprintf("Unlocked %d of %d fragments", len(sweep.Unlocked()), len(sweep.Fragments)))+" → "+ui.Path.Sprint(result.Output))
		lines = append(lines, sweepDetails(sweep)...)
	}

	spinner.FinalMSG = strings.Join(lines, "\n")
	return nil
}

func resolvePassword(args []string) (string, error) {
	if len(args) == 2 {
		if keysAddPasswordStdin {
			return "", errors.New("pass the password as an argument or with --password-stdin, not both")
		}
		return args[1], nil
	}

	if !keysAddPasswordStdin && utils.IsTerminal() {
		return utils.ReadPassword("Password: ")
	}

	Logger.Debugf("Reading password from stdin")
	return utils.ReadPasswordFrom(os.Stdin)
}

// formatKeysError formats a key store error for display to the user.
func formatKeysError(err error, tag string) string {
	switch {
	case errors.Is(err, kerrors.ErrInvalidTag):
		return errorLine(err.Error())

	case errors.Is(err, kerrors.ErrTagNotFound):
		return errorLine("No key stored for " + ui.Tag.Sprint(tag)) + "\n" +
			hintLine("Run " + ui.Code.Sprint("tagkeys keys list") + " to see stored tags")

	case errors.Is(err, kerrors.ErrConfigInvalid):
		return errorLine("Invalid configuration: " + err.Error())

	case errors.Is(err, kerrors.ErrStoreUnavailable):
		return errorLine("Key store unavailable: " + err.Error())

	default:
		return errorLine("Failed: " + err.Error())
	}
}
