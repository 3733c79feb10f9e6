package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/PolarWolf314/tagkeys/internal/unlock"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	unlockOutput string
	unlockDryRun bool
)

func init() {
	unlockCmd.Flags().StringVarP(&unlockOutput, "output", "o", "", "where to write the unlocked page (default <name>.unlocked.html)")
	unlockCmd.Flags().BoolVar(&unlockDryRun, "dry-run", false, "report what would be unlocked without writing")
}

func resetUnlockCommandState() {
	unlockOutput = ""
	unlockDryRun = false
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <page.html>",
	Short: "Reveal every fragment the stored keys can open",
	Long: `Decrypts every protected fragment of a page for which a password is
stored for each of its tags, and writes the page with those fragments
revealed. Key tests in the page's key menu are marked as well.

Fragments that cannot be opened are left as they are.

Examples:
  tagkeys unlock notes.html
  tagkeys unlock notes.html -o /tmp/notes.html
  tagkeys unlock notes.html --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlock,
}

func runUnlock(cmd *cobra.Command, args []string) error {
	spinner, cleanup := startSpinner("Unlocking...")
	defer cleanup()

	result, err := workflows.Unlock(context.Background(), workflows.UnlockOptions{
		Env:    env(),
		Input:  args[0],
		Output: unlockOutput,
		DryRun: unlockDryRun,
	})
	if err != nil {
		spinner.FinalMSG = formatDocumentError(err, args[0])
		if isExpectedError(err) {
			return nil
		}
		return err
	}

	spinner.FinalMSG = formatUnlockResult(result)
	return nil
}

func formatUnlockResult(result *workflows.UnlockResult) string {
	sweep := result.Sweep
	total := len(sweep.Fragments)
	unlocked := len(sweep.Unlocked())

	var lines []string
	if result.DryRun {
		lines = append(lines, ui.Warning.Sprint("[dry-run]")+fmt.Sprintf(" Would unlock %d of %d fragments", unlocked, total))
	} else {
		lines = append(lines, successLine(fmt.Sprintf("Unlocked %d of %d fragments", unlocked, total))+" → "+ui.Path.Sprint(result.Output))
	}
	lines = append(lines, sweepDetails(sweep)...)

	return strings.Join(lines, "\n")
}

// sweepDetails describes every fragment a sweep left locked.
func sweepDetails(sweep *unlock.SweepResult) []string {
	var lines []string
	for _, f := range sweep.Fragments {
		switch f.Outcome {
		case unlock.MissingKey:
			var missing *kerrors.MissingKeyError
			if errors.As(f.Err, &missing) {
				lines = append(lines, "  "+ui.Muted.Sprint(f.ID)+" needs a key for "+ui.Tag.Sprint(missing.Tag))
			}
		case unlock.AuthenticationFailed:
			var authErr *kerrors.AuthenticationError
			if errors.As(f.Err, &authErr) {
				lines = append(lines, "  "+errorLine(f.ID+": wrong password for "+ui.Tag.Sprint(authErr.Tag)))
			}
		case unlock.Malformed:
			lines = append(lines, "  "+errorLine(f.ID+" is malformed"))
		}
	}
	return lines
}

// formatDocumentError formats a page-level error for display to the user.
func formatDocumentError(err error, path string) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFragments):
		return ui.Info.Sprint("ℹ") + " Nothing to unlock in " + ui.Path.Sprint(path)

	case errors.Is(err, os.ErrNotExist):
		return errorLine("Page not found: " + ui.Path.Sprint(path))

	default:
		return formatKeysError(err, "")
	}
}
