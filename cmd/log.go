package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/tagkeys/internal/audit"
	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logTag       string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logTag, "tag", "", "filter by tag")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logTag = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays what tagkeys did to keys and pages. Passwords are never logged.

Examples:
  tagkeys log -n 10
  tagkeys log --tag guild
  tagkeys log --operation unlock,verify --since 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	result, err := workflows.Log(context.Background(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Tag:        logTag,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	switch {
	case errors.Is(err, kerrors.ErrNoAuditLog):
		fmt.Println("No audit log entries found.")
		return nil
	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		fmt.Println(errorLine(err.Error()))
		return nil
	case err != nil:
		fmt.Println(errorLine("Failed to read audit log: " + err.Error()))
		return err
	}

	Logger.Debugf("Parsed %d entries, %d after filtering", result.TotalEntriesBeforeFilter, len(result.Entries))

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if len(result.Entries) == 0 {
		fmt.Println("No audit log entries found matching the filters.")
		return nil
	}

	for _, e := range result.Entries {
		fmt.Printf("%-19s  %-10s  %s\n", workflows.FormatDateTime(e.Timestamp), e.Operation, workflows.FormatDetails(e))
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
