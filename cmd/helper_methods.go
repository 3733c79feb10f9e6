package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
	"github.com/PolarWolf314/tagkeys/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. The returned cleanup function must be deferred.
//
// spinner.FinalMSG values do not need trailing newlines; cleanup adds one
// before printing.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// isExpectedError reports whether err has already been explained to the user
// and should not be reported again by cobra.
func isExpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrInvalidTag),
		errors.Is(err, kerrors.ErrTagNotFound),
		errors.Is(err, kerrors.ErrNoFragments),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, os.ErrNotExist):
		return true
	default:
		return false
	}
}

func successLine(msg string) string {
	return ui.Success.Sprint("✓") + " " + msg
}

func errorLine(msg string) string {
	return ui.Error.Sprint("✗") + " " + msg
}

func hintLine(msg string) string {
	return ui.Info.Sprint("→") + " " + msg
}
