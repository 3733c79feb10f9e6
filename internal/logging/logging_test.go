package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
	}{
		{name: "quiet", logger: Logger{}},
		{name: "verbose", logger: Logger{Verbose: true}, wantInfo: true},
		{name: "debug", logger: Logger{Debug: true}, wantInfo: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out = &out
			l.Err = &errOut

			l.Infof("loaded %d keys", 2)
			l.Debugf("peeling %s", "beta")
			l.Warnf("skipping fragment %s", "secret-1")
			l.Errorf("store closed")

			if got := strings.Contains(out.String(), "[info] loaded 2 keys"); got != tt.wantInfo {
				t.Errorf("info shown = %v, want %v (out %q)", got, tt.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] peeling beta"); got != tt.wantDebug {
				t.Errorf("debug shown = %v, want %v (out %q)", got, tt.wantDebug, out.String())
			}
			if !strings.Contains(errOut.String(), "[warn] skipping fragment secret-1") {
				t.Errorf("expected warning on error stream, got %q", errOut.String())
			}
			if !strings.Contains(errOut.String(), "[error] store closed") {
				t.Errorf("expected error on error stream, got %q", errOut.String())
			}
		})
	}
}
