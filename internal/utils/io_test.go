package utils

import (
	"strings"
	"testing"
)

func TestReadPasswordFrom(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "line", input: "hunter2\n", want: "hunter2"},
		{name: "no newline", input: "hunter2", want: "hunter2"},
		{name: "windows newline", input: "hunter2\r\n", want: "hunter2"},
		{name: "spaces kept", input: " two words \n", want: " two words "},
		{name: "only first line", input: "first\nsecond\n", want: "first"},
		{name: "empty line", input: "\n", want: ""},
		{name: "nothing", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPasswordFrom(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadPasswordFrom(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
