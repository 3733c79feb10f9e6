package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadPasswordFrom reads the first line of r as a password. The trailing
// line ending is removed; other whitespace is kept since it is part of the
// password. An empty first line is an empty password.
func ReadPasswordFrom(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if err == io.EOF && line == "" {
		return "", fmt.Errorf("no password provided on stdin")
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
