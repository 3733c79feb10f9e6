// Package utils provides terminal and stdin helpers for reading passwords.
//
//   - ReadPassword: prompts on the terminal without echoing input
//   - ReadPasswordFrom: reads the first line of piped input
//   - IsTerminal: reports whether stdin is a terminal
package utils
