// Package logger provides leveled logging for tagkeys commands.
//
// Output is prefixed and colored by level. Two flags control verbosity:
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages as well
//
// Warnings and errors are always shown on the error stream.
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d keys", count)
//
// Out and Err default to os.Stdout and os.Stderr. Tests set them to buffers.
// Passwords must never be passed to any method.
package logger
