package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

type Logger struct {
	Verbose bool
	Debug   bool

	Out io.Writer
	Err io.Writer
}

// Lines from concurrent sweeps must not interleave.
var writeMu sync.Mutex

func (l Logger) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l Logger) err() io.Writer {
	if l.Err != nil {
		return l.Err
	}
	return os.Stderr
}

func write(w io.Writer, prefix, msg string, args ...any) {
	writeMu.Lock()
	defer writeMu.Unlock()
	fmt.Fprintf(w, prefix+msg+"\n", args...)
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		write(l.out(), color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		write(l.out(), color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	write(l.err(), color.YellowString("[warn] "), msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	write(l.err(), color.RedString("[error] "), msg, args...)
}
