package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces and debug lines.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a MarqueeError.
func (h *LogHandler) HandleError(err *MarqueeError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[marquee error] %s [%s]", err.Op, err.Kind)
		if err.Container != "" {
			fmt.Fprintf(w, " container=%s", err.Container)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[marquee error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[marquee panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[marquee panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// Debugf logs a diagnostic line when Verbose is set.
func (h *LogHandler) Debugf(format string, args ...any) {
	if !h.Verbose {
		return
	}
	fmt.Fprintf(h.out(), "[marquee debug] "+format+"\n", args...)
}
