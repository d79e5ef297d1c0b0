package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to a LogHandler writing to the default slog logger.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// New returns a StackError for op. A nil err yields nil so callers can wrap
// unconditionally.
func New(op string, kind ErrorKind, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StackError{Op: op, Kind: kind, Key: key, Err: err}
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *StackError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// ReportBuildError sends a build error to the global handler.
func ReportBuildError(err *BuildError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := getHandler(); h != nil {
		h.HandleBuildError(err)
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("stackui.main")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// RecoverBuild converts a panic raised by container content into a reported
// BuildError. It must be deferred directly by the function evaluating the
// content. onPanic, if non-nil, runs after the report.
func RecoverBuild(view string, generation int, onPanic func()) {
	r := recover()
	if r == nil {
		return
	}
	be := &BuildError{
		View:       view,
		Generation: generation,
		Recovered:  r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
	if err, ok := r.(error); ok {
		be.Err = err
	}
	ReportBuildError(be)
	if onPanic != nil {
		onPanic()
	}
}

// CaptureStack returns the stack of its caller's caller, one
// "function\n\tfile:line" entry per frame. Frames inside the Go runtime are
// left out, so a trace captured in a deferred recover starts at the panic
// site.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for n > 0 {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(frame.Line))
			sb.WriteByte('\n')
		}
		if !more {
			break
		}
	}
	return sb.String()
}
