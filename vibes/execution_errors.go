package vibes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mgomes/vecscript/heap"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is a script failure with its source location. The
// underlying cause is available through errors.Is and errors.As.
type RuntimeError struct {
	Type      string
	Message   string
	CodeFrame string
	Frames    []StackFrame

	cause error
}

type assertionFailureError struct {
	message string
}

func (e *assertionFailureError) Error() string {
	return e.message
}

const (
	runtimeErrorTypeBase           = "RuntimeError"
	runtimeErrorTypeAssertion      = "AssertionError"
	runtimeErrorTypeType           = "TypeError"
	runtimeErrorTypeRange          = "RangeError"
	runtimeErrorTypeDivisionByZero = "DivisionByZero"
	runtimeErrorTypeOutOfMemory    = "OutOfMemory"
	runtimeErrorFrameHead          = 8
	runtimeErrorFrameTail          = 8
)

var errStepQuotaExceeded = errors.New("step quota exceeded")

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 && frame.Pos.Column > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

func (re *RuntimeError) Unwrap() error {
	return re.cause
}

func classifyRuntimeErrorType(err error) string {
	if err == nil {
		return runtimeErrorTypeBase
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Type
	}
	var assertionErr *assertionFailureError
	switch {
	case errors.As(err, &assertionErr):
		return runtimeErrorTypeAssertion
	case errors.Is(err, heap.ErrOutOfMemory):
		return runtimeErrorTypeOutOfMemory
	case errors.Is(err, ErrDivisionByZero):
		return runtimeErrorTypeDivisionByZero
	case errors.Is(err, ErrIndexOutOfRange):
		return runtimeErrorTypeRange
	case errors.Is(err, ErrTypeMismatch):
		return runtimeErrorTypeType
	default:
		return runtimeErrorTypeBase
	}
}

func newAssertionFailureError(message string) error {
	return &assertionFailureError{message: message}
}

func isHostControlSignal(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, errStepQuotaExceeded) ||
		errors.Is(err, ErrStateClosed)
}

// isFatal reports whether err must unwind past pcall.
func isFatal(err error) bool {
	return isHostControlSignal(err) || errors.Is(err, heap.ErrOutOfMemory) || errors.Is(err, heap.ErrClosed)
}

// errorMessage strips location details from script errors.
func errorMessage(err error) string {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Message
	}
	return err.Error()
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return exec.newRuntimeError(runtimeErrorTypeBase, fmt.Sprintf(format, args...), nil, pos)
}

func (exec *Execution) typeErrorAt(pos Position, format string, args ...any) error {
	err := typeErrorf(format, args...)
	return exec.newRuntimeError(runtimeErrorTypeType, err.Error(), err, pos)
}

func (exec *Execution) newRuntimeError(kind string, message string, cause error, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		frames = append(frames, StackFrame(exec.callStack[i]))
	}
	frames = append(frames, StackFrame{Function: "<script>", Pos: pos})

	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}
	return &RuntimeError{Type: kind, Message: message, CodeFrame: codeFrame, Frames: frames, cause: cause}
}

func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	if isHostControlSignal(err) {
		return err
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return exec.newRuntimeError(classifyRuntimeErrorType(err), err.Error(), err, pos)
}
