package vibes

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Compile parses source. The returned Script may be run any number of
// times in States created by e.
func (e *Engine) Compile(source string) (*Script, error) {
	p := newParser(source)
	program, parseErrors := p.ParseProgram()
	if len(parseErrors) > 0 {
		return nil, combineErrors(parseErrors)
	}
	return &Script{engine: e, program: program, source: source}, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := ""
	for _, err := range errs {
		if msg != "" {
			msg += "\n\n"
		}
		msg += err.Error()
	}
	return errors.New(msg)
}

// Run evaluates the script in st and returns the value of its last
// statement. On success the result is left on top of the stack so it stays
// rooted until the host pops it.
func (s *Script) Run(ctx context.Context, st *State) (Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if st.closed {
		return NewNil(), ErrStateClosed
	}
	if st.engine != s.engine {
		return NewNil(), fmt.Errorf("script compiled by a different engine")
	}

	exec := &Execution{
		state:     st,
		script:    s,
		ctx:       ctx,
		quota:     s.engine.config.StepQuota,
		callStack: make([]callFrame, 0, 8),
	}

	base := st.Top()
	result, err := exec.evalStatements(s.program.Statements)
	st.SetTop(base)
	if err != nil {
		st.log.Debug("script failed",
			zap.Int("steps", exec.steps),
			zap.String("type", classifyRuntimeErrorType(err)),
			zap.Error(err))
		return NewNil(), err
	}
	st.Push(result)
	st.log.Debug("script finished",
		zap.Int("steps", exec.steps),
		zap.Int("heap_bytes", st.heap.Allocated()))
	return result, nil
}

// Execute compiles source, runs it in a fresh State and returns the result
// formatted as a string. The State is closed before returning.
func (e *Engine) Execute(ctx context.Context, source string) (string, error) {
	script, err := e.Compile(source)
	if err != nil {
		return "", err
	}
	st, err := e.NewState()
	if err != nil {
		return "", err
	}
	defer st.Close()

	result, err := script.Run(ctx, st)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}
