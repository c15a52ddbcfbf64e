package vibes

import (
	"fmt"
	"io"
	"maps"
	"os"

	"go.uber.org/zap"

	"github.com/mgomes/vecscript/heap"
)

const defaultMemoryQuotaBytes = 64 << 20

// Config controls interpreter execution bounds and the vector
// representation exposed to scripts.
type Config struct {
	StepQuota int `yaml:"step_quota"`
	// MemoryQuotaBytes caps each State's heap. It overrides GC.Limit.
	MemoryQuotaBytes int `yaml:"memory_quota_bytes"`
	// VectorKind selects the vec library: VectorKindNative (immutable
	// values) or VectorKindBoxed (mutable userdata).
	VectorKind string      `yaml:"vector_kind"`
	GC         heap.Config `yaml:"gc"`

	Stdout io.Writer   `yaml:"-"`
	Logger *zap.Logger `yaml:"-"`
}

// Engine holds configuration, builtins and libraries shared by every State
// it creates. Register builtins and libraries before creating States; after
// that the Engine is read-only and safe for concurrent use.
type Engine struct {
	config    Config
	log       *zap.Logger
	builtins  map[string]Value
	libraries []Library
}

// NewEngine constructs an Engine with sane defaults and registers built-ins.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = 50000
	}
	if cfg.MemoryQuotaBytes <= 0 {
		cfg.MemoryQuotaBytes = defaultMemoryQuotaBytes
	}
	if cfg.VectorKind == "" {
		cfg.VectorKind = VectorKindNative
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	var kind vectorKind
	switch cfg.VectorKind {
	case VectorKindNative:
		kind = nativeVectors
	case VectorKindBoxed:
		kind = boxedVectors
	default:
		return nil, fmt.Errorf("vibes: unknown vector kind %q (want %q or %q)", cfg.VectorKind, VectorKindNative, VectorKindBoxed)
	}

	engine := &Engine{
		config:   cfg,
		log:      cfg.Logger,
		builtins: make(map[string]Value),
	}

	engine.RegisterBuiltin("assert", builtinAssert)
	engine.RegisterBuiltin("print", builtinPrint)
	engine.RegisterBuiltin("type", builtinType)
	engine.RegisterBuiltin("len", builtinLen)
	engine.RegisterBuiltin("push", builtinPush)
	engine.RegisterBuiltin("pcall", builtinPcall)
	engine.RegisterBuiltin("collect", builtinCollect)
	engine.RegisterBuiltin("heap_bytes", builtinHeapBytes)
	engine.RegisterBuiltin("to_int", builtinToInt)
	engine.RegisterBuiltin("to_float", builtinToFloat)
	engine.RegisterBuiltin("is_nan", builtinIsNaN)
	engine.RegisterLibrary(vectorLibrary(kind))

	engine.log.Debug("engine ready",
		zap.String("vector_kind", cfg.VectorKind),
		zap.Int("step_quota", cfg.StepQuota),
		zap.Int("memory_quota_bytes", cfg.MemoryQuotaBytes))
	return engine, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin registers a callable global available to scripts.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, fn)
}

// RegisterLibrary adds a library opened in every new State. A library with
// the name of an earlier one replaces it.
func (e *Engine) RegisterLibrary(lib Library) {
	for i, existing := range e.libraries {
		if existing.Name == lib.Name {
			e.libraries[i] = lib
			return
		}
	}
	e.libraries = append(e.libraries, lib)
}

// Builtins returns a copy of the registered builtin map.
func (e *Engine) Builtins() map[string]Value {
	out := make(map[string]Value, len(e.builtins))
	maps.Copy(out, e.builtins)
	return out
}

// NewState creates an isolated State with its own heap and opens every
// registered library in it.
func (e *Engine) NewState() (*State, error) {
	return newState(e)
}

// VectorKind reports which vector representation scripts see.
func (e *Engine) VectorKind() string { return e.config.VectorKind }

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%d memory=%dB vectors=%s", e.config.StepQuota, e.config.MemoryQuotaBytes, e.config.VectorKind)
}
