// Package heap implements the garbage-collected object heap used by the
// interpreter: a single allocator for every collectable kind, an intrusive
// list of all live objects, and an incremental tri-color mark & sweep
// collector with a backward write barrier.
//
// A Heap is not safe for concurrent use. Each interpreter state owns one.
package heap

import (
	"go.uber.org/zap"
)

const (
	defaultPause    = 200
	defaultStepMul  = 200
	defaultStepSize = 1024
)

// Config controls collector pacing and the allocation limit.
type Config struct {
	// Limit caps the accounted bytes. Zero disables the limit.
	Limit int `yaml:"limit"`
	// Pause is the percentage the heap must grow over the live size
	// before a new cycle starts.
	Pause int `yaml:"pause"`
	// StepMul is the collector speed relative to allocation, in percent.
	StepMul int `yaml:"step_mul"`
	// StepSize is the allocation debt, in bytes, between incremental steps.
	StepSize int `yaml:"step_size"`
}

func (c Config) withDefaults() Config {
	if c.Pause <= 0 {
		c.Pause = defaultPause
	}
	if c.StepMul <= 0 {
		c.StepMul = defaultStepMul
	}
	if c.StepSize <= 0 {
		c.StepSize = defaultStepSize
	}
	return c
}

// Option customises a Heap.
type Option func(*Heap)

// WithLogger sets the logger used for cycle and allocation failure events.
func WithLogger(log *zap.Logger) Option {
	return func(h *Heap) {
		if log != nil {
			h.log = log
		}
	}
}

// Stats is a snapshot of heap accounting.
type Stats struct {
	Allocated    int
	Objects      int
	Threshold    int
	Phase        Phase
	Cycles       int
	Allocations  int
	FreedObjects int
	FreedBytes   int
}

// Heap owns every collectable object of one interpreter state.
type Heap struct {
	cfg Config
	log *zap.Logger

	all   Object
	count int

	currentWhite uint8
	phase        Phase
	gray         []Object
	grayAgain    []Object
	sweep        *Object
	roots        []RootFunc

	allocated int
	threshold int

	cycleFreedBytes   int
	cycleFreedObjects int

	cycles       int
	allocations  int
	freedObjects int
	freedBytes   int

	closed bool
}

// New creates an empty heap in the pause phase.
func New(cfg Config, opts ...Option) *Heap {
	cfg = cfg.withDefaults()
	h := &Heap{
		cfg:          cfg,
		log:          zap.NewNop(),
		currentWhite: white0Bit,
		phase:        PhasePause,
		threshold:    cfg.StepSize * 4,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddRoots registers a root scanner. Roots are scanned when a cycle starts
// and again during the atomic phase, so they need no write barrier.
func (h *Heap) AddRoots(fn RootFunc) {
	h.roots = append(h.roots, fn)
}

// Alloc links o into the heap as a new object of the given kind.
//
// A pending collector step runs before o is linked, so o cannot be reclaimed
// by the step its own allocation triggered. The caller must make o reachable
// from a root before the next allocation.
func (h *Heap) Alloc(o Object, tag Tag, size int) error {
	if h.closed {
		return ErrClosed
	}
	if size <= 0 {
		size = 1
	}
	if h.allocated >= h.threshold {
		h.Step()
	}
	if h.cfg.Limit > 0 && h.allocated+size > h.cfg.Limit {
		h.Collect()
		if h.allocated+size > h.cfg.Limit {
			h.log.Warn("allocation failed",
				zap.Stringer("tag", tag),
				zap.Int("requested", size),
				zap.Int("in_use", h.allocated),
				zap.Int("limit", h.cfg.Limit),
			)
			return &OutOfMemoryError{Tag: tag, Requested: size, InUse: h.allocated, Limit: h.cfg.Limit}
		}
	}

	hdr := o.GCHeader()
	hdr.tag = tag
	hdr.size = size
	hdr.marked = h.currentWhite
	hdr.freed = false
	hdr.next = h.all
	h.all = o

	h.allocated += size
	h.count++
	h.allocations++
	return nil
}

// Resize adjusts the accounted size of a live object that grew or shrank.
func (h *Heap) Resize(o Object, delta int) {
	hdr := o.GCHeader()
	if hdr.freed || delta == 0 {
		return
	}
	hdr.size += delta
	h.allocated += delta
}

// Allocated returns the accounted bytes of all unreclaimed objects.
func (h *Heap) Allocated() int { return h.allocated }

func (h *Heap) Phase() Phase { return h.phase }

func (h *Heap) Stats() Stats {
	return Stats{
		Allocated:    h.allocated,
		Objects:      h.count,
		Threshold:    h.threshold,
		Phase:        h.phase,
		Cycles:       h.cycles,
		Allocations:  h.allocations,
		FreedObjects: h.freedObjects,
		FreedBytes:   h.freedBytes,
	}
}

// Close releases every object regardless of reachability. Later allocations
// fail with ErrClosed.
func (h *Heap) Close() {
	if h.closed {
		return
	}
	for o := h.all; o != nil; {
		next := o.GCHeader().next
		h.free(o)
		o = next
	}
	h.all = nil
	h.gray = nil
	h.grayAgain = nil
	h.sweep = nil
	h.roots = nil
	h.phase = PhasePause
	h.closed = true
	h.log.Debug("heap closed", zap.Int("freed_bytes", h.freedBytes), zap.Int("cycles", h.cycles))
}

func (h *Heap) free(o Object) {
	hdr := o.GCHeader()
	h.allocated -= hdr.size
	h.count--
	h.cycleFreedBytes += hdr.size
	h.cycleFreedObjects++
	h.freedBytes += hdr.size
	h.freedObjects++

	hdr.freed = true
	hdr.next = nil
	hdr.marked = 0
	if r, ok := o.(Releaser); ok {
		r.Release()
	}
}
