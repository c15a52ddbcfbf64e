package heap

import (
	"fmt"

	"go.uber.org/zap"
)

// Phase is the collector state.
type Phase int

const (
	PhasePause Phase = iota
	PhasePropagate
	PhaseAtomic
	PhaseSweep
)

func (p Phase) String() string {
	switch p {
	case PhasePause:
		return "pause"
	case PhasePropagate:
		return "propagate"
	case PhaseAtomic:
		return "atomic"
	case PhaseSweep:
		return "sweep"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

const (
	sweepMax   = 40
	sweepCost  = 10
	rootCost   = 64
	atomicCost = 256
)

// Step performs one increment of collector work sized by StepSize and
// StepMul, then reschedules the next step.
func (h *Heap) Step() {
	if h.closed {
		return
	}
	budget := h.cfg.StepSize / 100 * h.cfg.StepMul
	if budget <= 0 {
		budget = h.cfg.StepSize
	}
	for {
		budget -= h.singleStep()
		if h.phase == PhasePause {
			h.setThreshold()
			return
		}
		if budget <= 0 {
			break
		}
	}
	h.threshold = h.allocated + h.cfg.StepSize
}

// Collect finishes the cycle in progress and runs one complete cycle, so
// every object unreachable at the time of the call is reclaimed. It returns
// the number of bytes freed.
func (h *Heap) Collect() int {
	if h.closed {
		return 0
	}
	before := h.freedBytes
	for h.phase != PhasePause {
		h.singleStep()
	}
	h.singleStep()
	for h.phase != PhasePause {
		h.singleStep()
	}
	h.setThreshold()
	return h.freedBytes - before
}

// BarrierBack must be called after storing a reference into parent. If the
// collector already traversed parent during this cycle, parent turns gray
// again and is re-traversed in the atomic phase, so a black object never
// ends the mark phase pointing at a white one.
func (h *Heap) BarrierBack(parent Object) {
	if h.phase != PhasePropagate && h.phase != PhaseAtomic {
		return
	}
	hdr := parent.GCHeader()
	if hdr.marked&blackBit == 0 {
		return
	}
	hdr.marked = 0
	h.grayAgain = append(h.grayAgain, parent)
}

func (h *Heap) singleStep() int {
	switch h.phase {
	case PhasePause:
		h.markRoots()
		return rootCost
	case PhasePropagate:
		if len(h.gray) > 0 {
			return h.propagateOne()
		}
		h.phase = PhaseAtomic
		return 0
	case PhaseAtomic:
		h.atomic()
		return atomicCost
	case PhaseSweep:
		return h.sweepStep()
	default:
		panic(fmt.Sprintf("heap: unknown phase %d", h.phase))
	}
}

func (h *Heap) otherWhite() uint8 {
	return h.currentWhite ^ whiteBits
}

func (h *Heap) mark(o Object) {
	if o == nil {
		return
	}
	hdr := o.GCHeader()
	if hdr.freed {
		panic(fmt.Sprintf("heap: reachable %s object was already collected", hdr.tag))
	}
	if hdr.marked&whiteBits == 0 {
		return
	}
	if _, ok := o.(Traverser); !ok {
		hdr.marked = blackBit
		return
	}
	hdr.marked = 0
	h.gray = append(h.gray, o)
}

func (h *Heap) markRoots() {
	h.gray = h.gray[:0]
	h.grayAgain = h.grayAgain[:0]
	h.cycleFreedBytes = 0
	h.cycleFreedObjects = 0
	for _, root := range h.roots {
		root(h.mark)
	}
	h.phase = PhasePropagate
}

func (h *Heap) propagateOne() int {
	last := len(h.gray) - 1
	o := h.gray[last]
	h.gray[last] = nil
	h.gray = h.gray[:last]

	hdr := o.GCHeader()
	hdr.marked = blackBit
	o.(Traverser).Traverse(h.mark)
	return hdr.size
}

func (h *Heap) propagateAll() {
	for len(h.gray) > 0 {
		h.propagateOne()
	}
}

func (h *Heap) atomic() {
	for _, root := range h.roots {
		root(h.mark)
	}
	h.propagateAll()

	again := h.grayAgain
	h.grayAgain = nil
	for _, o := range again {
		if o.GCHeader().marked == 0 {
			h.gray = append(h.gray, o)
		}
	}
	h.propagateAll()

	h.currentWhite = h.otherWhite()
	h.sweep = &h.all
	h.phase = PhaseSweep
}

func (h *Heap) sweepStep() int {
	dead := h.otherWhite()
	for i := 0; i < sweepMax; i++ {
		o := *h.sweep
		if o == nil {
			h.finishCycle()
			return i * sweepCost
		}
		hdr := o.GCHeader()
		if hdr.marked&dead != 0 {
			*h.sweep = hdr.next
			h.free(o)
			continue
		}
		hdr.marked = h.currentWhite
		h.sweep = &hdr.next
	}
	return sweepMax * sweepCost
}

func (h *Heap) finishCycle() {
	h.sweep = nil
	h.phase = PhasePause
	h.cycles++
	h.log.Debug("gc cycle complete",
		zap.Int("cycle", h.cycles),
		zap.Int("freed_bytes", h.cycleFreedBytes),
		zap.Int("freed_objects", h.cycleFreedObjects),
		zap.Int("live_bytes", h.allocated),
		zap.Int("live_objects", h.count),
	)
}

func (h *Heap) setThreshold() {
	h.threshold = max(h.allocated/100*h.cfg.Pause, h.cfg.StepSize)
}
