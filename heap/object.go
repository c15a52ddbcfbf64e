package heap

import "fmt"

// Tag identifies the kind of a heap object.
type Tag uint8

const (
	TagTable Tag = iota + 1
	TagUserdata
	TagVector
)

func (t Tag) String() string {
	switch t {
	case TagTable:
		return "table"
	case TagUserdata:
		return "userdata"
	case TagVector:
		return "vector"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Color bits. An object with neither white bit nor the black bit set is gray.
const (
	white0Bit uint8 = 1 << iota
	white1Bit
	blackBit

	whiteBits = white0Bit | white1Bit
)

// Color is the tri-color state of an object as seen by the collector.
type Color int

const (
	ColorWhite Color = iota
	ColorGray
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorBlack:
		return "black"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Header is embedded by every collectable object. It carries the type tag,
// the color bits, the accounted size and the link into the heap's list of
// all objects.
type Header struct {
	next   Object
	size   int
	tag    Tag
	marked uint8
	freed  bool
}

// GCHeader lets any struct embedding Header satisfy Object.
func (h *Header) GCHeader() *Header { return h }

func (h *Header) Tag() Tag { return h.tag }

// Size reports the number of bytes accounted to the object.
func (h *Header) Size() int { return h.size }

// Freed reports whether the collector has reclaimed the object.
func (h *Header) Freed() bool { return h.freed }

func (h *Header) Color() Color {
	switch {
	case h.marked&whiteBits != 0:
		return ColorWhite
	case h.marked&blackBit != 0:
		return ColorBlack
	default:
		return ColorGray
	}
}

// Object is anything allocated through a Heap.
type Object interface {
	GCHeader() *Header
}

// Traverser is implemented by objects holding references to other objects.
// Objects that do not implement it are leaves and are blackened as soon as
// they are reached.
type Traverser interface {
	Object
	Traverse(mark func(Object))
}

// Releaser is implemented by objects that drop payload memory when swept.
type Releaser interface {
	Release()
}

// RootFunc reports every object directly reachable from a root set.
type RootFunc func(mark func(Object))
