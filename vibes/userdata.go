package vibes

import "github.com/mgomes/vecscript/heap"

const estimatedUserdataBytes = 48

// Userdata is an opaque block of host bytes with an optional metatable.
type Userdata struct {
	heap.Header
	meta *Metatable
	data []byte
}

// Bytes returns the block. Callers may modify it in place.
func (u *Userdata) Bytes() []byte { return u.data }

// Metatable returns the attached metatable, or nil.
func (u *Userdata) Metatable() *Metatable { return u.meta }

func (u *Userdata) Release() { u.data = nil }

// NewUserdata allocates a zeroed block of size bytes governed by meta.
func (st *State) NewUserdata(size int, meta *Metatable) (*Userdata, error) {
	u := &Userdata{meta: meta, data: make([]byte, size)}
	if err := st.heap.Alloc(u, heap.TagUserdata, estimatedUserdataBytes+size); err != nil {
		return nil, err
	}
	return u, nil
}
