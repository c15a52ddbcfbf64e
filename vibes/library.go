package vibes

// LibraryFunc is one named function of a Library.
type LibraryFunc struct {
	Name string
	Fn   BuiltinFunc
}

// Library is a global table of functions opened in every new State.
type Library struct {
	Name  string
	Funcs []LibraryFunc
	// Open runs after the functions are installed and may add fields to
	// the library table. The table is on the stack while Open runs.
	Open func(st *State, lib *Table) error
}

func (st *State) openLibrary(lib Library) error {
	t, err := st.PushTable()
	if err != nil {
		return err
	}
	defer st.Pop(1)

	for _, fn := range lib.Funcs {
		st.SetField(t, fn.Name, NewBuiltin(lib.Name+"."+fn.Name, fn.Fn))
	}
	if lib.Open != nil {
		if err := lib.Open(st, t); err != nil {
			return err
		}
	}
	st.SetGlobal(lib.Name, newTableValue(t))
	return nil
}
