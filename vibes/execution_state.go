package vibes

func (exec *Execution) pushFrame(function string, pos Position) {
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}
