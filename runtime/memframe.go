package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/ohl/value"
)

// This module implements memory for scopes: runtime frames for Call-lifetime
// cells, process memory for Process-lifetime cells, and a stack of active
// frames.

// cells is a piece of memory for one lifetime class of a scope.
type cells struct {
	values  []value.Value
	written []bool
}

func makeCells(n int) cells {
	return cells{
		values:  make([]value.Value, n),
		written: make([]bool, n),
	}
}

func (c *cells) size() int {
	return len(c.values)
}

// RuntimeFrame is an activation record, representing the Call-lifetime
// memory of a block.
type RuntimeFrame struct {
	Name   string
	Static FrameID       // static frame of the block, for Process-lifetime access
	Caller *RuntimeFrame // dynamic link, for Call-lifetime access at depth > 0
	cells
}

// NewRuntimeFrame creates a frame sized to the Call-lifetime symbols of a
// static frame.
func NewRuntimeFrame(name string, static *StaticFrame, caller *RuntimeFrame) *RuntimeFrame {
	return &RuntimeFrame{
		Name:   name,
		Static: static.ID,
		Caller: caller,
		cells:  makeCells(static.Size(Call)),
	}
}

func (rf *RuntimeFrame) String() string {
	return fmt.Sprintf("<mem %s -> #%d>", rf.Name, rf.Static)
}

// IsRoot is a predicate: Is this a root frame, i.e. without a caller?
func (rf *RuntimeFrame) IsRoot() bool {
	return rf.Caller == nil
}

// ---------------------------------------------------------------------------

// ProcessMemory holds the Process-lifetime cells of every static frame of a
// scope tree.
type ProcessMemory struct {
	frames []cells // indexed by FrameID
}

// NewProcessMemory allocates Process-lifetime cells for every frame of a
// scope tree. Cells of symbols with a resolved value (functions) are
// initialized with it.
func NewProcessMemory(tree *ScopeTree) *ProcessMemory {
	pm := &ProcessMemory{frames: make([]cells, tree.Len())}
	tree.Each(func(sf *StaticFrame) {
		c := makeCells(sf.Size(Process))
		for i, sym := range sf.symbols[Process] {
			if !sym.Value.IsUnit() {
				c.values[i] = sym.Value
				c.written[i] = true
			}
		}
		pm.frames[sf.ID] = c
	})
	return pm
}

func (pm *ProcessMemory) cellsOf(id FrameID) *cells {
	if id < 0 || int(id) >= len(pm.frames) {
		return nil
	}
	return &pm.frames[id]
}

// ---------------------------------------------------------------------------

// MemoryFrameStack is a (call-)stack of runtime frames.
type MemoryFrameStack struct {
	stack *arraystack.Stack
}

// NewMemoryFrameStack creates an empty frame stack.
func NewMemoryFrameStack() *MemoryFrameStack {
	return &MemoryFrameStack{stack: arraystack.New()}
}

// Current gets the current frame of the stack (TOS), or nil.
func (mfst *MemoryFrameStack) Current() *RuntimeFrame {
	if f, ok := mfst.stack.Peek(); ok {
		return f.(*RuntimeFrame)
	}
	return nil
}

// Depth returns the number of frames on the stack.
func (mfst *MemoryFrameStack) Depth() int {
	return mfst.stack.Size()
}

// PushMemoryFrame pushes a frame as TOS.
func (mfst *MemoryFrameStack) PushMemoryFrame(rf *RuntimeFrame) {
	mfst.stack.Push(rf)
	tracer().P("mem", rf.Name).Debugf("pushing memory frame")
}

// PopMemoryFrame pops the top-most memory frame. Returns the popped frame.
func (mfst *MemoryFrameStack) PopMemoryFrame() *RuntimeFrame {
	f, ok := mfst.stack.Pop()
	if !ok {
		panic("attempt to pop memory frame from empty call stack")
	}
	rf := f.(*RuntimeFrame)
	tracer().Debugf("popping memory frame [%s]", rf.Name)
	return rf
}

// Traceback lists the names of the frames on the stack, top-most first.
func (mfst *MemoryFrameStack) Traceback() []string {
	values := mfst.stack.Values()
	names := make([]string, len(values))
	for i, f := range values {
		names[i] = f.(*RuntimeFrame).Name
	}
	return names
}
