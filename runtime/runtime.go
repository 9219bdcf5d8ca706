package runtime

import (
	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/value"
)

// Runtime is a type implementing a runtime environment for an interpreter.
// It dereferences addresses relative to runtime frames.
type Runtime struct {
	ScopeTree     *ScopeTree        // static frames of a resolved program
	Memory        *ProcessMemory    // Process-lifetime cells
	MemFrameStack *MemoryFrameStack // activation records of calls in progress
}

// NewRuntimeEnvironment constructs a new runtime environment for the static
// frames of a resolved program.
func NewRuntimeEnvironment(scopes *ScopeTree) *Runtime {
	return &Runtime{
		ScopeTree:     scopes,
		Memory:        NewProcessMemory(scopes),
		MemFrameStack: NewMemoryFrameStack(),
	}
}

// Load reads the value at addr, relative to frame.
func (rt *Runtime) Load(frame *RuntimeFrame, addr Address) (value.Value, error) {
	c, _, err := rt.locate(frame, addr)
	if err != nil {
		return value.Token(), err
	}
	return c.values[addr.Slot], nil
}

// Store writes v to the cell at addr, relative to frame. init is set for
// stores which initialize a cell (declarations and parameters). Any other
// store to a written cell of an immutable symbol fails with
// ohl.ErrImmutableAssignment.
func (rt *Runtime) Store(frame *RuntimeFrame, addr Address, v value.Value, init bool) error {
	c, sym, err := rt.locate(frame, addr)
	if err != nil {
		return err
	}
	if !init && !sym.Mutable && c.written[addr.Slot] {
		return ohl.Errorf(ohl.ErrImmutableAssignment, "cannot assign to '%s'", sym.Name)
	}
	c.values[addr.Slot] = v
	c.written[addr.Slot] = true
	return nil
}

// locate finds the cells holding addr and the symbol declared for it.
//
// Process addresses walk the static frame chain, starting at the frame's
// static frame. Call addresses walk the chain of callers.
func (rt *Runtime) locate(frame *RuntimeFrame, addr Address) (*cells, *Symbol, error) {
	if frame == nil {
		return nil, nil, ohl.Errorf(ohl.ErrMissingFrameLink, "no frame for %s", addr)
	}
	var c *cells
	var sf *StaticFrame
	switch addr.Lifetime {
	case Process:
		sf = rt.ScopeTree.Frame(frame.Static)
		for d := addr.Depth; d > 0; d-- {
			if sf = sf.ParentFrame(); sf == nil {
				return nil, nil, ohl.Errorf(ohl.ErrMissingFrameLink,
					"static chain of %s too short for %s", frame, addr)
			}
		}
		c = rt.Memory.cellsOf(sf.ID)
	case Call:
		rf := frame
		for d := addr.Depth; d > 0; d-- {
			if rf.IsRoot() {
				return nil, nil, ohl.Errorf(ohl.ErrMissingFrameLink,
					"caller chain of %s too short for %s", frame, addr)
			}
			rf = rf.Caller
		}
		c = &rf.cells
		sf = rt.ScopeTree.Frame(rf.Static)
	default:
		return nil, nil, ohl.Errorf(ohl.ErrMissingFrameLink, "invalid address %s", addr)
	}
	sym := sf.SymbolAt(addr.Lifetime, addr.Slot)
	if c == nil || sym == nil || addr.Slot >= c.size() {
		return nil, nil, ohl.Errorf(ohl.ErrMissingFrameLink, "no cell for %s in %s", addr, sf)
	}
	return c, sym, nil
}
