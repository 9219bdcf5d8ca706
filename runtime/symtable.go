package runtime

import (
	"fmt"

	"github.com/npillmayer/ohl"
	"github.com/npillmayer/ohl/value"
)

// Symbol tables for variables and functions. Symbol tables are attached to
// static frames. Static frames are organized in a tree.

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store symbols (map-like semantics).
type SymbolTable struct {
	Table map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Table: make(map[string]*Symbol)}
}

// ResolveSymbol checks for a symbol in the symbol table.
// Returns a symbol or nil.
func (t *SymbolTable) ResolveSymbol(name string) *Symbol {
	return t.Table[name]
}

// InsertSymbol inserts a pre-created symbol.
// Overwrites an existing symbol with the same name, if any, and returns it.
func (t *SymbolTable) InsertSymbol(sym *Symbol) *Symbol {
	old := t.Table[sym.Name]
	t.Table[sym.Name] = sym
	return old
}

// Size counts the symbols in a symbol table.
func (t *SymbolTable) Size() int {
	return len(t.Table)
}

// === Static Frames =========================================================

// FrameID identifies a static frame within its scope tree.
type FrameID int

// NoFrame is the parent of the root frame.
const NoFrame FrameID = -1

// StaticFrame is a lexical scope, holding symbol declarations. Static frames
// link back to a parent frame, forming a tree.
//
// Symbols are allocated in two dense arrays, one per lifetime. Once a
// program has been resolved, static frames are read-only.
type StaticFrame struct {
	ID       FrameID
	Name     string
	Parent   FrameID
	function bool // frame of a function's parameters and body
	tree     *ScopeTree
	symtab   *SymbolTable
	symbols  [2][]*Symbol // indexed by Lifetime
}

// Prettyfied Stringer.
func (sf *StaticFrame) String() string {
	return fmt.Sprintf("<frame #%d %s>", sf.ID, sf.Name)
}

// ParentFrame returns the lexical parent of sf, or nil for the root frame.
func (sf *StaticFrame) ParentFrame() *StaticFrame {
	if sf.Parent == NoFrame {
		return nil
	}
	return sf.tree.Frame(sf.Parent)
}

// IsFunctionBody is true for frames holding a function's parameters and
// body.
func (sf *StaticFrame) IsFunctionBody() bool {
	return sf.function
}

// InFunction is true if sf or one of its ancestors is a function frame.
func (sf *StaticFrame) InFunction() bool {
	for f := sf; f != nil; f = f.ParentFrame() {
		if f.IsFunctionBody() {
			return true
		}
	}
	return false
}

// Size returns the number of cells a frame needs for a lifetime.
func (sf *StaticFrame) Size(lt Lifetime) int {
	return len(sf.symbols[lt])
}

// SymbolAt returns the symbol stored for a lifetime at a slot, or nil.
func (sf *StaticFrame) SymbolAt(lt Lifetime, slot int) *Symbol {
	if slot < 0 || slot >= len(sf.symbols[lt]) {
		return nil
	}
	return sf.symbols[lt][slot]
}

// Declare allocates a new symbol for name at the next free slot of its
// lifetime class. Redeclaring a name within the same frame shadows the
// previous declaration: the old cell stays allocated, but is no longer
// reachable by name.
//
// Returns the address of the new symbol, with depth 0.
func (sf *StaticFrame) Declare(name string, lt Lifetime, mutable bool) Address {
	addr := Address{Lifetime: lt, Slot: len(sf.symbols[lt])}
	sym := &Symbol{Name: name, Mutable: mutable, Address: addr}
	sf.symbols[lt] = append(sf.symbols[lt], sym)
	if old := sf.symtab.InsertSymbol(sym); old != nil {
		tracer().Debugf("%s shadows %s in %s", sym, old, sf)
	}
	return addr
}

// Resolution is the result of a lookup across frames.
type Resolution struct {
	Symbol  *Symbol
	Address Address // address relative to the frame the lookup started in
	Frame   FrameID // declaring frame
	// CrossesFunction is set if the lookup left a function frame on its way
	// to the declaring frame.
	CrossesFunction bool
}

// LookupFrom finds a symbol, starting at sf and delegating to the parent
// frames on a miss. Each hop to a parent increments the depth of the
// resulting address by one.
func (sf *StaticFrame) LookupFrom(name string) (Resolution, bool) {
	depth, crosses := 0, false
	for f := sf; f != nil; f = f.ParentFrame() {
		if sym := f.symtab.ResolveSymbol(name); sym != nil {
			addr := sym.Address
			addr.Depth = depth
			return Resolution{
				Symbol:          sym,
				Address:         addr,
				Frame:           f.ID,
				CrossesFunction: crosses,
			}, true
		}
		if f.IsFunctionBody() {
			crosses = true
		}
		depth++
	}
	return Resolution{}, false
}

// Lookup finds a symbol visible from sf. The returned copy of the symbol
// carries an address relative to sf.
func (sf *StaticFrame) Lookup(name string) (Symbol, bool) {
	r, ok := sf.LookupFrom(name)
	if !ok {
		return Symbol{}, false
	}
	sym := *r.Symbol
	sym.Address = r.Address
	return sym, true
}

// PatchValue overwrites the value of a symbol declared in sf. addr must be
// an address returned by Declare on sf.
func (sf *StaticFrame) PatchValue(addr Address, v value.Value) error {
	sym := sf.SymbolAt(addr.Lifetime, addr.Slot)
	if sym == nil || addr.Depth != 0 {
		return ohl.Errorf(ohl.ErrMissingFrameLink, "no symbol at %s in %s", addr, sf)
	}
	sym.Value = v
	return nil
}

// ---------------------------------------------------------------------------

// ScopeTree is an arena of static frames. It can be treated as a stack
// during static analysis, thus building a tree from frames which are pushed
// and popped to/from the stack.
type ScopeTree struct {
	frames []*StaticFrame
	tos    FrameID
}

// NewScopeTree creates an empty scope tree.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{tos: NoFrame}
}

// Frame returns the static frame with a given ID. It panics for IDs not
// created by this tree.
func (t *ScopeTree) Frame(id FrameID) *StaticFrame {
	return t.frames[id]
}

// Len returns the number of frames in the tree.
func (t *ScopeTree) Len() int {
	return len(t.frames)
}

// Each calls f for every frame, in order of creation.
func (t *ScopeTree) Each(f func(*StaticFrame)) {
	for _, sf := range t.frames {
		f(sf)
	}
}

// Current gets the current frame of a stack (TOS).
func (t *ScopeTree) Current() *StaticFrame {
	if t.tos == NoFrame {
		panic("attempt to access scope from empty stack")
	}
	return t.frames[t.tos]
}

// Globals gets the outermost frame.
func (t *ScopeTree) Globals() *StaticFrame {
	if len(t.frames) == 0 {
		panic("attempt to access global scope from empty stack")
	}
	return t.frames[0]
}

// PushNewScope pushes a new frame onto the stack of frames, as a child of
// the current TOS. function marks frames of function parameters and bodies.
func (t *ScopeTree) PushNewScope(name string, function bool) *StaticFrame {
	sf := &StaticFrame{
		ID:       FrameID(len(t.frames)),
		Name:     name,
		Parent:   t.tos,
		function: function,
		tree:     t,
		symtab:   NewSymbolTable(),
	}
	t.frames = append(t.frames, sf)
	t.tos = sf.ID
	tracer().P("scope", sf.Name).Debugf("pushing new scope #%d", sf.ID)
	return sf
}

// PopScope pops the top-most (recent) frame.
func (t *ScopeTree) PopScope() *StaticFrame {
	if t.tos == NoFrame {
		panic("attempt to pop scope from empty stack")
	}
	sf := t.frames[t.tos]
	tracer().Debugf("popping scope [%s]", sf.Name)
	t.tos = sf.Parent
	return sf
}
