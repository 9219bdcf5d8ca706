package runtime

import (
	"fmt"

	"github.com/npillmayer/ohl/value"
)

// Lifetime is the storage class of a cell.
type Lifetime int8

const (
	// Process cells exist once per program run: function definitions and
	// variables declared outside of any function.
	Process Lifetime = iota
	// Call cells exist once per activation: parameters and local variables.
	Call
)

func (lt Lifetime) String() string {
	if lt == Process {
		return "P"
	}
	return "C"
}

// Address locates a storage cell relative to the scope it is used in.
type Address struct {
	Lifetime Lifetime
	Depth    int // number of frames to walk outward, 0 = current frame
	Slot     int // index into the value array of the declaring frame
}

func (a Address) String() string {
	return fmt.Sprintf("%s[%d:%d]", a.Lifetime, a.Depth, a.Slot)
}

// Symbol binds a name to a storage cell.
//
// Value holds the resolved value of a symbol, if it is known at resolution
// time. This is the case for functions only, which are declared with a
// placeholder and back-patched once their body has been resolved.
type Symbol struct {
	Name    string
	Mutable bool
	Address Address // Depth is 0 for symbols stored in a frame
	Value   value.Value
}

// String is a debug Stringer for symbols.
func (s *Symbol) String() string {
	mut := ""
	if s.Mutable {
		mut = " mutable"
	}
	return fmt.Sprintf("<sym '%s' %s%s>", s.Name, s.Address, mut)
}
