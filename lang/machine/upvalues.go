package machine

import (
	"slices"

	"github.com/mna/lox/lang/value"
)

// captureUpvalue returns the open upvalue for absolute stack index idx,
// reusing an existing one if another closure already captured that slot
// (so that sibling closures share one cell, per spec.md §4.4), or
// creating and recording a new one otherwise.
func (th *Thread) captureUpvalue(idx int) *value.Upvalue {
	for _, uv := range th.open {
		if !uv.Closed && uv.Index == idx {
			return uv
		}
	}

	uv := &value.Upvalue{Index: idx, Stack: &th.stack}
	at := len(th.open)
	for at > 0 && th.open[at-1].Index > idx {
		at--
	}
	th.open = slices.Insert(th.open, at, uv)
	return uv
}

// closeUpvalues converts every open upvalue at or above absolute stack
// index from into a closed one, copying its value out of the stack so it
// survives after that stack region is popped or reused.
func (th *Thread) closeUpvalues(from int) {
	kept := th.open[:0]
	for _, uv := range th.open {
		if uv.Index >= from {
			uv.Close()
		} else {
			kept = append(kept, uv)
		}
	}
	th.open = kept
}
