package machine

import "github.com/mna/lox/lang/value"

// Frame records one activation of a Closure call: its instruction
// pointer into the closure's chunk, and the stack index its local slot 0
// occupies (slot 0 holds the callee itself, or the receiver for a method
// or initializer — see lang/compiler's reserved-slot-zero convention).
type Frame struct {
	Closure     *value.Closure
	IP          int
	SlotsOffset int
}

// line returns the source line of the instruction the frame is
// currently (about to be) executing, for error reporting.
func (fr *Frame) line() int {
	ip := fr.IP - 1
	if ip < 0 {
		ip = 0
	}
	return fr.Closure.Function.Chunk.LineAt(ip)
}
