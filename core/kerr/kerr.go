// Package kerr defines the engine's error taxonomy. Every kernel, index
// builder, and query-driver stage that can fail returns one of these kinds
// instead of panicking; panics are reserved for invariant violations that
// are supposed to be unreachable.
package kerr

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// Type is raised when operand types have no kernel entry, or a cast
	// target is not a recognised type symbol.
	Type = errors.NewKind("type error: %s")

	// Length is raised when vector lengths disagree, a variadic gets the
	// wrong argument count, or a record's width mismatches a table's.
	Length = errors.NewKind("length error: %s")

	// Index is raised when an index is out of range in at_idx, at_ids, or
	// a MAPLIST decode.
	Index = errors.NewKind("index error: %s")

	// NotFound is raised when a symbol lookup or a column name lookup
	// fails.
	NotFound = errors.NewKind("not found: %s")

	// Arity is raised when a variadic callable is invoked with the wrong
	// argument count.
	Arity = errors.NewKind("arity error: %s")

	// NotImplemented is raised when an operator is defined but the path
	// is not wired up.
	NotImplemented = errors.NewKind("not implemented: %s")

	// IO is raised on worker-pool or timer misuse.
	IO = errors.NewKind("io error: %s")
)

// TypePair formats a TYPE error naming both operand type names, the shape
// every kernel dispatch miss uses.
func TypePair(op string, left, right string) *errors.Error {
	return Type.New(op + ": no kernel for (" + left + ", " + right + ")")
}
