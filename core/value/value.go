// Package value implements the engine's tagged value model: atoms and
// vectors over the base kinds, lists, dicts, tables, parted (horizontally
// partitioned) columns, and the two lazy list representations (MAPLIST,
// MAPCOMMON). See spec §3 for the full data model this package implements.
package value

import (
	"fmt"
	"math"
	"sync/atomic"

	uuid "github.com/satori/go.uuid"
)

// GUID is a 16-byte identifier (§3.1).
type GUID [16]byte

// NullGUID is the all-zero GUID sentinel (§6).
var NullGUID = GUID{}

// NewGUID builds a GUID from a github.com/satori/go.uuid value, the
// library backing the engine's GUID kind (SPEC_FULL AMBIENT STACK).
func NewGUID(u uuid.UUID) GUID {
	var g GUID
	copy(g[:], u.Bytes())
	return g
}

// UUID converts back to a uuid.UUID for display/hashing helpers that want
// the library's formatting.
func (g GUID) UUID() uuid.UUID {
	u, _ := uuid.FromBytes(g[:])
	return u
}

// Typed null sentinels (§6). Integer nulls are the minimum signed value
// for the width; F64's null is a NaN; GUID's null is all-zero.
const (
	NullB8  uint8 = 0
	NullU8  uint8 = 0
	NullC8  uint8 = 0
	NullI16 int16 = -1 << 15
	NullI32 int32 = -1 << 31
	NullI64 int64 = -1 << 63

	// NullSymbol is a reserved id no interner ever mints (ids start at 0).
	NullSymbol int64 = -1
)

// NullF64 is the NaN bit pattern used as F64's typed null.
var NullF64 = math.Float64frombits(0x7FF8000000000000)

// IsNullF64 reports whether f is the typed F64 null (any NaN qualifies,
// §4.2 null semantics: "any NaN operand yields NaN").
func IsNullF64(f float64) bool { return math.IsNaN(f) }

// Lambda/callable placeholder kinds. The computational core does not
// evaluate these (the surface evaluator is out of scope, §1); they are
// opaque payloads the core must be able to hold, refcount, and forward
// unchanged (e.g. as a TABLE cell) without inspecting.
type Callable struct {
	Kind  Kind // KLambda, KUnary, KBinary, KVary
	Name  string
	Arity int
}

// Err is the engine's error value: a code plus a human message (§7). Any
// operator that receives an Err forwards it unchanged (§3.2 invariant 6).
type Err struct {
	Code    string
	Message string
}

func (e *Err) Error() string { return e.Code + ": " + e.Message }

// refcount is the shared, atomically-updated reference count backing
// copy-on-write (§3.2 invariant 5, §5 COW discipline).
type refcount struct {
	n int32
}

// Value is the engine's tagged union. Only the fields matching Kind.Base()
// are meaningful; this mirrors the source's single-struct-per-tag layout
// (design note: "sum type... not virtual methods") without resorting to an
// interface-per-kind hierarchy, which would hide the dispatch the hot path
// depends on.
type Value struct {
	kind Kind
	refs *refcount
	attr Attr

	// scalar/vector payloads: atoms store their single element at index 0
	// of the slice matching their base kind, while Len still reports 0
	// for an atom ("atoms have len==0 in the container sense").
	b8   []uint8
	i16  []int16
	i32  []int32
	i64  []int64
	f64  []float64
	guid []GUID

	// LIST / DICT.values / TABLE.values
	list []*Value

	// DICT.keys / TABLE.keys (a SYMBOL vector, invariant 2)
	keys *Value

	// ENUM: keys is the symbol dictionary (SYMBOL vector); i64 holds the
	// per-row indices into it.
	enumDict *Value

	// PARTEDx: ordered per-partition vectors of a common base kind.
	elemKind Kind
	parted   []*Value

	// MAPLIST: lazy heterogeneous list as (byte buffer, offsets).
	mapBuf     []byte
	mapOffsets []int64

	// MAPCOMMON: each partition holds one broadcast value (values) and a
	// row count (counts).
	mapCounts []int64

	call *Callable
	err  *Err
}

func newRefs() *refcount { return &refcount{n: 1} }

// Kind returns the value's tag.
func (v *Value) Kind() Kind { return v.kind }

// Attr returns the sort/uniqueness attributes currently set.
func (v *Value) Attr() Attr { return v.attr }

// SetAttr overwrites the attribute bits. Callers that mutate a vector must
// clear attributes first (§3.2 invariant 4).
func (v *Value) SetAttr(a Attr) { v.attr = a }

// Len returns the element count: 0 for an atom, the backing length for a
// vector, the partition-summed length for PARTEDx/MAPCOMMON (§3.2
// invariant 2).
func (v *Value) Len() int {
	if v.kind.IsAtom() {
		return 0
	}
	switch v.kind {
	case KParted:
		n := 0
		for _, p := range v.parted {
			n += p.Len()
		}
		return n
	case KMapCommon:
		n := 0
		for _, c := range v.mapCounts {
			n += int(c)
		}
		return n
	case KMapList:
		return len(v.mapOffsets) - 1
	case KEnum:
		return len(v.i64)
	case KList, KTable:
		return len(v.list)
	case KDict:
		return len(v.list)
	default:
		return v.rawLen()
	}
}

func (v *Value) rawLen() int {
	switch v.kind.Base() {
	case KB8, KU8, KC8:
		return len(v.b8)
	case KI16:
		return len(v.i16)
	case KI32, KDate, KTime:
		return len(v.i32)
	case KI64, KTimestamp, KSymbol:
		return len(v.i64)
	case KF64:
		return len(v.f64)
	case KGUID:
		return len(v.guid)
	}
	return 0
}

// RefCount reports the current reference count.
func (v *Value) RefCount() int32 {
	if v.refs == nil {
		return 1
	}
	return atomic.LoadInt32(&v.refs.n)
}

// Retain increments the reference count. LIST/TABLE/DICT hold strong
// references to their children (§3.3); callers storing a *Value into a
// container must Retain it first.
func (v *Value) Retain() *Value {
	if v.refs != nil {
		atomic.AddInt32(&v.refs.n, 1)
	}
	return v
}

// Release decrements the reference count; when it reaches zero the value's
// children are released transitively (§3.3).
func (v *Value) Release() {
	if v.refs == nil {
		return
	}
	if atomic.AddInt32(&v.refs.n, -1) > 0 {
		return
	}
	switch v.kind {
	case KList, KDict, KTable:
		for _, c := range v.list {
			c.Release()
		}
		if v.keys != nil {
			v.keys.Release()
		}
	case KParted:
		for _, p := range v.parted {
			p.Release()
		}
	case KEnum:
		if v.enumDict != nil {
			v.enumDict.Release()
		}
	}
}

// IsUnique reports whether v is uniquely owned (refcount == 1); an
// in-place mutation is only safe when this holds (§3.2 invariant 5).
func (v *Value) IsUnique() bool { return v.RefCount() == 1 }

// String implements a one-line debug rendering: the kind, whether it is an
// atom, and the length; element values are not printed.
func (v *Value) String() string {
	return fmt.Sprintf("Value(kind=%s, atom=%v, len=%d)", v.kind, v.kind.IsAtom(), v.Len())
}
