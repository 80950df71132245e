package value

// Kind tags every object in the engine. Positive values denote vectors or
// composite containers of the corresponding base kind; the negative of a
// base kind denotes an atom (scalar) of that kind (§3.1, GLOSSARY: "Atom").
// Dispatch on Kind is a plain Go switch/lookup-table, never a virtual
// method — the fast arithmetic/comparison path depends on a flat jump
// table keyed by a packed (left, right) pair (§4.2, design note on
// tag-dispatched polymorphism).
type Kind int16

const (
	KNull Kind = iota
	KB8
	KU8
	KC8
	KI16
	KI32
	KI64
	KF64
	KDate
	KTime
	KTimestamp
	KSymbol
	KGUID
	KList
	KEnum
	KMapList
	KMapCommon
	KParted
	KDict
	KTable
	KLambda
	KUnary
	KBinary
	KVary
	KErr
)

var kindNames = [...]string{
	"null", "b8", "u8", "c8", "i16", "i32", "i64", "f64",
	"date", "time", "timestamp", "symbol", "guid", "list", "enum",
	"maplist", "mapcommon", "parted", "dict", "table",
	"lambda", "unary", "binary", "vary", "err",
}

// String renders the base-kind name regardless of atom/vector sign, the
// way the engine's error messages name "both type names" (§4.2).
func (k Kind) String() string {
	b := k.Base()
	if b < 0 || int(b) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[b]
}

// IsAtom reports whether k is a scalar (negative) tag.
func (k Kind) IsAtom() bool { return k < 0 }

// Base strips the atom sign, returning the underlying vector/container
// kind.
func (k Kind) Base() Kind {
	if k < 0 {
		return -k
	}
	return k
}

// Atom returns the atom tag for the base kind k.
func (k Kind) Atom() Kind { return -k.Base() }

// Vector returns the vector tag for the base kind k.
func (k Kind) Vector() Kind { return k.Base() }

// IsInteger reports whether k's base kind is one of the integer-family
// kinds (including the temporal/symbol aliases over integers, §3.1).
func (k Kind) IsInteger() bool {
	switch k.Base() {
	case KB8, KU8, KC8, KI16, KI32, KI64, KDate, KTime, KTimestamp, KSymbol:
		return true
	}
	return false
}

// IsNumeric reports whether arithmetic kernels accept k as an operand.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.Base() == KF64
}

// Attr holds the truthful sort/uniqueness attributes a vector may carry
// (§3.2 invariant 4). Any mutating operator must clear these on its
// result.
type Attr uint8

const (
	AttrNone     Attr = 0
	AttrAsc      Attr = 1 << 0
	AttrDesc     Attr = 1 << 1
	AttrDistinct Attr = 1 << 2
)
