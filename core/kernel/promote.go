// Package kernel implements the per-(left_type,right_type) arithmetic and
// comparison kernels (§4.2) and the higher-order binop_map/cmp_map drivers
// that split, schedule, and collect them across the worker pool.
package kernel

import "github.com/arrowcol/engine/core/value"

// Op identifies an arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div  // true division, always F64
	IDiv // integer division ("div"), always I64
	Mod
	Xbar // rounds down to the nearest multiple (bucketing)
)

var opNames = map[Op]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", IDiv: "div", Mod: "mod", Xbar: "xbar",
}

func (o Op) String() string { return opNames[o] }

var integerKinds = []value.Kind{
	value.KB8, value.KU8, value.KC8, value.KI16, value.KI32, value.KI64,
	value.KDate, value.KTime, value.KTimestamp, value.KSymbol, value.KEnum,
}

// rank orders integer kinds by width for "mixed integer widths promote to
// the wider signed integer" (§4.2).
var rank = map[value.Kind]int{
	value.KB8: 0, value.KU8: 1, value.KC8: 1,
	value.KI16: 2, value.KI32: 3, value.KI64: 4,
	value.KDate: 3, value.KTime: 3, value.KTimestamp: 4,
	value.KSymbol: 4, value.KEnum: 4,
}

// ResultKind infers the arithmetic result kind for (l, r) under op,
// following §4.2's promotion rules, or reports that no kernel exists for
// the pair.
func ResultKind(op Op, l, r value.Kind) (value.Kind, bool) {
	lb, rb := l.Base(), r.Base()

	if op == Div {
		if !numericPair(lb, rb) {
			return 0, false
		}
		return value.KF64, true
	}
	if op == IDiv || op == Mod {
		if !numericPair(lb, rb) {
			return 0, false
		}
		return value.KI64, true
	}

	// Temporal rules take priority over generic promotion (§4.2: "DATE ±
	// I64 -> DATE", "TIMESTAMP - TIMESTAMP -> I64").
	if (op == Add || op == Sub) && lb == value.KDate && rb.IsInteger() && rb != value.KDate {
		return value.KDate, true
	}
	if op == Add && rb == value.KDate && lb.IsInteger() && lb != value.KDate {
		return value.KDate, true
	}
	if op == Sub && lb == value.KTimestamp && rb == value.KTimestamp {
		return value.KI64, true
	}
	if (op == Add || op == Sub) && lb == value.KTimestamp && rb.IsInteger() && rb != value.KTimestamp {
		return value.KTimestamp, true
	}
	if op == Add && rb == value.KTimestamp && lb.IsInteger() && lb != value.KTimestamp {
		return value.KTimestamp, true
	}

	if lb == value.KF64 || rb == value.KF64 {
		if !numericPair(lb, rb) {
			return 0, false
		}
		return value.KF64, true
	}

	if !numericPair(lb, rb) {
		return 0, false
	}
	rl, okl := rank[lb]
	rr, okr := rank[rb]
	if !okl || !okr {
		return 0, false
	}
	if rl >= rr {
		return widen(lb), true
	}
	return widen(rb), true
}

// widen maps a narrow integer kind to the signed integer kind kernels
// actually compute in (B8/U8/C8 promote to I16 to avoid overflow on a
// single byte add).
func widen(k value.Kind) value.Kind {
	switch k {
	case value.KB8, value.KU8, value.KC8:
		return value.KI16
	default:
		return k
	}
}

func numericPair(l, r value.Kind) bool {
	return (l.IsNumeric() || l == value.KEnum) && (r.IsNumeric() || r == value.KEnum)
}

// CmpResultKind returns B8 for any supported comparable pair (§4.2:
// "Comparisons always return a B8 vector").
func CmpResultKind(l, r value.Kind) (value.Kind, bool) {
	lb, rb := l.Base(), r.Base()
	if lb == value.KGUID && rb == value.KGUID {
		return value.KB8, true
	}
	if lb == value.KList || rb == value.KList {
		return value.KB8, true
	}
	if numericPair(lb, rb) {
		return value.KB8, true
	}
	return 0, false
}
