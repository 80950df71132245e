package ops

import "github.com/arrowcol/engine/core/value"

// Bin runs a right-biased binary search: for each element of y, the index
// of the rightmost element of sorted-ascending x that is <= it, or -1 if
// none qualify (§4.7, §8 "bin(x, y) yields indices in [-1, len(x)-1]").
func Bin(x, y *value.Value) *value.Value {
	out := make([]int64, y.Len())
	for i := 0; i < y.Len(); i++ {
		out[i] = int64(upperBoundAt(x, y, i) - 1)
	}
	return value.VecI64(out)
}

// Binr runs a left-biased binary search: for each element of y, the index
// of the leftmost element of sorted-ascending x that is >= it, or len(x)
// if none qualify (§4.7, §8 "binr(x, y) yields indices in [0, len(x)]").
func Binr(x, y *value.Value) *value.Value {
	out := make([]int64, y.Len())
	for i := 0; i < y.Len(); i++ {
		out[i] = int64(lowerBoundAt(x, y, i))
	}
	return value.VecI64(out)
}

// lowerBoundAt returns the first index in x whose value is >= y[row].
func lowerBoundAt(x, y *value.Value, row int) int {
	lo, hi := 0, x.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		if xyLess(x, mid, y, row) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBoundAt returns the first index in x whose value is > y[row].
func upperBoundAt(x, y *value.Value, row int) int {
	lo, hi := 0, x.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		if xyLess(y, row, x, mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// xyLess compares x[i] < y[j] across potentially two different columns of
// the same base kind.
func xyLess(x *value.Value, i int, y *value.Value, j int) bool {
	switch x.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return x.B8()[i] < y.B8()[j]
	case value.KI16:
		return x.I16()[i] < y.I16()[j]
	case value.KI32, value.KDate, value.KTime:
		return x.I32()[i] < y.I32()[j]
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		return x.I64()[i] < y.I64()[j]
	case value.KF64:
		return x.F64()[i] < y.F64()[j]
	}
	return false
}
