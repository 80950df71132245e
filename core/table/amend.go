package table

import "github.com/arrowcol/engine/core/value"

// Amend writes val into obj at the row positions named by indices, after
// a COW, the generalization original_source/core/amend.c's ray_amend
// implements (obj = cow(obj); set_obj(&obj, indices, value)) — the
// primitive `update` is built from (SPEC_FULL SUPPLEMENTED FEATURES).
// indices is an I64 vector or atom; val is either an atom (broadcast to
// every named row) or a vector the same length as indices.
func Amend(obj *value.Value, indices *value.Value, val *value.Value) *value.Value {
	owned := value.COW(obj)

	idxList := indices.I64()
	if indices.Kind().IsAtom() {
		idxList = []int64{indices.I64()[0]}
	}

	var valAt func(i int) *value.Value
	if val.Kind().IsAtom() {
		valAt = func(int) *value.Value { return val }
	} else {
		if val.Len() != len(idxList) {
			return value.ErrValue("LENGTH", "amend: value count does not match index count")
		}
		valAt = func(i int) *value.Value { return value.AtIdx(val, int64(i)) }
	}

	for i, row := range idxList {
		owned = overwriteAt(owned, int(row), valAt(i))
		if owned.IsErr() {
			return owned
		}
	}
	return owned
}
