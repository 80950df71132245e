package value

// COW materialises a uniquely-owned copy of v if it is shared (refcount >
// 1), otherwise returns v unchanged (§3.2 invariant 5, §5 COW discipline).
// Callers must handle the possibility that COW returned a different
// pointer: drop the original reference if a copy was made, and never write
// through the stale pointer afterwards.
func COW(v *Value) *Value {
	if v.IsUnique() {
		return v
	}
	return Clone(v)
}

// Clone makes a deep, uniquely-owned copy of v. Mutating attributes are
// cleared on the copy (§3.2 invariant 4: "mutating operators must clear
// them").
func Clone(v *Value) *Value {
	c := &Value{kind: v.kind, refs: newRefs(), elemKind: v.elemKind}
	switch v.kind.Base() {
	case KB8, KU8, KC8:
		c.b8 = append([]uint8(nil), v.b8...)
	case KI16:
		c.i16 = append([]int16(nil), v.i16...)
	case KI32, KDate, KTime:
		c.i32 = append([]int32(nil), v.i32...)
	case KI64, KTimestamp, KSymbol:
		c.i64 = append([]int64(nil), v.i64...)
	case KF64:
		c.f64 = append([]float64(nil), v.f64...)
	case KGUID:
		c.guid = append([]GUID(nil), v.guid...)
	case KList, KDict, KTable:
		c.list = make([]*Value, len(v.list))
		for i, e := range v.list {
			c.list[i] = e.Retain()
		}
		if v.keys != nil {
			c.keys = v.keys.Retain()
		}
	case KEnum:
		c.i64 = append([]int64(nil), v.i64...)
		if v.enumDict != nil {
			c.enumDict = v.enumDict.Retain()
		}
	case KParted:
		c.parted = make([]*Value, len(v.parted))
		for i, p := range v.parted {
			c.parted[i] = p.Retain()
		}
	case KMapList:
		c.mapBuf = append([]byte(nil), v.mapBuf...)
		c.mapOffsets = append([]int64(nil), v.mapOffsets...)
	case KMapCommon:
		c.list = []*Value{v.list[0].Retain()}
		c.mapCounts = append([]int64(nil), v.mapCounts...)
	case KErr:
		c.err = &Err{Code: v.err.Code, Message: v.err.Message}
	}
	// Atom payload is carried by the same branches above (base kind
	// matches); attributes never survive a clone (invariant 4).
	return c
}

// AtIdx fetches a single element at row idx as a fresh atom. Returns an
// ERR(INDEX) if idx is out of bounds, the shape every at_idx call site
// needs (§7 error taxonomy).
func AtIdx(v *Value, idx int64) *Value {
	n := int64(v.Len())
	if idx < 0 || idx >= n {
		return ErrValue("INDEX", "index out of range in at_idx")
	}
	switch v.kind.Base() {
	case KB8:
		return AtomB8(v.b8[idx])
	case KU8:
		return AtomU8(v.b8[idx])
	case KC8:
		return AtomC8(v.b8[idx])
	case KI16:
		return AtomI16(v.i16[idx])
	case KI32:
		return AtomI32(v.i32[idx])
	case KDate:
		return AtomDate(v.i32[idx])
	case KTime:
		return AtomTime(v.i32[idx])
	case KI64:
		return AtomI64(v.i64[idx])
	case KTimestamp:
		return AtomTimestamp(v.i64[idx])
	case KSymbol:
		return AtomSymbol(v.i64[idx])
	case KF64:
		return AtomF64(v.f64[idx])
	case KGUID:
		return AtomGUID(v.guid[idx])
	case KList:
		return v.list[idx].Retain()
	}
	return ErrValue("TYPE", "at_idx: unsupported kind "+v.kind.String())
}

// AtIds gathers rows at the given indices into a fresh vector of the same
// kind, used by join probes and filtered materialisation.
func AtIds(v *Value, ids []int64) *Value {
	n := int64(v.Len())
	for _, idx := range ids {
		if idx < 0 || idx >= n {
			return ErrValue("INDEX", "index out of range in at_ids")
		}
	}
	switch v.kind.Base() {
	case KB8, KU8, KC8:
		out := make([]uint8, len(ids))
		for i, idx := range ids {
			out[i] = v.b8[idx]
		}
		return newTypedVec(v.kind.Base(), out)
	case KI16:
		out := make([]int16, len(ids))
		for i, idx := range ids {
			out[i] = v.i16[idx]
		}
		return VecI16(out)
	case KI32, KDate, KTime:
		out := make([]int32, len(ids))
		for i, idx := range ids {
			out[i] = v.i32[idx]
		}
		return newTypedVec(v.kind.Base(), out)
	case KI64, KTimestamp, KSymbol:
		out := make([]int64, len(ids))
		for i, idx := range ids {
			out[i] = v.i64[idx]
		}
		return newTypedVec(v.kind.Base(), out)
	case KF64:
		out := make([]float64, len(ids))
		for i, idx := range ids {
			out[i] = v.f64[idx]
		}
		return VecF64(out)
	case KGUID:
		out := make([]GUID, len(ids))
		for i, idx := range ids {
			out[i] = v.guid[idx]
		}
		return VecGUID(out)
	case KList:
		out := make([]*Value, len(ids))
		for i, idx := range ids {
			out[i] = v.list[idx].Retain()
		}
		return List(out)
	}
	return ErrValue("TYPE", "at_ids: unsupported kind "+v.kind.String())
}

func newTypedVec[T any](k Kind, data []T) *Value {
	v := newVec(k)
	switch k {
	case KB8:
		v.b8 = any(data).([]uint8)
	case KU8:
		v.b8 = any(data).([]uint8)
	case KC8:
		v.b8 = any(data).([]uint8)
	case KI32:
		v.i32 = any(data).([]int32)
	case KDate:
		v.i32 = any(data).([]int32)
	case KTime:
		v.i32 = any(data).([]int32)
	case KI64:
		v.i64 = any(data).([]int64)
	case KTimestamp:
		v.i64 = any(data).([]int64)
	case KSymbol:
		v.i64 = any(data).([]int64)
	}
	return v
}
