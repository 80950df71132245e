package value

// Constructors. Vectors are always built as uniquely-owned (refcount 1);
// sharing happens when a caller Retains a reference into a container.

func newVec(k Kind) *Value { return &Value{kind: k, refs: newRefs()} }

func VecB8(data []uint8) *Value   { v := newVec(KB8); v.b8 = data; return v }
func VecU8(data []uint8) *Value   { v := newVec(KU8); v.b8 = data; return v }
func VecC8(data []uint8) *Value   { v := newVec(KC8); v.b8 = data; return v }
func VecI16(data []int16) *Value  { v := newVec(KI16); v.i16 = data; return v }
func VecI32(data []int32) *Value  { v := newVec(KI32); v.i32 = data; return v }
func VecI64(data []int64) *Value  { v := newVec(KI64); v.i64 = data; return v }
func VecF64(data []float64) *Value { v := newVec(KF64); v.f64 = data; return v }
func VecDate(data []int32) *Value { v := newVec(KDate); v.i32 = data; return v }
func VecTime(data []int32) *Value { v := newVec(KTime); v.i32 = data; return v }
func VecTimestamp(data []int64) *Value {
	v := newVec(KTimestamp)
	v.i64 = data
	return v
}
func VecSymbol(data []int64) *Value { v := newVec(KSymbol); v.i64 = data; return v }
func VecGUID(data []GUID) *Value    { v := newVec(KGUID); v.guid = data; return v }

// List builds a LIST from already-retained elements (the caller transfers
// ownership of one reference per element, matching the teacher's
// constructor idiom of taking ownership rather than copying defensively).
func List(elems []*Value) *Value {
	v := newVec(KList)
	v.list = elems
	return v
}

// Dict builds a DICT from a SYMBOL (or any) keys vector and a same-length
// values LIST/columns (§3.1).
func Dict(keys *Value, values []*Value) *Value {
	v := newVec(KDict)
	v.keys = keys
	v.list = values
	return v
}

// Table builds a TABLE; keys must be a SYMBOL vector and values a LIST of
// equal-count columns (§3.1, §3.2 invariant 2).
func Table(keys *Value, values []*Value) *Value {
	v := newVec(KTable)
	v.keys = keys
	v.list = values
	return v
}

// Enum builds an ENUM: a dictionary-compressed symbol column (dict is the
// SYMBOL key vector, indices is I64).
func Enum(dict *Value, indices []int64) *Value {
	v := newVec(KEnum)
	v.enumDict = dict
	v.i64 = indices
	return v
}

// Parted builds a PARTEDx column from an ordered sequence of per-partition
// vectors that all share elemKind.
func Parted(elemKind Kind, partitions []*Value) *Value {
	v := newVec(KParted)
	v.elemKind = elemKind
	v.parted = partitions
	return v
}

// MapList builds a lazy heterogeneous list from a serialised byte buffer
// and an offsets vector of length count+1.
func MapList(buf []byte, offsets []int64) *Value {
	v := newVec(KMapList)
	v.mapBuf = buf
	v.mapOffsets = offsets
	return v
}

// MapCommon builds a column whose value is constant per partition: values
// holds one element per partition, counts holds the per-partition row
// count.
func MapCommon(values *Value, counts []int64) *Value {
	v := newVec(KMapCommon)
	v.list = []*Value{values}
	v.mapCounts = counts
	return v
}

// MapCommonValues returns the per-partition broadcast values vector.
func (v *Value) MapCommonValues() *Value { return v.list[0] }

// MapCommonCounts returns the per-partition row counts.
func (v *Value) MapCommonCounts() []int64 { return v.mapCounts }

// ErrValue wraps an error code/message as an ERR value.
func ErrValue(code, message string) *Value {
	v := &Value{kind: KErr, refs: newRefs()}
	v.err = &Err{Code: code, Message: message}
	return v
}

func (v *Value) IsErr() bool  { return v.kind == KErr }
func (v *Value) Err() *Err    { return v.err }

// Atom constructors. Per §3.1/§3.2, an atom's scalar lives inline; this
// implementation stores it as the sole element of the matching payload
// slice.

func AtomB8(x uint8) *Value  { v := &Value{kind: KB8.Atom(), refs: newRefs(), b8: []uint8{x}}; return v }
func AtomU8(x uint8) *Value  { v := &Value{kind: KU8.Atom(), refs: newRefs(), b8: []uint8{x}}; return v }
func AtomC8(x uint8) *Value  { v := &Value{kind: KC8.Atom(), refs: newRefs(), b8: []uint8{x}}; return v }
func AtomI16(x int16) *Value { return &Value{kind: KI16.Atom(), refs: newRefs(), i16: []int16{x}} }
func AtomI32(x int32) *Value { return &Value{kind: KI32.Atom(), refs: newRefs(), i32: []int32{x}} }
func AtomI64(x int64) *Value { return &Value{kind: KI64.Atom(), refs: newRefs(), i64: []int64{x}} }
func AtomF64(x float64) *Value {
	return &Value{kind: KF64.Atom(), refs: newRefs(), f64: []float64{x}}
}
func AtomDate(x int32) *Value { return &Value{kind: KDate.Atom(), refs: newRefs(), i32: []int32{x}} }
func AtomTime(x int32) *Value { return &Value{kind: KTime.Atom(), refs: newRefs(), i32: []int32{x}} }
func AtomTimestamp(x int64) *Value {
	return &Value{kind: KTimestamp.Atom(), refs: newRefs(), i64: []int64{x}}
}
func AtomSymbol(x int64) *Value {
	return &Value{kind: KSymbol.Atom(), refs: newRefs(), i64: []int64{x}}
}
func AtomGUID(x GUID) *Value { return &Value{kind: KGUID.Atom(), refs: newRefs(), guid: []GUID{x}} }
