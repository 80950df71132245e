package value

// Typed accessors. Each returns the backing slice for both atoms and
// vectors of the matching base kind (an atom's slice has length 1); kernels
// index it directly rather than branching on atom-vs-vector, per §4.2's
// scalar/vector partial-kernel dispatch.

func (v *Value) B8() []uint8    { return v.b8 }
func (v *Value) I16() []int16   { return v.i16 }
func (v *Value) I32() []int32   { return v.i32 }
func (v *Value) I64() []int64   { return v.i64 }
func (v *Value) F64() []float64 { return v.f64 }
func (v *Value) GUIDs() []GUID  { return v.guid }

// List returns the element slice of a LIST, or the values slice of a
// DICT/TABLE.
func (v *Value) List() []*Value { return v.list }

// Keys returns a DICT's or TABLE's key vector.
func (v *Value) Keys() *Value { return v.keys }

// EnumDict returns an ENUM's symbol dictionary.
func (v *Value) EnumDict() *Value { return v.enumDict }

// ElemKind returns the shared base kind of a PARTEDx column's partitions.
func (v *Value) ElemKind() Kind { return v.elemKind }

// Partitions returns a PARTEDx column's per-partition vectors.
func (v *Value) Partitions() []*Value { return v.parted }

// MapBuf and MapOffsets expose a MAPLIST's raw representation.
func (v *Value) MapBuf() []byte      { return v.mapBuf }
func (v *Value) MapOffsets() []int64 { return v.mapOffsets }

// TableColumn looks up a TABLE column by symbol name given an interner to
// resolve the key vector's ids to strings.
func (v *Value) TableColumn(stringer func(int64) string, name string) (*Value, int, bool) {
	if v.kind != KTable && v.kind != KDict {
		return nil, -1, false
	}
	for i, id := range v.keys.i64 {
		if stringer(id) == name {
			return v.list[i], i, true
		}
	}
	return nil, -1, false
}

// ColumnCount returns a TABLE's number of columns.
func (v *Value) ColumnCount() int { return len(v.list) }

// RowCount returns a TABLE's row count: every column's Len() is identical
// by invariant 2, so the first column (or 0 for a zero-column table) is
// authoritative.
func (v *Value) RowCount() int {
	if len(v.list) == 0 {
		return 0
	}
	return v.list[0].Len()
}
