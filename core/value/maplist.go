package value

import "math"

// MAPLIST wire format: each element is a 1-byte Kind tag followed by an
// 8-byte little-endian payload (the bit pattern of the scalar, or the
// first 8 bytes of a GUID for KGUID; only those 8 bytes are kept, and
// DecodeAt returns a TYPE error for a GUID element).
// mapOffsets[i] is the byte offset of element i in mapBuf; it has
// count+1 entries, the last being len(mapBuf) (§3.1 MAPLIST: "lazy
// heterogeneous list stored as a serialised byte buffer plus an offset
// vector").
const mapListElemSize = 9

// EncodeMapList serialises elems (atoms only) into a MAPLIST value.
func EncodeMapList(elems []*Value) *Value {
	buf := make([]byte, 0, len(elems)*mapListElemSize)
	offsets := make([]int64, len(elems)+1)
	for i, e := range elems {
		offsets[i] = int64(len(buf))
		buf = append(buf, byte(e.Kind().Base()))
		buf = append(buf, encode8(e)...)
	}
	offsets[len(elems)] = int64(len(buf))
	return MapList(buf, offsets)
}

func encode8(e *Value) []byte {
	var bits uint64
	switch e.Kind().Base() {
	case KB8, KU8, KC8:
		bits = uint64(e.B8()[0])
	case KI16:
		bits = uint64(uint16(e.I16()[0]))
	case KI32, KDate, KTime:
		bits = uint64(uint32(e.I32()[0]))
	case KI64, KTimestamp, KSymbol:
		bits = uint64(e.I64()[0])
	case KF64:
		bits = math.Float64bits(e.F64()[0])
	case KGUID:
		g := e.GUIDs()[0]
		return g[:8]
	}
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(bits >> (8 * i))
	}
	return out
}

func decode8(b []byte) uint64 {
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(b[i]) << (8 * i)
	}
	return bits
}

// DecodeAt materialises element i of a MAPLIST as a fresh atom.
func (v *Value) DecodeAt(i int) *Value {
	start := v.mapOffsets[i]
	k := Kind(v.mapBuf[start])
	bits := decode8(v.mapBuf[start+1 : start+9])
	switch k {
	case KB8:
		return AtomB8(uint8(bits))
	case KU8:
		return AtomU8(uint8(bits))
	case KC8:
		return AtomC8(uint8(bits))
	case KI16:
		return AtomI16(int16(uint16(bits)))
	case KI32:
		return AtomI32(int32(uint32(bits)))
	case KDate:
		return AtomDate(int32(uint32(bits)))
	case KTime:
		return AtomTime(int32(uint32(bits)))
	case KI64:
		return AtomI64(int64(bits))
	case KTimestamp:
		return AtomTimestamp(int64(bits))
	case KSymbol:
		return AtomSymbol(int64(bits))
	case KF64:
		return AtomF64(math.Float64frombits(bits))
	}
	return ErrValue("TYPE", "maplist: undecodable element kind")
}

// HomogeneousKind inspects the first element's type byte; if every element
// shares that kind, returns it (§4.2: "detect homogeneous element type by
// inspecting the first element's type byte in the buffer").
func (v *Value) HomogeneousKind() (Kind, bool) {
	n := v.Len()
	if n == 0 {
		return 0, false
	}
	first := Kind(v.mapBuf[v.mapOffsets[0]])
	for i := 1; i < n; i++ {
		if Kind(v.mapBuf[v.mapOffsets[i]]) != first {
			return 0, false
		}
	}
	return first, true
}

// Materialize extracts a MAPLIST's elements into a typed vector when
// HomogeneousKind holds and that kind is B8, I16, I32, I64 or F64, else a
// LIST of atoms (the "extract a typed vector in one pass and recurse" fast
// path, §4.2).
func (v *Value) Materialize() *Value {
	n := v.Len()
	if k, ok := v.HomogeneousKind(); ok {
		elems := make([]*Value, n)
		for i := 0; i < n; i++ {
			elems[i] = v.DecodeAt(i)
		}
		return typedVectorFromAtoms(k, elems)
	}
	elems := make([]*Value, n)
	for i := 0; i < n; i++ {
		elems[i] = v.DecodeAt(i)
	}
	return List(elems)
}

func typedVectorFromAtoms(k Kind, atoms []*Value) *Value {
	switch k {
	case KB8:
		out := make([]uint8, len(atoms))
		for i, a := range atoms {
			out[i] = a.B8()[0]
		}
		return VecB8(out)
	case KI16:
		out := make([]int16, len(atoms))
		for i, a := range atoms {
			out[i] = a.I16()[0]
		}
		return VecI16(out)
	case KI32:
		out := make([]int32, len(atoms))
		for i, a := range atoms {
			out[i] = a.I32()[0]
		}
		return VecI32(out)
	case KI64:
		out := make([]int64, len(atoms))
		for i, a := range atoms {
			out[i] = a.I64()[0]
		}
		return VecI64(out)
	case KF64:
		out := make([]float64, len(atoms))
		for i, a := range atoms {
			out[i] = a.F64()[0]
		}
		return VecF64(out)
	}
	return List(atoms)
}
