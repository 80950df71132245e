package kernel

import (
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// BinopMap is the higher-order arithmetic driver (§4.2 "Higher-order layer
// binop_map(op, x, y)"):
//  1. both vectors with mismatched length -> ERR LENGTH
//  2. both atoms -> synchronous call
//  3. otherwise infer output type, allocate, split by pool.SplitBy,
//     schedule chunked partials, collect.
func BinopMap(p *pool.Pool, op Op, x, y *value.Value) *value.Value {
	if x.IsErr() {
		return x
	}
	if y.IsErr() {
		return y
	}

	if !x.Kind().IsAtom() && !y.Kind().IsAtom() && x.Len() != y.Len() {
		return value.ErrValue("LENGTH", "binop_map: vector length mismatch")
	}

	resultKind, ok := ResultKind(op, x.Kind(), y.Kind())
	if !ok {
		return TypeErr(op.String(), x.Kind(), y.Kind())
	}

	if x.Kind().IsAtom() && y.Kind().IsAtom() {
		out := Alloc(resultKind, 1)
		if out.IsErr() {
			return out
		}
		if errv := ArithPartial(op, x, y, 0, 1, resultKind, out); errv != nil {
			return errv
		}
		return atomize(out)
	}

	n := vlen(x, y)
	out := Alloc(resultKind, n)
	if out.IsErr() {
		return out
	}

	nchunks := p.SplitBy(n, 0)
	chunks := pool.Chunks(n, nchunks, 8)
	p.Prepare()
	for _, c := range chunks {
		c := c
		p.AddTask(func(args ...interface{}) *value.Value {
			if errv := ArithPartial(op, x, y, c.Offset, c.Len, resultKind, out); errv != nil {
				return errv
			}
			return value.AtomI64(0)
		})
	}
	res := p.Run()
	if res.IsErr() {
		return res
	}
	return out
}

// CmpMap is the higher-order comparison driver (§4.2 cmp_map), with fast
// paths for MAPCOMMON, MAPLIST-against-atom, LIST, and PARTEDx operands.
func CmpMap(p *pool.Pool, op CmpOp, x, y *value.Value) *value.Value {
	if x.IsErr() {
		return x
	}
	if y.IsErr() {
		return y
	}

	switch {
	case x.Kind().Base() == value.KMapCommon:
		return cmpMapCommon(p, op, x, y)
	case x.Kind().Base() == value.KMapList && y.Kind().IsAtom():
		return CmpMap(p, op, x.Materialize(), y)
	case x.Kind().Base() == value.KList:
		return cmpList(p, op, x, y)
	case x.Kind().Base() == value.KParted:
		return cmpParted(p, op, x, y)
	}

	if !x.Kind().IsAtom() && !y.Kind().IsAtom() && x.Len() != y.Len() {
		return value.ErrValue("LENGTH", "cmp_map: vector length mismatch")
	}
	if _, ok := CmpResultKind(x.Kind(), y.Kind()); !ok {
		return TypeErr(cmpOpName(op), x.Kind(), y.Kind())
	}

	if x.Kind().IsAtom() && y.Kind().IsAtom() {
		out := value.VecB8(make([]uint8, 1))
		CmpPartial(op, x, y, 0, 1, out)
		return value.AtomB8(out.B8()[0])
	}

	n := vlen(x, y)
	out := value.VecB8(make([]uint8, n))
	nchunks := p.SplitBy(n, 0)
	chunks := pool.Chunks(n, nchunks, 1)
	p.Prepare()
	for _, c := range chunks {
		c := c
		p.AddTask(func(args ...interface{}) *value.Value {
			CmpPartial(op, x, y, c.Offset, c.Len, out)
			return value.AtomI64(0)
		})
	}
	res := p.Run()
	if res.IsErr() {
		return res
	}
	return out
}

// cmpMapCommon compares each partition's single broadcast value against y,
// producing a PARTEDB8 mask (§4.2: "compare against the unique values,
// produce a PARTEDB8 mask").
func cmpMapCommon(p *pool.Pool, op CmpOp, x, y *value.Value) *value.Value {
	values := x.MapCommonValues()
	counts := x.MapCommonCounts()
	masks := make([]*value.Value, len(counts))
	for i, cnt := range counts {
		v := value.AtIdx(values, int64(i))
		if v.IsErr() {
			return v
		}
		b := CmpMap(p, op, v, y)
		if b.IsErr() {
			return b
		}
		bit := b.B8()[0]
		buf := make([]uint8, cnt)
		for j := range buf {
			buf[j] = bit
		}
		masks[i] = value.VecB8(buf)
	}
	return value.Parted(value.KB8, masks)
}

// cmpList recurses elementwise over a LIST, collecting a B8 vector (§4.2).
func cmpList(p *pool.Pool, op CmpOp, x, y *value.Value) *value.Value {
	elems := x.List()
	out := make([]uint8, len(elems))
	for i, e := range elems {
		var rhs *value.Value
		if y.Kind().Base() == value.KList {
			rhs = y.List()[i]
		} else {
			rhs = y
		}
		r := CmpMap(p, op, e, rhs)
		if r.IsErr() {
			return r
		}
		out[i] = r.B8()[0]
	}
	return value.VecB8(out)
}

// cmpParted recurses per partition, producing a PARTEDB8 (§4.2).
func cmpParted(p *pool.Pool, op CmpOp, x, y *value.Value) *value.Value {
	parts := x.Partitions()
	out := make([]*value.Value, len(parts))
	for i, part := range parts {
		r := CmpMap(p, op, part, y)
		if r.IsErr() {
			return r
		}
		out[i] = r
	}
	return value.Parted(value.KB8, out)
}

func cmpOpName(op CmpOp) string {
	switch op {
	case Eq:
		return "eq"
	case Ne:
		return "ne"
	case Lt:
		return "lt"
	case Gt:
		return "gt"
	case Le:
		return "le"
	case Ge:
		return "ge"
	}
	return "cmp"
}

// atomize converts a length-1 vector built by Alloc into the equivalent
// atom, used when both binop_map operands were atoms.
func atomize(v *value.Value) *value.Value {
	switch v.Kind().Base() {
	case value.KF64:
		return value.AtomF64(v.F64()[0])
	case value.KI64:
		return value.AtomI64(v.I64()[0])
	case value.KTimestamp:
		return value.AtomTimestamp(v.I64()[0])
	case value.KI32:
		return value.AtomI32(v.I32()[0])
	case value.KDate:
		return value.AtomDate(v.I32()[0])
	case value.KTime:
		return value.AtomTime(v.I32()[0])
	case value.KI16:
		return value.AtomI16(v.I16()[0])
	case value.KB8:
		return value.AtomB8(v.B8()[0])
	}
	return v
}
