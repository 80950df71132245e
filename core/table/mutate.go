package table

import (
	"github.com/arrowcol/engine/core/symtab"
	"github.com/arrowcol/engine/core/value"
)

// columnNames resolves a TABLE/DICT's symbol-keyed column names via the
// interner, the shape value.TableColumn already takes as a callback.
func columnNames(t *value.Value, interner *symtab.Table) []string {
	ids := t.Keys().I64()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = interner.String(id)
	}
	return out
}

// reorder coerces data (LIST of columns positional, or DICT/TABLE keyed by
// symbol name) into a slice of columns matching table's column order,
// filling any column data didn't provide with typed nulls of the right
// shape (atom null for a single-record insert, null-vector otherwise)
// (§4.5 insert/upsert "coerce data" step).
func reorder(table *value.Value, data *value.Value, interner *symtab.Table, rowCount int) ([]*value.Value, *value.Value) {
	names := columnNames(table, interner)
	cols := table.List()

	if data.Kind().Base() == value.KDict || data.Kind().Base() == value.KTable {
		dataNames := columnNames(data, interner)
		dataCols := data.List()
		byName := make(map[string]*value.Value, len(dataNames))
		for i, n := range dataNames {
			byName[n] = dataCols[i]
		}
		out := make([]*value.Value, len(names))
		for i, n := range names {
			if c, ok := byName[n]; ok {
				out[i] = c
				delete(byName, n)
			} else if rowCount == 1 {
				out[i] = nullAtom(cols[i].Kind())
			} else {
				out[i] = nullVec(cols[i].Kind(), rowCount)
			}
		}
		if len(byName) > 0 {
			return nil, value.ErrValue("NOT_FOUND", "insert: data has columns absent from table")
		}
		return out, nil
	}

	if data.Kind().Base() != value.KList {
		return nil, value.ErrValue("TYPE", "insert: data must be a LIST, DICT, or TABLE")
	}
	elems := data.List()
	if len(elems) != len(names) {
		return nil, value.ErrValue("LENGTH", "insert: data column count does not match table")
	}
	return elems, nil
}

// rowCountOf infers how many records data contributes: a LIST of atoms (or
// a DICT whose values are atoms) is one record; otherwise the length of
// the first vector-shaped element.
func rowCountOf(data *value.Value) int {
	var elems []*value.Value
	switch data.Kind().Base() {
	case value.KList, value.KDict, value.KTable:
		elems = data.List()
	default:
		return 1
	}
	for _, e := range elems {
		if !e.Kind().IsAtom() {
			return e.Len()
		}
	}
	return 1
}

// Insert appends data's rows to table, coercing data's column order/shape
// to match table's (§4.5 insert).
func Insert(table *value.Value, data *value.Value, interner *symtab.Table) *value.Value {
	n := rowCountOf(data)
	cols, errv := reorder(table, data, interner, n)
	if errv != nil {
		return errv
	}

	tblCols := table.List()
	outCols := make([]*value.Value, len(tblCols))
	for i, existing := range tblCols {
		add := cols[i]
		if add.Kind().Base() != existing.Kind().Base() {
			return value.ErrValue("TYPE", "insert: column kind mismatch on "+existing.Kind().String())
		}
		owned := value.COW(existing)
		appended := appendColumn(owned, add)
		if appended.IsErr() {
			return appended
		}
		outCols[i] = appended
	}
	return value.Table(table.Keys().Retain(), outCols)
}

// Upsert builds a key from the first keyCount columns of table and data;
// matching rows overwrite non-key columns that data provided, unmatched
// rows append as new records (§4.5 upsert, §8 scenario 6).
func Upsert(table *value.Value, keyCount int, data *value.Value, interner *symtab.Table) *value.Value {
	n := rowCountOf(data)
	cols, errv := reorder(table, data, interner, n)
	if errv != nil {
		return errv
	}
	if keyCount < 1 || keyCount > len(cols) {
		return value.ErrValue("ARITY", "upsert: key_count out of range")
	}

	tblCols := table.List()
	rowCount := tblCols[0].Len()
	keyIndex := make(map[string]int, rowCount)
	for r := 0; r < rowCount; r++ {
		keyIndex[compositeKey(tblCols[:keyCount], r)] = r
	}

	// Materialise every data column to an n-length vector so row r can be
	// read uniformly whether the caller passed atoms (single record) or
	// vectors (a batch).
	dataVecs := make([]*value.Value, len(cols))
	for i, c := range cols {
		if c.Kind().IsAtom() {
			dataVecs[i] = broadcastAtom(c, n)
		} else {
			dataVecs[i] = c
		}
	}

	owned := make([]*value.Value, len(tblCols))
	for i, c := range tblCols {
		owned[i] = value.COW(c)
	}

	// newRowCols holds, per column, the new-row atoms still to append.
	newRowCols := make([][]*value.Value, len(owned))

	// A DICT/TABLE data may name only some columns; a matched row keeps its
	// existing value in every column data left out.
	dataKeyed := data.Kind().Base() == value.KDict || data.Kind().Base() == value.KTable
	provided := make(map[string]bool)
	if dataKeyed {
		for _, nm := range columnNames(data, interner) {
			provided[nm] = true
		}
	}
	tblNames := columnNames(table, interner)

	for r := 0; r < n; r++ {
		k := compositeKey(dataVecs[:keyCount], r)
		if existingRow, found := keyIndex[k]; found {
			for c := keyCount; c < len(owned); c++ {
				if dataKeyed && !provided[tblNames[c]] {
					continue
				}
				owned[c] = overwriteAt(owned[c], existingRow, value.AtIdx(dataVecs[c], int64(r)))
			}
			continue
		}
		for c := range owned {
			newRowCols[c] = append(newRowCols[c], value.AtIdx(dataVecs[c], int64(r)))
		}
		// Duplicate new keys within the same batch are appended as
		// separate rows rather than merged into one another; only a
		// match against a pre-existing table row is deduplicated.
	}

	outCols := make([]*value.Value, len(owned))
	for c, col := range owned {
		if len(newRowCols[c]) == 0 {
			outCols[c] = col
			continue
		}
		appended := col
		for _, atom := range newRowCols[c] {
			appended = appendColumn(appended, atom)
			if appended.IsErr() {
				return appended
			}
		}
		outCols[c] = appended
	}
	return value.Table(table.Keys().Retain(), outCols)
}

func compositeKey(cols []*value.Value, row int) string {
	var b []byte
	for _, c := range cols {
		b = append(b, keyBytes(c, row)...)
		b = append(b, 0)
	}
	return string(b)
}

func keyBytes(col *value.Value, row int) []byte {
	switch col.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return []byte{col.B8()[row]}
	case value.KI16:
		return int64Bytes(int64(col.I16()[row]))
	case value.KI32, value.KDate, value.KTime:
		return int64Bytes(int64(col.I32()[row]))
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		return int64Bytes(col.I64()[row])
	case value.KF64:
		return int64Bytes(int64(col.F64()[row]))
	case value.KGUID:
		g := col.GUIDs()[row]
		return g[:]
	}
	return nil
}

func int64Bytes(v int64) []byte {
	var b [8]byte
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	return b[:]
}

// overwriteAt replaces col's row-th element with val, synthesising a fresh
// vector (see DESIGN.md: value.Value exposes no exported in-place
// mutator).
func overwriteAt(col *value.Value, row int, val *value.Value) *value.Value {
	n := col.Len()
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i)
	}
	before := value.AtIds(col, ids[:row])
	after := value.AtIds(col, ids[row+1:])
	merged := appendColumn(before, val)
	if merged.IsErr() {
		return merged
	}
	return appendColumn(merged, after)
}
