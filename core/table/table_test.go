package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/symtab"
	"github.com/arrowcol/engine/core/value"
)

func buildTable(interner *symtab.Table, names []string, cols []*value.Value) *value.Value {
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = interner.Intern(n)
	}
	return value.Table(value.VecSymbol(ids), cols)
}

func TestUpsertScenario6(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	tbl := buildTable(st, []string{"k", "v"}, []*value.Value{
		value.VecI64([]int64{1, 2}),
		value.VecI64([]int64{10, 20}),
	})
	data := value.List([]*value.Value{
		value.VecI64([]int64{2, 3}),
		value.VecI64([]int64{99, 30}),
	})

	out := Upsert(tbl, 1, data, st)
	require.False(out.IsErr(), out.String())
	require.Equal([]int64{1, 2, 3}, out.List()[0].I64())
	require.Equal([]int64{10, 99, 30}, out.List()[1].I64())
}

func TestInsertSingleRecordFillsMissingWithNulls(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	tbl := buildTable(st, []string{"a", "b"}, []*value.Value{
		value.VecI64([]int64{1}),
		value.VecF64([]float64{1.5}),
	})
	data := value.Dict(value.VecSymbol([]int64{st.Intern("a")}), []*value.Value{
		value.AtomI64(5),
	})

	out := Insert(tbl, data, st)
	require.False(out.IsErr(), out.String())
	require.Equal([]int64{1, 5}, out.List()[0].I64())
	require.True(value.IsNullF64(out.List()[1].F64()[1]))
}

func TestInsertPositionalListMultiRecord(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	tbl := buildTable(st, []string{"x"}, []*value.Value{value.VecI64([]int64{1, 2})})
	data := value.List([]*value.Value{value.VecI64([]int64{3, 4})})

	out := Insert(tbl, data, st)
	require.False(out.IsErr(), out.String())
	require.Equal([]int64{1, 2, 3, 4}, out.List()[0].I64())
}

func TestInsertRejectsExtraColumns(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	tbl := buildTable(st, []string{"a"}, []*value.Value{value.VecI64([]int64{1})})
	data := value.Dict(value.VecSymbol([]int64{st.Intern("a"), st.Intern("z")}), []*value.Value{
		value.AtomI64(5), value.AtomI64(9),
	})
	out := Insert(tbl, data, st)
	require.True(out.IsErr())
}

func TestAmendOverwritesSelectedRows(t *testing.T) {
	require := require.New(t)
	col := value.VecI64([]int64{1, 2, 3, 4})
	out := Amend(col, value.VecI64([]int64{1, 3}), value.VecI64([]int64{20, 40}))
	require.False(out.IsErr())
	require.Equal([]int64{1, 20, 3, 40}, out.I64())
}

func TestAmendBroadcastsAtomValue(t *testing.T) {
	require := require.New(t)
	col := value.VecI64([]int64{1, 2, 3})
	out := Amend(col, value.VecI64([]int64{0, 2}), value.AtomI64(99))
	require.Equal([]int64{99, 2, 99}, out.I64())
}
