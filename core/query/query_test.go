package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/symtab"
	"github.com/arrowcol/engine/core/value"
)

func buildTable(st *symtab.Table, names []string, cols []*value.Value) *value.Value {
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = st.Intern(n)
	}
	return value.Table(value.VecSymbol(ids), cols)
}

// TestSelectGroupedSum reproduces spec scenario 3: `select sum(px) by sym
// from t` on {sym:[A,B,A], px:[10,20,30]} yields {sym:[A,B], px:[40,20]}.
func TestSelectGroupedSum(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	p := pool.New(1)

	a, b := st.Intern("A"), st.Intern("B")
	tbl := buildTable(st, []string{"sym", "px"}, []*value.Value{
		value.VecSymbol([]int64{a, b, a}),
		value.VecI64([]int64{10, 20, 30}),
	})

	dict := &Dict{
		From: &Literal{Value: tbl},
		By:   &ColumnRef{Name: "sym"},
		Projections: []Projection{
			{Name: "px", Expr: &Call{Fn: "sum", Args: []Node{&ColumnRef{Name: "px"}}}},
		},
	}

	out := Select(context.Background(), p, st, dict)
	require.False(out.IsErr(), out.String())

	names := columnNames(out, st)
	require.Equal([]string{"sym", "px"}, names)
	require.Equal([]int64{a, b}, out.List()[0].I64())
	require.Equal([]int64{40, 20}, out.List()[1].I64())
}

// TestSelectWhereFilter covers an ungrouped, filtered select with no
// explicit projections (§4.6 step 6: default projection keeps each group's
// first row, here one row per surviving source row since there's no
// `by`).
func TestSelectWhereFilter(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	p := pool.New(1)

	tbl := buildTable(st, []string{"x"}, []*value.Value{value.VecI64([]int64{1, 2, 3, 4})})

	dict := &Dict{
		From:  &Literal{Value: tbl},
		Where: &Call{Fn: ">", Args: []Node{&ColumnRef{Name: "x"}, &Literal{Value: value.AtomI64(2)}}},
	}

	out := Select(context.Background(), p, st, dict)
	require.False(out.IsErr(), out.String())
	require.Equal([]int64{3, 4}, out.List()[0].I64())
}

// TestSelectExplicitArithmeticProjection exercises a non-aggregator
// projection expression ("px + 1") evaluated elementwise via the registry.
func TestSelectExplicitArithmeticProjection(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	p := pool.New(1)

	tbl := buildTable(st, []string{"px"}, []*value.Value{value.VecI64([]int64{10, 20})})
	dict := &Dict{
		From: &Literal{Value: tbl},
		Projections: []Projection{
			{Name: "px1", Expr: &Call{Fn: "+", Args: []Node{&ColumnRef{Name: "px"}, &Literal{Value: value.AtomI64(1)}}}},
		},
	}

	out := Select(context.Background(), p, st, dict)
	require.False(out.IsErr(), out.String())
	require.Equal([]int64{11, 21}, out.List()[0].I64())
}

// TestUpdateUnfilteredCreatesColumn exercises update's non-grouped,
// non-filtered write-back path, creating a new column.
func TestUpdateUnfilteredCreatesColumn(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	p := pool.New(1)

	tbl := buildTable(st, []string{"px"}, []*value.Value{value.VecI64([]int64{10, 20, 30})})
	dict := &Dict{
		From: &Literal{Value: tbl},
		Projections: []Projection{
			{Name: "px2", Expr: &Call{Fn: "*", Args: []Node{&ColumnRef{Name: "px"}, &Literal{Value: value.AtomI64(2)}}}},
		},
	}

	out := Update(context.Background(), p, st, dict)
	require.False(out.IsErr(), out.String())
	names := columnNames(out, st)
	require.Equal([]string{"px", "px2"}, names)
	require.Equal([]int64{20, 40, 60}, out.List()[1].I64())
}

// TestUpdateFilteredAmendsExistingColumn covers update with a `where`
// filter overwriting only the selected rows of an existing column.
func TestUpdateFilteredAmendsExistingColumn(t *testing.T) {
	require := require.New(t)
	st := symtab.New()
	p := pool.New(1)

	tbl := buildTable(st, []string{"px"}, []*value.Value{value.VecI64([]int64{10, 20, 30, 40})})
	dict := &Dict{
		From:  &Literal{Value: tbl},
		Where: &Call{Fn: ">", Args: []Node{&ColumnRef{Name: "px"}, &Literal{Value: value.AtomI64(15)}}},
		Projections: []Projection{
			{Name: "px", Expr: &Call{Fn: "+", Args: []Node{&ColumnRef{Name: "px"}, &Literal{Value: value.AtomI64(1)}}}},
		},
	}

	out := Update(context.Background(), p, st, dict)
	require.False(out.IsErr(), out.String())
	require.Equal([]int64{10, 21, 31, 41}, out.List()[0].I64())
}

// TestEvalDirectKernelDispatch sanity-checks Eval's registry dispatch
// against kernel.BinopMap independent of the select/update pipeline.
func TestEvalDirectKernelDispatch(t *testing.T) {
	require := require.New(t)
	p := pool.New(1)
	env := &Env{Pool: p, Columns: map[string]*value.Value{"x": value.VecI64([]int64{1, 2, 3})}}
	out := Eval(env, &Call{Fn: "+", Args: []Node{&ColumnRef{Name: "x"}, &Literal{Value: value.AtomI64(10)}}})
	require.False(out.IsErr())
	require.Equal([]int64{11, 12, 13}, out.I64())
}
