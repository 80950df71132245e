package query

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/symtab"
	"github.com/arrowcol/engine/core/value"
)

// Select runs the select pipeline (§4.6): from, mount, where, by,
// projections, default projection, assemble. Spans wrap each
// stage; they are no-ops unless a tracer is installed on ctx, so tracing
// never taxes the hot kernel path when unused.
func Select(ctx context.Context, p *pool.Pool, interner *symtab.Table, dict *Dict) *value.Value {
	span, ctx := opentracing.StartSpanFromContext(ctx, "query.select")
	defer span.Finish()

	from := evalStage(ctx, "from", func() *value.Value { return evalFrom(p, dict.From) })
	if from.IsErr() {
		return from
	}
	if from.Kind().Base() != value.KTable {
		return value.ErrValue("TYPE", "select: from must yield a TABLE")
	}

	env := mountColumns(p, from, interner)

	var filter []int64
	if dict.Where != nil {
		mask := evalStage(ctx, "where", func() *value.Value { return Eval(env, dict.Where) })
		if mask.IsErr() {
			return mask
		}
		filter = whereToIndices(mask)
	}

	var ix *index.Index
	var groupNames []string
	var groupVals []*value.Value
	if dict.By != nil {
		groupNames, groupVals, ix = evalByStage(ctx, env, p, dict.By, filter)
	} else if filter != nil {
		ix = filterOnlyIndex(filter)
	}

	projNames, projVals, errv := evalProjections(ctx, env, p, ix, dict.Projections)
	if errv != nil {
		return errv
	}

	if dict.Projections == nil {
		projNames, projVals = defaultProjection(p, from, interner, ix, groupNames)
	}

	keys := append(append([]string{}, groupNames...), projNames...)
	vals := append(append([]*value.Value{}, groupVals...), projVals...)
	return buildResult(interner, keys, vals)
}

// evalStage wraps fn in a child span named for the pipeline stage.
func evalStage(ctx context.Context, name string, fn func() *value.Value) *value.Value {
	span, _ := opentracing.StartSpanFromContext(ctx, "query."+name)
	defer span.Finish()
	return fn()
}

func evalFrom(p *pool.Pool, node Node) *value.Value {
	return Eval(&Env{Pool: p, Columns: nil}, node)
}

// mountColumns pushes each of from's columns as a local binding named by
// its symbol, so projection/where/by expressions can reference columns by
// name (§4.6 step 2).
func mountColumns(p *pool.Pool, from *value.Value, interner *symtab.Table) *Env {
	env := &Env{Pool: p, Columns: make(map[string]*value.Value)}
	names := columnNames(from, interner)
	for i, n := range names {
		env.Columns[n] = from.List()[i]
	}
	return env
}

// columnNames resolves a TABLE/DICT's symbol-keyed column names via the
// interner (mirrors core/table's helper of the same shape).
func columnNames(t *value.Value, interner *symtab.Table) []string {
	ids := t.Keys().I64()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = interner.String(id)
	}
	return out
}

// whereToIndices returns the row indices where mask is true (§4.6 step 3).
func whereToIndices(mask *value.Value) []int64 {
	b := mask.B8()
	out := make([]int64, 0, len(b))
	for i, v := range b {
		if v != 0 {
			out = append(out, int64(i))
		}
	}
	return out
}

// filterOnlyIndex builds a degenerate Index over a `where`-only select
// with no `by`: every filtered row is its own group, order preserved,
// matching the "no explicit projections -> aggr_first per column" default
// (§4.6 step 6) acting as a plain row selection.
func filterOnlyIndex(filter []int64) *index.Index {
	ids := make([]int64, len(filter))
	for i := range ids {
		ids[i] = int64(i)
	}
	return &index.Index{Scheme: index.SchemeIDs, GroupCount: len(filter), GroupIDs: ids, Filter: filter}
}

// evalByStage evaluates the `by` expression and builds the grouping Index
// (§4.6 step 4). A bare ColumnRef contributes one named group column; any
// other expression becomes the synthesised "by" column per the spec's
// "result value becomes the synthesised By column".
func evalByStage(ctx context.Context, env *Env, p *pool.Pool, by Node, filter []int64) (names []string, vals []*value.Value, ix *index.Index) {
	groupVal := evalStage(ctx, "by", func() *value.Value { return Eval(env, by) })
	if groupVal.IsErr() {
		return nil, nil, &index.Index{Scheme: index.SchemeIDs, GroupCount: 0, GroupIDs: []int64{}}
	}
	ix = index.Group(p, groupVal, filter)

	name := "by"
	if ref, ok := by.(*ColumnRef); ok {
		name = ref.Name
	}
	groupKeyCol := firstPerGroup(groupVal, ix)
	return []string{name}, []*value.Value{groupKeyCol}, ix
}

// firstPerGroup picks one representative source value per group, in
// group-id order, for the grouping column's own output cell.
func firstPerGroup(val *value.Value, ix *index.Index) *value.Value {
	g := ix.GroupCount
	ids := make([]int64, g)
	seen := make([]bool, g)
	n := ix.Len()
	for i := 0; i < n; i++ {
		group := ix.GroupOf(i)
		if !seen[group] {
			ids[group] = ix.Row(i)
			seen[group] = true
		}
	}
	return value.AtIds(val, ids)
}

// evalProjections evaluates each `name: expr` projection (§4.6 step 5):
// an aggregator applied directly to a ColumnRef dispatches against ix;
// anything else evaluates elementwise over the mounted (unfiltered)
// columns.
func evalProjections(ctx context.Context, env *Env, p *pool.Pool, ix *index.Index, projections []Projection) (names []string, vals []*value.Value, errv *value.Value) {
	for _, proj := range projections {
		span, _ := opentracing.StartSpanFromContext(ctx, "query.project."+proj.Name)
		var v *value.Value
		if fn, ref, ok := isAggrCall(proj.Expr); ok && ix != nil {
			col, bound := env.Columns[ref.Name]
			if !bound {
				v = value.ErrValue("NOT_FOUND", "select: unbound column "+ref.Name)
			} else {
				v = evalAggrCall(p, fn, col, ix)
			}
		} else {
			v = Eval(env, proj.Expr)
		}
		span.Finish()
		if v.IsErr() {
			return nil, nil, v
		}
		names = append(names, proj.Name)
		vals = append(vals, v)
	}
	return names, vals, nil
}

// defaultProjection implements step 6: no explicit projections means every
// non-grouping column survives, collapsed per group by firstPerGroup, which
// takes each group's first row as is (a null there is kept, not skipped).
func defaultProjection(p *pool.Pool, from *value.Value, interner *symtab.Table, ix *index.Index, groupNames []string) (names []string, vals []*value.Value) {
	excluded := make(map[string]bool, len(groupNames))
	for _, n := range groupNames {
		excluded[n] = true
	}
	allNames := columnNames(from, interner)
	cols := from.List()
	for i, n := range allNames {
		if excluded[n] {
			continue
		}
		col := cols[i]
		if ix != nil {
			col = firstPerGroup(col, ix)
		}
		names = append(names, n)
		vals = append(vals, col)
	}
	return names, vals
}

// buildResult assembles the output TABLE (§4.6 step 7).
func buildResult(interner *symtab.Table, names []string, vals []*value.Value) *value.Value {
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = interner.Intern(n)
	}
	return value.Table(value.VecSymbol(ids), vals)
}
