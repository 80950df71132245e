package query

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/symtab"
	"github.com/arrowcol/engine/core/table"
	"github.com/arrowcol/engine/core/value"
)

// Update runs the first four select stages (from, mount, where, by), then
// for each `col: expr` projection writes the evaluated result back into the
// table instead of assembling a separate result (§4.6 "update follows the
// same first four stages, then writes back into the table").
func Update(ctx context.Context, p *pool.Pool, interner *symtab.Table, dict *Dict) *value.Value {
	span, ctx := opentracing.StartSpanFromContext(ctx, "query.update")
	defer span.Finish()

	from := evalStage(ctx, "from", func() *value.Value { return evalFrom(p, dict.From) })
	if from.IsErr() {
		return from
	}
	if from.Kind().Base() != value.KTable {
		return value.ErrValue("TYPE", "update: from must yield a TABLE")
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

	if dict.By != nil {
		_, _, ix := evalByStage(ctx, env, p, dict.By, filter)
		// Aggregator projections (e.g. "avg price by sym") run per group and
		// their per-group scalar is broadcast back across every row the
		// group covers; any other expression is evaluated elementwise over
		// the mounted columns and written back as in the ungrouped path.
		for _, proj := range dict.Projections {
			span, _ := opentracing.StartSpanFromContext(ctx, "query.update."+proj.Name)
			var perGroup *value.Value
			fn, ref, isAggr := isAggrCall(proj.Expr)
			if isAggr {
				col, bound := env.Columns[ref.Name]
				if !bound {
					span.Finish()
					return value.ErrValue("NOT_FOUND", "update: unbound column "+ref.Name)
				}
				perGroup = evalAggrCall(p, fn, col, ix)
			} else {
				perGroup = Eval(env, proj.Expr)
			}
			span.Finish()
			if perGroup.IsErr() {
				return perGroup
			}
			broadcast := perGroup
			if isAggr {
				broadcast = expandPerGroup(perGroup, ix)
			} else if filter != nil && !perGroup.Kind().IsAtom() {
				broadcast = value.AtIds(perGroup, filter)
			}
			from = writeBack(from, interner, proj.Name, broadcast, filter)
			if from.IsErr() {
				return from
			}
		}
		return from
	}

	for _, proj := range dict.Projections {
		v := evalStage(ctx, "update."+proj.Name, func() *value.Value { return Eval(env, proj.Expr) })
		if v.IsErr() {
			return v
		}
		// expr was evaluated over the whole (unfiltered) mounted column;
		// narrow a vector result down to the rows `where` selected before
		// writing back (an atom result broadcasts via table.Amend itself,
		// §4.6 "if expr yielded an atom... broadcast across selected
		// rows").
		if filter != nil && !v.Kind().IsAtom() {
			v = value.AtIds(v, filter)
		}
		from = writeBack(from, interner, proj.Name, v, filter)
		if from.IsErr() {
			return from
		}
	}
	return from
}

// expandPerGroup broadcasts a per-group result (one element per group id)
// back across every contributing source row, in index order, so a grouped
// update projection can be written back per-row via Amend (§4.6 update).
func expandPerGroup(perGroup *value.Value, ix *index.Index) *value.Value {
	n := ix.Len()
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = ix.GroupOf(i)
	}
	return value.AtIds(perGroup, ids)
}

// writeBack either creates proj as a new column (filling rows outside
// filter with typed null, §4.6 "evaluate expr... either create the column
// ... or COW-update the existing column at the selected row indices") or
// amends the existing column at filter's row positions.
func writeBack(t *value.Value, interner *symtab.Table, name string, val *value.Value, filter []int64) *value.Value {
	names := columnNames(t, interner)
	cols := t.List()
	for i, n := range names {
		if n != name {
			continue
		}
		if filter == nil {
			return replaceColumn(t, i, val)
		}
		amended := table.Amend(cols[i], value.VecI64(filter), val)
		if amended.IsErr() {
			return amended
		}
		return replaceColumn(t, i, amended)
	}
	// New column: unfiltered update fills every row; filtered creation
	// fills the untouched rows with a typed null of val's kind first.
	rowCount := 0
	if len(cols) > 0 {
		rowCount = cols[0].Len()
	}
	var full *value.Value
	if filter == nil {
		full = val
	} else {
		full = table.Amend(table.NullVec(val.Kind().Base(), rowCount), value.VecI64(filter), val)
	}
	ids := append(append([]int64{}, t.Keys().I64()...), interner.Intern(name))
	newCols := append(append([]*value.Value{}, cols...), full)
	return value.Table(value.VecSymbol(ids), newCols)
}

func replaceColumn(t *value.Value, i int, val *value.Value) *value.Value {
	cols := append([]*value.Value{}, t.List()...)
	cols[i] = val
	return value.Table(t.Keys().Retain(), cols)
}
