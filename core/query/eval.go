package query

import (
	"github.com/arrowcol/engine/core/aggr"
	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/kernel"
	"github.com/arrowcol/engine/core/ops"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// binOps maps a Call's Fn to an arithmetic kernel operator.
var binOps = map[string]kernel.Op{
	"+": kernel.Add, "-": kernel.Sub, "*": kernel.Mul, "/": kernel.Div,
	"div": kernel.IDiv, "mod": kernel.Mod, "xbar": kernel.Xbar,
}

// cmpOps maps a Call's Fn to a comparison kernel operator.
var cmpOps = map[string]kernel.CmpOp{
	"=": kernel.Eq, "<>": kernel.Ne, "<": kernel.Lt, ">": kernel.Gt, "<=": kernel.Le, ">=": kernel.Ge,
}

// aggrOps names the aggregator calls a projection may apply directly to a
// ColumnRef, dispatched against the query's grouping Index rather than
// evaluated elementwise (§4.6 step 5 "default projection... run each
// aggregator against the Index").
var aggrOps = map[string]aggr.Op{
	"sum": aggr.OpSum, "min": aggr.OpMin, "max": aggr.OpMax,
	"avg": aggr.OpAvg, "first": aggr.OpFirst, "last": aggr.OpLast,
}

// setOps names the core/ops calls a projection may apply to an already-
// evaluated column (§4.7).
var setOps = map[string]func(x *value.Value) *value.Value{
	"asc": ops.Asc, "desc": ops.Desc, "iasc": func(x *value.Value) *value.Value { return ops.Iasc(x) },
	"idesc":    func(x *value.Value) *value.Value { return ops.Idesc(x) },
	"distinct": ops.Distinct,
}

// Env binds a query's mounted columns (a table's columns, plus any `by`
// key columns already materialised) for expression evaluation.
type Env struct {
	Pool    *pool.Pool
	Columns map[string]*value.Value
}

// Eval evaluates a non-aggregator expression against env's bound columns.
// Aggregator calls directly on a ColumnRef are special-cased by the select/
// update pipeline before Eval is reached (§4.6); Eval's job is everything
// else: column lookups, literals, arithmetic, comparisons, and ordering/
// set-op calls.
func Eval(env *Env, node Node) *value.Value {
	switch n := node.(type) {
	case *ColumnRef:
		col, ok := env.Columns[n.Name]
		if !ok {
			return value.ErrValue("NOT_FOUND", "query: unbound column "+n.Name)
		}
		return col
	case *Literal:
		return n.Value
	case *Call:
		return evalCall(env, n)
	}
	return value.ErrValue("TYPE", "query: unrecognised expression node")
}

func evalCall(env *Env, c *Call) *value.Value {
	args := make([]*value.Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = Eval(env, a)
		if args[i].IsErr() {
			return args[i]
		}
	}

	if op, ok := binOps[c.Fn]; ok {
		if len(args) != 2 {
			return value.ErrValue("ARITY", "query: "+c.Fn+" takes 2 arguments")
		}
		return kernel.BinopMap(env.Pool, op, args[0], args[1])
	}
	if op, ok := cmpOps[c.Fn]; ok {
		if len(args) != 2 {
			return value.ErrValue("ARITY", "query: "+c.Fn+" takes 2 arguments")
		}
		return kernel.CmpMap(env.Pool, op, args[0], args[1])
	}
	if fn, ok := setOps[c.Fn]; ok {
		if len(args) != 1 {
			return value.ErrValue("ARITY", "query: "+c.Fn+" takes 1 argument")
		}
		return fn(args[0])
	}
	switch c.Fn {
	case "find":
		if len(args) != 2 {
			return value.ErrValue("ARITY", "query: find takes 2 arguments")
		}
		return ops.Find(args[0], args[1])
	case "in":
		if len(args) != 2 {
			return value.ErrValue("ARITY", "query: in takes 2 arguments")
		}
		return ops.In(args[0], args[1])
	case "count":
		// The ungrouped count(x) is the length of x; callers needing the
		// grouped form use evalAggrCall instead.
		if len(args) != 1 {
			return value.ErrValue("ARITY", "query: count takes 1 argument")
		}
		return value.AtomI64(int64(args[0].Len()))
	}
	return value.ErrValue("NOT_IMPLEMENTED", "query: unknown function "+c.Fn)
}

// isAggrCall reports whether node is a direct aggregator-over-column call
// ("sum(px)") the pipeline must dispatch against the grouping Index rather
// than hand to Eval.
func isAggrCall(node Node) (fn string, col *ColumnRef, ok bool) {
	c, isCall := node.(*Call)
	if !isCall || len(c.Args) != 1 {
		return "", nil, false
	}
	ref, isRef := c.Args[0].(*ColumnRef)
	if !isRef {
		return "", nil, false
	}
	if _, known := aggrOps[c.Fn]; !known && c.Fn != "count" && c.Fn != "med" &&
		c.Fn != "dev" && c.Fn != "collect" && c.Fn != "row" {
		return "", nil, false
	}
	return c.Fn, ref, true
}

// evalAggrCall runs an aggregator call against ix using val read from env
// (§4.4/§4.6).
func evalAggrCall(p *pool.Pool, fn string, val *value.Value, ix *index.Index) *value.Value {
	switch fn {
	case "sum":
		return aggr.Sum(p, val, ix)
	case "min":
		return aggr.Min(p, val, ix)
	case "max":
		return aggr.Max(p, val, ix)
	case "avg":
		return aggr.Avg(p, val, ix)
	case "first":
		return aggr.First(p, val, ix)
	case "last":
		return aggr.Last(p, val, ix)
	case "dev":
		return aggr.Dev(p, val, ix)
	case "med":
		return aggr.Med(p, val, ix)
	case "collect":
		return aggr.Collect(p, val, ix)
	case "row":
		return aggr.Row(p, ix)
	case "count":
		return aggr.Count(p, ix)
	}
	return value.ErrValue("NOT_IMPLEMENTED", "query: unknown aggregator "+fn)
}
