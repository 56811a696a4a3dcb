package evaluator

import (
	"github.com/kvsql/kvsql/types"
)

// comparisonEvaluator implements =, <>, >, >=, <, <= for any type with a
// total order (including Tuple, lexicographically, per spec.md §4.1). Any
// null operand makes the result null.
type comparisonEvaluator struct {
	ty types.LogicalType
	op types.BinaryOp
}

func (e *comparisonEvaluator) Key() Key { return Key{Ty: e.ty, BinaryOp: e.op} }

func (e *comparisonEvaluator) Eval(l, r types.Value) (types.Value, error) {
	if l.IsNull() || r.IsNull() {
		return types.Null(types.Boolean), nil
	}
	c, err := types.Compare(l, r)
	if err != nil {
		return types.Value{}, err
	}
	var result bool
	switch e.op {
	case types.Eq:
		result = c == 0
	case types.NotEq:
		result = c != 0
	case types.Gt:
		result = c > 0
	case types.GtEq:
		result = c >= 0
	case types.Lt:
		result = c < 0
	case types.LtEq:
		result = c <= 0
	default:
		return types.Value{}, &ErrUnsupportedBinary{Ty: e.ty, Op: e.op}
	}
	return types.NewBoolean(result), nil
}

// logicEvaluator implements AND/OR with three-valued logic: FALSE AND NULL
// = FALSE, TRUE OR NULL = TRUE, and otherwise a null operand makes the
// result null.
type logicEvaluator struct {
	op types.BinaryOp
}

func (e *logicEvaluator) Key() Key { return Key{Ty: types.Boolean, BinaryOp: e.op} }

func (e *logicEvaluator) Eval(l, r types.Value) (types.Value, error) {
	lb, lNull := boolOrNull(l)
	rb, rNull := boolOrNull(r)

	switch e.op {
	case types.And:
		if (!lNull && !lb) || (!rNull && !rb) {
			return types.NewBoolean(false), nil
		}
		if lNull || rNull {
			return types.Null(types.Boolean), nil
		}
		return types.NewBoolean(lb && rb), nil
	case types.Or:
		if (!lNull && lb) || (!rNull && rb) {
			return types.NewBoolean(true), nil
		}
		if lNull || rNull {
			return types.Null(types.Boolean), nil
		}
		return types.NewBoolean(lb || rb), nil
	default:
		return types.Value{}, &ErrUnsupportedBinary{Ty: types.Boolean, Op: e.op}
	}
}

func boolOrNull(v types.Value) (value bool, isNull bool) {
	if v.IsNull() {
		return false, true
	}
	return v.Raw.(bool), false
}

// likeEvaluator implements string pattern matching with `%`/`_` wildcards
// and an optional escape character, which is part of the evaluator's
// identity per spec.md §4.1.
type likeEvaluator struct {
	escape rune
}

func (e *likeEvaluator) Key() Key {
	return Key{Ty: types.Varchar, BinaryOp: types.Like, Escape: e.escape}
}

func (e *likeEvaluator) Eval(l, r types.Value) (types.Value, error) {
	if l.IsNull() || r.IsNull() {
		return types.Null(types.Boolean), nil
	}
	matched := likeMatch(l.Raw.(string), r.Raw.(string), e.escape)
	return types.NewBoolean(matched), nil
}

func likeMatch(s, pattern string, escape rune) bool {
	return likeMatchRunes([]rune(s), []rune(pattern), escape)
}

func likeMatchRunes(s, p []rune, escape rune) bool {
	var memo = map[[2]int]bool{}
	var rec func(si, pi int) bool
	rec = func(si, pi int) bool {
		key := [2]int{si, pi}
		if v, ok := memo[key]; ok {
			return v
		}
		var result bool
		switch {
		case pi == len(p):
			result = si == len(s)
		case p[pi] == escape && pi+1 < len(p):
			result = si < len(s) && s[si] == p[pi+1] && rec(si+1, pi+2)
		case p[pi] == '%':
			result = rec(si, pi+1) || (si < len(s) && rec(si+1, pi))
		case p[pi] == '_':
			result = si < len(s) && rec(si+1, pi+1)
		default:
			result = si < len(s) && s[si] == p[pi] && rec(si+1, pi+1)
		}
		memo[key] = result
		return result
	}
	return rec(0, 0)
}
