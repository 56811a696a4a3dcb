package expression

import (
	"fmt"
	"strings"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// ScalarFunc evaluates a ScalarFunction's already-evaluated arguments and
// produces a result; registered per function name in a Registry (spec.md
// §9's catalog of builtin scalar functions).
type ScalarFunc func(ctx *sql.Context, args []types.Value) (types.Value, error)

// ScalarFunction is the ScalarExpression::ScalarFunction variant: a named,
// resolved builtin such as UPPER, LOWER, ABS, LENGTH, CONCAT.
type ScalarFunction struct {
	Name string
	Args []sql.Expression
	Ret  types.LogicalType
	Fn   ScalarFunc
}

func NewScalarFunction(name string, ret types.LogicalType, fn ScalarFunc, args []sql.Expression) *ScalarFunction {
	return &ScalarFunction{Name: name, Args: args, Ret: ret, Fn: fn}
}

func (s *ScalarFunction) Type() types.LogicalType    { return s.Ret }
func (s *ScalarFunction) Nullable() bool             { return true }
func (s *ScalarFunction) Children() []sql.Expression { return s.Args }

func (s *ScalarFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &ScalarFunction{Name: s.Name, Args: children, Ret: s.Ret, Fn: s.Fn}, nil
}

func (s *ScalarFunction) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if s.Fn == nil {
		return nil, sql.ErrUnsupportedStmt.New(fmt.Sprintf("function %s has no bound implementation", s.Name))
	}
	args := make([]types.Value, len(s.Args))
	for i, a := range s.Args {
		v, err := a.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		val, ok := v.(types.Value)
		if !ok {
			return nil, sql.ErrTypeMismatch.New(fmt.Sprintf("argument %d to %s did not evaluate to a types.Value", i, s.Name))
		}
		args[i] = val
	}
	out, err := s.Fn(ctx, args)
	if err != nil {
		return nil, sql.ErrInvalidSyntax.New(err.Error())
	}
	return out, nil
}

func (s *ScalarFunction) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(parts, ", "))
}

// Registry maps builtin scalar function names to their implementation.
// Resolve looks names up here and returns a ScalarFunction with its
// implementation attached; rowexec never dispatches on function name
// directly.
type Registry struct {
	funcs map[string]registered
}

type registered struct {
	ret types.LogicalType
	fn  ScalarFunc
}

func NewRegistry() *Registry { return &Registry{funcs: make(map[string]registered)} }

func (r *Registry) Register(name string, ret types.LogicalType, fn ScalarFunc) {
	r.funcs[strings.ToUpper(name)] = registered{ret: ret, fn: fn}
}

// Resolve builds a bound ScalarFunction node for name, or reports whether it
// is registered.
func (r *Registry) Resolve(name string, args []sql.Expression) (*ScalarFunction, bool) {
	reg, ok := r.funcs[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return NewScalarFunction(strings.ToUpper(name), reg.ret, reg.fn, args), true
}

// DefaultRegistry returns a Registry pre-populated with a small, portable
// set of scalar builtins, grounded in the string/arithmetic helpers already
// implemented by the expression package itself.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("UPPER", types.Varchar, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		if args[0].IsNull() {
			return types.Null(types.Varchar), nil
		}
		return types.NewText(strings.ToUpper(args[0].Raw.(string))), nil
	})
	r.Register("LOWER", types.Varchar, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		if args[0].IsNull() {
			return types.Null(types.Varchar), nil
		}
		return types.NewText(strings.ToLower(args[0].Raw.(string))), nil
	})
	r.Register("LENGTH", types.Int64, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		if args[0].IsNull() {
			return types.Null(types.Int64), nil
		}
		return types.NewInt64(int64(len(args[0].Raw.(string)))), nil
	})
	r.Register("CONCAT", types.Varchar, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		var sb strings.Builder
		for _, a := range args {
			if a.IsNull() {
				return types.Null(types.Varchar), nil
			}
			sb.WriteString(a.String())
		}
		return types.NewText(sb.String()), nil
	})
	r.Register("ABS", types.Float64, func(ctx *sql.Context, args []types.Value) (types.Value, error) {
		if args[0].IsNull() {
			return types.Null(types.Float64), nil
		}
		f, err := toFloat64ForAbs(args[0])
		if err != nil {
			return types.Value{}, err
		}
		if f < 0 {
			f = -f
		}
		return types.NewFloat64(f), nil
	})
	return r
}

func toFloat64ForAbs(v types.Value) (float64, error) {
	casted, err := types.Cast(v, types.Float64)
	if err != nil {
		return 0, err
	}
	return casted.Raw.(float64), nil
}
