package expression

import (
	"fmt"
	"strings"

	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

// Substring is the ScalarExpression::Substring variant: SUBSTRING(expr FROM
// start [FOR len]). Start is 1-indexed per SQL convention; a negative or
// zero start clamps to the beginning of the string rather than erroring,
// matching the original's lenient behavior.
type Substring struct {
	Expr  sql.Expression
	Start sql.Expression
	Len   sql.Expression // nil means "to the end"
}

func NewSubstring(expr, start, length sql.Expression) *Substring {
	return &Substring{Expr: expr, Start: start, Len: length}
}

func (s *Substring) Type() types.LogicalType { return types.Varchar }
func (s *Substring) Nullable() bool          { return true }

func (s *Substring) Children() []sql.Expression {
	children := []sql.Expression{s.Expr, s.Start}
	if s.Len != nil {
		children = append(children, s.Len)
	}
	return children
}

func (s *Substring) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	switch len(children) {
	case 2:
		return &Substring{Expr: children[0], Start: children[1]}, nil
	case 3:
		return &Substring{Expr: children[0], Start: children[1], Len: children[2]}, nil
	default:
		return nil, fmt.Errorf("expression: Substring takes two or three children")
	}
}

func evalInt(ctx *sql.Context, row sql.Row, e sql.Expression) (int64, bool, error) {
	v, err := e.Eval(ctx, row)
	if err != nil {
		return 0, false, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return 0, false, sql.ErrTypeMismatch.New("integer argument did not evaluate to a types.Value")
	}
	if val.IsNull() {
		return 0, true, nil
	}
	casted, err := types.Cast(val, types.Int64)
	if err != nil {
		return 0, false, sql.ErrTypeMismatch.New(err.Error())
	}
	return casted.Raw.(int64), false, nil
}

func evalString(ctx *sql.Context, row sql.Row, e sql.Expression) (string, bool, error) {
	v, err := e.Eval(ctx, row)
	if err != nil {
		return "", false, err
	}
	val, ok := v.(types.Value)
	if !ok {
		return "", false, sql.ErrTypeMismatch.New("string argument did not evaluate to a types.Value")
	}
	if val.IsNull() {
		return "", true, nil
	}
	casted, err := types.Cast(val, types.Varchar)
	if err != nil {
		return "", false, sql.ErrTypeMismatch.New(err.Error())
	}
	return casted.Raw.(string), false, nil
}

func (s *Substring) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	str, null, err := evalString(ctx, row, s.Expr)
	if err != nil {
		return nil, err
	}
	if null {
		return types.Null(types.Varchar), nil
	}
	start, null, err := evalInt(ctx, row, s.Start)
	if err != nil {
		return nil, err
	}
	if null {
		return types.Null(types.Varchar), nil
	}

	runes := []rune(str)
	n := int64(len(runes))
	idx := start - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}

	end := n
	if s.Len != nil {
		length, null, err := evalInt(ctx, row, s.Len)
		if err != nil {
			return nil, err
		}
		if null {
			return types.Null(types.Varchar), nil
		}
		if length < 0 {
			length = 0
		}
		end = idx + length
		if end > n {
			end = n
		}
	}
	if end < idx {
		end = idx
	}
	return types.NewText(string(runes[idx:end])), nil
}

func (s *Substring) String() string {
	if s.Len != nil {
		return fmt.Sprintf("SUBSTRING(%s FROM %s FOR %s)", s.Expr.String(), s.Start.String(), s.Len.String())
	}
	return fmt.Sprintf("SUBSTRING(%s FROM %s)", s.Expr.String(), s.Start.String())
}

// Position is the ScalarExpression::Position variant: POSITION(needle IN
// haystack), 1-indexed, 0 when not found.
type Position struct {
	Needle, Haystack sql.Expression
}

func NewPosition(needle, haystack sql.Expression) *Position {
	return &Position{Needle: needle, Haystack: haystack}
}

func (p *Position) Type() types.LogicalType    { return types.Int64 }
func (p *Position) Nullable() bool             { return true }
func (p *Position) Children() []sql.Expression { return []sql.Expression{p.Needle, p.Haystack} }

func (p *Position) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: Position takes exactly two children")
	}
	return &Position{Needle: children[0], Haystack: children[1]}, nil
}

func (p *Position) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	needle, null, err := evalString(ctx, row, p.Needle)
	if err != nil {
		return nil, err
	}
	if null {
		return types.Null(types.Int64), nil
	}
	haystack, null, err := evalString(ctx, row, p.Haystack)
	if err != nil {
		return nil, err
	}
	if null {
		return types.Null(types.Int64), nil
	}
	idx := strings.Index(haystack, needle)
	if idx < 0 {
		return types.NewInt64(0), nil
	}
	// rune offset, not byte offset
	return types.NewInt64(int64(len([]rune(haystack[:idx])) + 1)), nil
}

func (p *Position) String() string {
	return fmt.Sprintf("POSITION(%s IN %s)", p.Needle.String(), p.Haystack.String())
}

// TrimMode selects which side(s) Trim strips from.
type TrimMode uint8

const (
	TrimBoth TrimMode = iota
	TrimLeading
	TrimTrailing
)

// Trim is the ScalarExpression::Trim variant: TRIM([mode] [chars FROM]
// expr). A nil Chars trims ASCII whitespace.
type Trim struct {
	Expr  sql.Expression
	Chars sql.Expression // nil means whitespace
	Mode  TrimMode
}

func NewTrim(expr, chars sql.Expression, mode TrimMode) *Trim {
	return &Trim{Expr: expr, Chars: chars, Mode: mode}
}

func (t *Trim) Type() types.LogicalType { return types.Varchar }
func (t *Trim) Nullable() bool          { return true }

func (t *Trim) Children() []sql.Expression {
	if t.Chars != nil {
		return []sql.Expression{t.Expr, t.Chars}
	}
	return []sql.Expression{t.Expr}
}

func (t *Trim) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	switch len(children) {
	case 1:
		return &Trim{Expr: children[0], Mode: t.Mode}, nil
	case 2:
		return &Trim{Expr: children[0], Chars: children[1], Mode: t.Mode}, nil
	default:
		return nil, fmt.Errorf("expression: Trim takes one or two children")
	}
}

func (t *Trim) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	str, null, err := evalString(ctx, row, t.Expr)
	if err != nil {
		return nil, err
	}
	if null {
		return types.Null(types.Varchar), nil
	}
	cutset := " \t\n\r"
	if t.Chars != nil {
		c, null, err := evalString(ctx, row, t.Chars)
		if err != nil {
			return nil, err
		}
		if null {
			return types.Null(types.Varchar), nil
		}
		cutset = c
	}

	switch t.Mode {
	case TrimLeading:
		str = strings.TrimLeft(str, cutset)
	case TrimTrailing:
		str = strings.TrimRight(str, cutset)
	default:
		str = strings.Trim(str, cutset)
	}
	return types.NewText(str), nil
}

func (t *Trim) String() string {
	return fmt.Sprintf("TRIM(%s)", t.Expr.String())
}
