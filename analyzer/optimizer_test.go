package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/analyzer/rangeutil"
	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func TestOptimizeFoldsSimplifiesAndPrunes(t *testing.T) {
	table := &catalog.TableMeta{
		Name: "t",
		Columns: []catalog.ColumnMeta{
			{ID: 1, Column: sql.Column{Name: "a", Source: "t", Type: types.Int32}},
			{ID: 2, Column: sql.Column{Name: "b", Source: "t", Type: types.Int32}},
		},
	}
	colA := expression.NewColumnRef(1, "t", "a", types.Int32, false)
	// NOT (a = 1 + 1): should fold 1+1 -> 2, then NOT-flip to a <> 2.
	pred := expression.NewNot(expression.NewEquals(colA,
		expression.NewPlus(expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewInt32(1)))))
	project := plan.NewProject([]sql.Expression{colA}, plan.NewFilter(pred, plan.NewScan(table)))

	out, err := Optimize(sql.NewEmptyContext(), project)
	require.NoError(t, err)

	p := out.(*plan.Project)
	filter := p.Child.(*plan.Filter)
	bin := filter.Predicate.(*expression.Binary)
	require.Equal(t, types.NotEq, bin.Op)
	lit := bin.Right.(*expression.Literal)
	require.Equal(t, types.NewInt32(2), lit.Val)

	scan := filter.Child.(*plan.Scan)
	require.Equal(t, []string{"a"}, scan.Columns)
}

func TestOptimizeHoistsNestedArithmeticIntoDetachableRange(t *testing.T) {
	table := &catalog.TableMeta{
		Name: "t",
		Columns: []catalog.ColumnMeta{
			{ID: 1, Column: sql.Column{Name: "c1", Source: "t", Type: types.Int32}},
		},
	}
	colC1 := expression.NewColumnRef(1, "t", "c1", types.Int32, false)

	scenarios := []struct {
		name string
		pred sql.Expression
	}{
		{
			name: "unary minus wraps a sum on the left",
			pred: expression.NewGreaterThan(
				expression.NewUnary(types.UnaryMinus, expression.NewPlus(colC1, expression.NewLiteral(types.NewInt32(1)))),
				expression.NewLiteral(types.NewInt32(1)),
			),
		},
		{
			name: "unary minus wraps a sum on the right",
			pred: expression.NewLessThan(
				expression.NewLiteral(types.NewInt32(1)),
				expression.NewUnary(types.UnaryMinus, expression.NewPlus(colC1, expression.NewLiteral(types.NewInt32(1)))),
			),
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			filter := plan.NewFilter(s.pred, plan.NewScan(table))

			out, err := Optimize(sql.NewEmptyContext(), filter)
			require.NoError(t, err)

			f := out.(*plan.Filter)
			bin := f.Predicate.(*expression.Binary)
			require.Equal(t, types.Lt, bin.Op)
			lit := bin.Right.(*expression.Literal)
			require.Equal(t, types.NewInt32(-2), lit.Val)

			ranges := rangeutil.Detach(f.Predicate)
			col := sql.ColumnSummary{Name: "c1", Relation: "t"}
			require.Len(t, ranges[col], 1)
			rng := ranges[col][0]
			require.Nil(t, rng.Low.Value)
			require.NotNil(t, rng.High.Value)
			require.Equal(t, types.NewInt32(-2), *rng.High.Value)
			require.False(t, rng.High.Inclusive)
		})
	}
}

func TestOptimizeIsIdempotentOnAlreadySimplifiedPlan(t *testing.T) {
	table := &catalog.TableMeta{
		Name: "t",
		Columns: []catalog.ColumnMeta{
			{ID: 1, Column: sql.Column{Name: "a", Source: "t", Type: types.Int32}},
		},
	}
	colA := expression.NewColumnRef(1, "t", "a", types.Int32, false)
	scan := plan.NewScan(table).WithColumns([]string{"a"})
	project := plan.NewProject([]sql.Expression{colA}, scan)

	out, err := Optimize(sql.NewEmptyContext(), project)
	require.NoError(t, err)
	p := out.(*plan.Project)
	require.Equal(t, []string{"a"}, p.Child.(*plan.Scan).Columns)
}
