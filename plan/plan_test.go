package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/expression"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func testTable() *catalog.TableMeta {
	return &catalog.TableMeta{
		Name: "t",
		Columns: []catalog.ColumnMeta{
			{ID: 1, Column: sql.Column{Name: "a", Source: "t", Type: types.Int32}},
			{ID: 2, Column: sql.Column{Name: "b", Source: "t", Type: types.Varchar}},
		},
	}
}

func TestScanSchemaAndColumnProjection(t *testing.T) {
	table := testTable()
	s := NewScan(table)
	require.Equal(t, table.Schema(), s.Schema())

	projected := s.WithColumns([]string{"b"})
	require.Len(t, projected.Schema(), 1)
	require.Equal(t, "b", projected.Schema()[0].Name)
}

func TestScanWithPhysicalPreservesFields(t *testing.T) {
	table := testTable()
	s := NewScan(table).WithColumns([]string{"a"})
	withIdx := s.WithPhysical(PhysicalIndexScan{Index: "idx_a"})
	require.Equal(t, PhysicalIndexScan{Index: "idx_a"}, withIdx.Physical)
	require.Equal(t, s.Columns, withIdx.Columns)
	require.Contains(t, withIdx.String(), "idx_a")
}

func TestFilterExpressionsRoundTrip(t *testing.T) {
	pred := expression.NewLiteral(types.NewBoolean(true))
	f := NewFilter(pred, NewDummy())
	require.Equal(t, []sql.Expression{pred}, f.Expressions())

	newPred := expression.NewLiteral(types.NewBoolean(false))
	rebuilt, err := f.WithExpressions(newPred)
	require.NoError(t, err)
	require.Same(t, newPred, rebuilt.(*Filter).Predicate)
}

func TestFilterWithChildrenArityError(t *testing.T) {
	f := NewFilter(expression.NewLiteral(types.NewBoolean(true)), NewDummy())
	_, err := f.WithChildren(NewDummy(), NewDummy())
	require.Error(t, err)
}

func TestProjectSchemaUsesOutputName(t *testing.T) {
	col := expression.NewColumnRef(1, "t", "a", types.Int32, false)
	alias := expression.NewAlias("renamed", col)
	p := NewProject([]sql.Expression{alias}, NewScan(testTable()))
	schema := p.Schema()
	require.Len(t, schema, 1)
	require.Equal(t, "renamed", schema[0].Name)
}

func TestAggregateExpressionsOrderIsGroupByThenAggCalls(t *testing.T) {
	groupBy := expression.NewColumnRef(1, "t", "a", types.Int32, false)
	agg := expression.NewCountStar()
	a := NewAggregate([]sql.Expression{groupBy}, []sql.Expression{agg}, NewScan(testTable()))
	exprs := a.Expressions()
	require.Equal(t, []sql.Expression{groupBy, agg}, exprs)

	rebuilt, err := a.WithExpressions(groupBy, agg)
	require.NoError(t, err)
	ra := rebuilt.(*Aggregate)
	require.Equal(t, 1, len(ra.GroupBy))
	require.Equal(t, 1, len(ra.AggCalls))
}

func TestAggregateStringDistinguishesSimpleFromHash(t *testing.T) {
	scan := NewScan(testTable())
	simple := NewAggregate(nil, []sql.Expression{expression.NewCountStar()}, scan)
	require.Equal(t, "SimpleAgg", simple.String())

	groupBy := expression.NewColumnRef(1, "t", "a", types.Int32, false)
	hash := NewAggregate([]sql.Expression{groupBy}, nil, scan)
	require.Equal(t, "HashAgg", hash.String())
}

func TestJoinExpressionsNilOnCrossJoin(t *testing.T) {
	j := NewJoin(CrossJoin, nil, NewDummy(), NewDummy())
	require.Nil(t, j.Expressions())

	_, err := j.WithExpressions()
	require.NoError(t, err)

	_, err = j.WithExpressions(expression.NewLiteral(types.NewBoolean(true)))
	require.Error(t, err)
}

func TestJoinWithChildrenAndPhysical(t *testing.T) {
	on := expression.NewLiteral(types.NewBoolean(true))
	j := NewJoin(InnerJoin, on, NewDummy(), NewDummy())
	rebuilt, err := j.WithChildren(NewDummy(), NewDummy())
	require.NoError(t, err)
	require.Equal(t, on, rebuilt.(*Join).On)

	withHash := j.WithPhysical(PhysicalHashJoin{})
	require.Equal(t, PhysicalHashJoin{}, withHash.Physical)
}

func TestSortExpressionsTrackOrders(t *testing.T) {
	key := expression.NewColumnRef(1, "t", "a", types.Int32, false)
	s := NewSort([]SortOrder{{Expr: key, Desc: true}}, NewScan(testTable()))
	require.Equal(t, []sql.Expression{key}, s.Expressions())

	newKey := expression.NewColumnRef(2, "t", "b", types.Varchar, false)
	rebuilt, err := s.WithExpressions(newKey)
	require.NoError(t, err)
	rs := rebuilt.(*Sort)
	require.Equal(t, newKey, rs.Orders[0].Expr)
	require.True(t, rs.Orders[0].Desc)
}

func TestLimitString(t *testing.T) {
	l := NewLimit(10, 5, NewDummy())
	require.Equal(t, "Limit(10, offset=5)", l.String())
}

func TestUnionSchemaIsLeftSchema(t *testing.T) {
	left := NewScan(testTable())
	u := NewUnion(left, NewScan(testTable()), true)
	require.Equal(t, left.Schema(), u.Schema())
	require.Equal(t, "Union(distinct)", u.String())
}

func TestValuesExpressionsFlattenAndRegroup(t *testing.T) {
	row1 := []sql.Expression{expression.NewLiteral(types.NewInt32(1)), expression.NewLiteral(types.NewInt32(2))}
	row2 := []sql.Expression{expression.NewLiteral(types.NewInt32(3)), expression.NewLiteral(types.NewInt32(4))}
	v := NewValues(sql.Schema{{Name: "a", Type: types.Int32}, {Name: "b", Type: types.Int32}}, [][]sql.Expression{row1, row2})

	flat := v.Expressions()
	require.Len(t, flat, 4)

	rebuilt, err := v.WithExpressions(flat...)
	require.NoError(t, err)
	rv := rebuilt.(*Values)
	require.Len(t, rv.Rows, 2)
	require.Len(t, rv.Rows[0], 2)
	require.Len(t, rv.Rows[1], 2)
}

func TestDummySchemaIsEmpty(t *testing.T) {
	d := NewDummy()
	require.Empty(t, d.Schema())
	_, err := d.WithChildren(NewDummy())
	require.Error(t, err)
}

func TestInsertStringAndSchema(t *testing.T) {
	ins := NewInsert(testTable(), []string{"a", "b"}, NewDummy())
	require.Equal(t, dmlResultSchema, ins.Schema())
	require.Equal(t, "Insert(t)", ins.String())
}

func TestUpdateAssignmentsRoundTripInTableColumnOrder(t *testing.T) {
	table := testTable()
	assignments := map[string]sql.Expression{
		"b": expression.NewLiteral(types.NewText("x")),
		"a": expression.NewLiteral(types.NewInt32(1)),
	}
	u := NewUpdate(table, assignments, NewScan(table))
	exprs := u.Expressions()
	require.Len(t, exprs, 2)
	// table column order is a, b
	require.Equal(t, assignments["a"], exprs[0])
	require.Equal(t, assignments["b"], exprs[1])

	rebuilt, err := u.WithExpressions(exprs...)
	require.NoError(t, err)
	ru := rebuilt.(*Update)
	require.Equal(t, assignments["a"], ru.Assignments["a"])
	require.Equal(t, assignments["b"], ru.Assignments["b"])
}

func TestDeleteString(t *testing.T) {
	d := NewDelete(testTable(), NewDummy())
	require.Equal(t, "Delete(t)", d.String())
}

func TestCreateTableSchemaIsDMLResult(t *testing.T) {
	c := NewCreateTable("t", []sql.Column{{Name: "a", Type: types.Int32}}, true)
	require.Equal(t, dmlResultSchema, c.Schema())
}

func TestAlterTableVariants(t *testing.T) {
	add := NewAlterAddColumn("t", sql.Column{Name: "c", Type: types.Int32})
	require.Equal(t, AlterAddColumn, add.Kind)

	drop := NewAlterDropColumn("t", "c")
	require.Equal(t, AlterDropColumn, drop.Kind)
	require.Equal(t, "c", drop.Name)
}

func TestCreateIndexString(t *testing.T) {
	idx := NewCreateIndex(catalog.IndexMeta{Name: "idx_a", Table: "t", Columns: []string{"a"}})
	require.Equal(t, "CreateIndex(idx_a)", idx.String())
}

func TestExplainWrapsChildSchema(t *testing.T) {
	e := NewExplain(NewScan(testTable()), false)
	require.Len(t, e.Schema(), 1)
	require.Contains(t, e.String(), "SeqScan(t)")
}

func TestShowAndDescribeSchema(t *testing.T) {
	output := sql.Schema{{Name: "Tables_in_db", Type: types.Varchar}}
	show := NewShow(ShowTables, "", output)
	require.Equal(t, output, show.Schema())

	describe := NewDescribe("t", output)
	require.Equal(t, output, describe.Schema())
}

func TestJoinTypeStringAllVariants(t *testing.T) {
	cases := []struct {
		jt   JoinType
		want string
	}{
		{InnerJoin, "InnerJoin"},
		{LeftJoin, "LeftJoin"},
		{RightJoin, "RightJoin"},
		{FullJoin, "FullJoin"},
		{CrossJoin, "CrossJoin"},
		{SemiJoin, "SemiJoin"},
		{AntiJoin, "AntiJoin"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.jt.String())
	}
}
