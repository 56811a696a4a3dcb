package rowexec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/types"
)

func buildShow(cat catalog.Catalog, s *plan.Show) (sql.RowIter, error) {
	switch s.Kind {
	case plan.ShowTables:
		names := cat.Tables()
		sort.Strings(names)
		rows := make([]sql.Row, len(names))
		for i, n := range names {
			rows[i] = sql.Row{types.NewText(n)}
		}
		return sql.RowsToRowIter(rows...), nil
	case plan.ShowDatabases:
		return sql.RowsToRowIter(sql.Row{types.NewText("main")}), nil
	case plan.ShowCreateTable:
		table, ok := cat.Table(s.Target)
		if !ok {
			return nil, sql.ErrCatalogMiss.New(s.Target)
		}
		return sql.RowsToRowIter(sql.Row{types.NewText(s.Target), types.NewText(createTableDDL(table))}), nil
	case plan.ShowIndexes:
		table, ok := cat.Table(s.Target)
		if !ok {
			return nil, sql.ErrCatalogMiss.New(s.Target)
		}
		rows := make([]sql.Row, len(table.Indexes))
		for i, idx := range table.Indexes {
			rows[i] = sql.Row{
				types.NewText(idx.Name),
				types.NewText(strings.Join(idx.Columns, ",")),
				types.NewBoolean(idx.Unique),
				types.NewBoolean(idx.Primary),
			}
		}
		return sql.RowsToRowIter(rows...), nil
	default:
		return nil, sql.ErrUnsupportedStmt.New(fmt.Sprintf("show kind %d", s.Kind))
	}
}

func createTableDDL(t *catalog.TableMeta) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%s %s", c.Column.Name, c.Column.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, strings.Join(cols, ", "))
}

func buildDescribe(cat catalog.Catalog, d *plan.Describe) (sql.RowIter, error) {
	table, ok := cat.Table(d.Table)
	if !ok {
		return nil, sql.ErrCatalogMiss.New(d.Table)
	}
	rows := make([]sql.Row, len(table.Columns))
	for i, c := range table.Columns {
		rows[i] = sql.Row{
			types.NewText(c.Column.Name),
			types.NewText(c.Column.Type.String()),
			types.NewBoolean(c.Column.Nullable),
			types.NewBoolean(c.Column.PrimaryKey),
		}
	}
	return sql.RowsToRowIter(rows...), nil
}

// buildExplain renders node's (already-optimized, if Analyze requested a
// post-optimization plan) structure as one row per indented line, instead
// of executing it.
func buildExplain(e *plan.Explain) (sql.RowIter, error) {
	var lines []string
	explainTree(e.Child, 0, &lines)
	rows := make([]sql.Row, len(lines))
	for i, l := range lines {
		rows[i] = sql.Row{types.NewText(l)}
	}
	return sql.RowsToRowIter(rows...), nil
}

func explainTree(n sql.Node, depth int, out *[]string) {
	*out = append(*out, strings.Repeat("  ", depth)+n.String())
	for _, c := range n.Children() {
		explainTree(c, depth+1, out)
	}
}
