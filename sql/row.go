package sql

import (
	"io"

	"github.com/kvsql/kvsql/types"
)

// Row is a single tuple flowing through the executor. Values are stored as
// interface{}; storage and expression evaluation put a types.Value in each
// slot (a SQL NULL is a types.Value whose Raw is nil), while the NULL
// padding of unmatched outer-join rows is a bare nil.
type Row []interface{}

// NewRow builds a Row from individual values.
func NewRow(values ...interface{}) Row {
	return Row(values)
}

// Copy returns a shallow copy of the row, safe to retain across yields.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Column describes one column of a Schema: its name, owning relation
// (table or derived source), logical type and nullability.
type Column struct {
	Name     string
	Source   string
	Type     types.LogicalType
	Nullable bool
	// PrimaryKey marks a column that participates in the table's primary key.
	PrimaryKey bool
}

// Summary returns the ColumnSummary identity used for dedup and pruning.
func (c *Column) Summary() ColumnSummary {
	return ColumnSummary{Name: c.Name, Relation: c.Source}
}

// Schema is an ordered list of columns describing a Node's output shape.
type Schema []*Column

// ColumnSummary is the (name, relation) identity used to deduplicate column
// references across a plan, per spec.md's GLOSSARY.
type ColumnSummary struct {
	Name     string
	Relation string
}

// RowIter is a pull-based producer: Next either yields the next row, yields
// a non-nil error (io.EOF signals a clean end-of-stream; any other error
// terminates the stream permanently and propagates to the consumer), and
// Close releases any scoped resources (open scans, transaction-level
// locks) acquired during iteration. This is the suspendable-producer model
// of spec.md §4.3 realized without coroutines, per spec.md §9's design note.
type RowIter interface {
	Next(ctx *Context) (Row, error)
	Close(ctx *Context) error
}

// RowsToRowIter adapts a materialized slice of rows into a RowIter, used by
// Values, Sort (post-materialization) and similar terminal producers.
type sliceRowIter struct {
	rows []Row
	pos  int
}

func RowsToRowIter(rows ...Row) RowIter {
	return &sliceRowIter{rows: rows}
}

func (i *sliceRowIter) Next(ctx *Context) (Row, error) {
	if i.pos >= len(i.rows) {
		return nil, io.EOF
	}
	row := i.rows[i.pos]
	i.pos++
	return row, nil
}

func (i *sliceRowIter) Close(ctx *Context) error { return nil }
