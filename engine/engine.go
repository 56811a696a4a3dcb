// Package engine wires together the catalog, storage and query-processing
// core into a single entry point, the way the teacher's top-level package
// wires its Analyzer/Catalog/rowexec into one Engine. No SQL text parser
// lives here or anywhere in this module — callers hand Engine a sql.Node
// plan tree directly (spec.md scopes parsing/binding out); Engine owns
// optimization and execution of that tree.
package engine

import (
	"fmt"
	"io"

	"github.com/kvsql/kvsql/analyzer"
	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/plan"
	"github.com/kvsql/kvsql/rowexec"
	"github.com/kvsql/kvsql/sql"
	"github.com/kvsql/kvsql/storage"
)

// Config holds the handful of engine-wide knobs spec.md names.
type Config struct {
	// OptimizerBatchIterationCap overrides the session default (64) for how
	// many passes a single HepGraph rule batch may run before giving up on
	// reaching a fixpoint.
	OptimizerBatchIterationCap int
}

// Engine binds a Catalog to a storage.Transaction source and drives a plan
// tree through Optimize then BuildRead/BuildWrite.
type Engine struct {
	Catalog catalog.Catalog
	cfg     Config
}

func New(cat catalog.Catalog, cfg Config) *Engine {
	return &Engine{Catalog: cat, cfg: cfg}
}

// NewContext builds a *sql.Context carrying this Engine's configured
// optimizer cap, for callers that don't already have one.
func (e *Engine) NewContext() *sql.Context {
	session := sql.NewSession()
	if e.cfg.OptimizerBatchIterationCap > 0 {
		session.OptimizerBatchIterationCap = e.cfg.OptimizerBatchIterationCap
	}
	return sql.NewContext(nil, session)
}

// Prepare runs the optimizer over node once, returning the rewritten plan
// Execute will actually run. Exposed separately so callers (and EXPLAIN)
// can inspect the optimized tree before execution.
func (e *Engine) Prepare(ctx *sql.Context, node sql.Node) (sql.Node, error) {
	if explain, ok := node.(*plan.Explain); ok {
		optimizedChild, err := analyzer.Optimize(ctx, explain.Child)
		if err != nil {
			return nil, err
		}
		return &plan.Explain{Analyze: explain.Analyze, Child: optimizedChild}, nil
	}
	return analyzer.Optimize(ctx, node)
}

// Execute optimizes node and runs it to completion against tx, returning
// the output schema and a RowIter over its result rows. Exactly one of
// BuildRead/BuildWrite is invoked, chosen by node's concrete type the same
// way rowexec itself dispatches on PhysicalOption.
func (e *Engine) Execute(ctx *sql.Context, tx storage.Transaction, node sql.Node) (sql.Schema, sql.RowIter, error) {
	optimized, err := e.Prepare(ctx, node)
	if err != nil {
		return nil, nil, err
	}

	if isWriteNode(optimized) {
		it, err := rowexec.BuildWrite(ctx, e.Catalog, tx, optimized)
		if err != nil {
			return nil, nil, err
		}
		return optimized.Schema(), it, nil
	}

	it, err := rowexec.BuildRead(ctx, e.Catalog, tx, optimized)
	if err != nil {
		return nil, nil, err
	}
	return optimized.Schema(), it, nil
}

func isWriteNode(node sql.Node) bool {
	switch node.(type) {
	case *plan.Insert, *plan.Update, *plan.Delete, *plan.Analyze, *plan.Copy,
		*plan.CreateTable, *plan.DropTable, *plan.AlterTable, *plan.CreateIndex:
		return true
	default:
		return false
	}
}

// ExecuteAll is a convenience wrapper draining the full result set,
// matching the shape most of the teacher's enginetest helpers use.
func (e *Engine) ExecuteAll(ctx *sql.Context, tx storage.Transaction, node sql.Node) (sql.Schema, []sql.Row, error) {
	schema, it, err := e.Execute(ctx, tx, node)
	if err != nil {
		return nil, nil, err
	}
	var rows []sql.Row
	for {
		row, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			it.Close(ctx)
			return nil, nil, fmt.Errorf("engine: %w", err)
		}
		rows = append(rows, row)
	}
	if err := it.Close(ctx); err != nil {
		return nil, nil, err
	}
	return schema, rows, nil
}
