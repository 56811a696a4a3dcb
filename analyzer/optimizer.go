package analyzer

import "github.com/kvsql/kvsql/sql"

// Optimize runs the full normalization pipeline over plan once: constant
// folding and predicate simplification first (so column pruning sees the
// narrowest possible expression trees and the COUNT(*) synthesis special
// case isn't defeated by an unfolded literal), then column pruning last,
// matching the dependency order implied by original_source's rule
// registration (simplification rules run in the same "once_topdown" batch
// ahead of column pruning in the reference optimizer's default pipeline).
func Optimize(ctx *sql.Context, plan sql.Node) (sql.Node, error) {
	g := NewHepGraph(plan)

	batches := []Batch{
		{Name: "simplification", Rules: []Rule{ConstantCalculation{}, SimplifyFilter{}}},
	}
	if err := RunBatches(ctx, g, batches); err != nil {
		return nil, err
	}

	if err := (ColumnPruning{}).Run(ctx, g); err != nil {
		return nil, err
	}

	return g.Plan(), nil
}
