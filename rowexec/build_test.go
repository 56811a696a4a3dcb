package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvsql/kvsql/catalog"
	"github.com/kvsql/kvsql/plan"
)

func TestBuildReadRejectsUnknownNodeType(t *testing.T) {
	ctx, cat, tx, _ := newFixture(t, 0)
	_, err := BuildRead(ctx, cat, tx, plan.NewInsert(nil, nil, nil))
	require.Error(t, err)
}

func TestBuildWriteRejectsUnknownNodeType(t *testing.T) {
	ctx, cat, tx, meta := newFixture(t, 0)
	_, err := BuildWrite(ctx, cat, tx, plan.NewScan(meta))
	require.Error(t, err)
}

func TestFirstRangeForIndexReturnsNilWithoutMatchingColumn(t *testing.T) {
	table := &catalog.TableMeta{
		Name:    "t",
		Indexes: []catalog.IndexMeta{{Name: "idx_a", Table: "t", Columns: []string{"a"}}},
	}
	rng := firstRangeForIndex(nil, table, plan.PhysicalIndexScan{Index: "idx_a"})
	require.Nil(t, rng)
}
