package ratecache

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeMemoizes(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	supplierID := node.Generate()

	c := New()

	calls := 0
	compute := func() float64 {
		calls++
		return 120
	}

	assert.Equal(t, 120.0, c.GetOrCompute("2026-08-01", supplierID, "Tandoori", compute))
	assert.Equal(t, 120.0, c.GetOrCompute("2026-08-01", supplierID, "Tandoori", compute))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len())

	// Different cell, separate entry.
	c.GetOrCompute("2026-08-02", supplierID, "Tandoori", compute)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Len())
}

func TestInvalidateForcesRecompute(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	supplierID := node.Generate()

	c := New()

	calls := 0
	compute := func() float64 {
		calls++
		return 50
	}

	c.GetOrCompute("2026-08-01", supplierID, "Egg", compute)
	c.Invalidate()
	assert.Equal(t, 0, c.Len())

	c.GetOrCompute("2026-08-01", supplierID, "Egg", compute)
	assert.Equal(t, 2, calls)
}
