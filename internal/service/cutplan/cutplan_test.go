package cutplan

import (
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbcut/internal/storage"
)

const standardLength = 4820

func demandOf(code string, lengths []float64, qty int64) storage.FlattenedDemand {
	return storage.FlattenedDemand{
		code: {{
			FgCode:   "test",
			Lengths:  lengths,
			Quantity: decimal.NewFromInt(qty),
		}},
	}
}

func TestAllocate_ClosesBarWhenCutDoesNotFit(t *testing.T) {
	a := New(slog.Default(), standardLength)

	plan := a.Allocate(demandOf("100 CH", []float64{3000, 2500, 2200}, 1))

	// 3000 leaves 1820, 2500 closes that bar and opens a second with
	// 2320 left, 2200 fits into it
	assert.Equal(t, 2, plan.Pieces["100 CH"])
	require.Len(t, plan.Offcuts, 2)

	var remainders []float64
	for _, o := range plan.Offcuts {
		assert.Equal(t, "100 CH", o.MaterialCode)
		assert.Equal(t, 1, o.Quantity)
		remainders = append(remainders, o.RemainingLength)
	}
	// sorted by remaining length descending
	assert.Equal(t, []float64{1820, 120}, remainders)
}

func TestAllocate_NeverReopensClosedBar(t *testing.T) {
	a := New(slog.Default(), standardLength)

	plan := a.Allocate(demandOf("100 CH", []float64{3000, 1500, 1000, 300}, 1))

	// 3000+1500 leave 320, 1000 closes the bar even though 300 would
	// still have fit into it
	assert.Equal(t, 2, plan.Pieces["100 CH"])
	require.Len(t, plan.Offcuts, 2)
	assert.Equal(t, 3520.0, plan.Offcuts[0].RemainingLength)
	assert.Equal(t, 320.0, plan.Offcuts[1].RemainingLength)
}

func TestAllocate_ConservesLength(t *testing.T) {
	a := New(slog.Default(), standardLength)

	cuts := []float64{4820, 2410, 2410, 1200, 800, 333}
	plan := a.Allocate(demandOf("130 L", cuts, 1))

	var cutTotal float64
	for _, c := range cuts {
		cutTotal += c
	}
	var offcutTotal float64
	for _, o := range plan.Offcuts {
		offcutTotal += o.RemainingLength * float64(o.Quantity)
	}

	assert.InDelta(t, float64(plan.Pieces["130 L"])*standardLength, cutTotal+offcutTotal, 1e-9)
}

func TestAllocate_AggregatesIdenticalRemainders(t *testing.T) {
	a := New(slog.Default(), standardLength)

	// two full bars leave two zero remainders that collapse into one row
	plan := a.Allocate(demandOf("130 L", []float64{4820}, 2))

	assert.Equal(t, 2, plan.Pieces["130 L"])
	require.Len(t, plan.Offcuts, 1)
	assert.Equal(t, 0.0, plan.Offcuts[0].RemainingLength)
	assert.Equal(t, 2, plan.Offcuts[0].Quantity)
}

func TestAllocate_SkipsOversizeCuts(t *testing.T) {
	a := New(slog.Default(), standardLength)

	plan := a.Allocate(demandOf("130 L", []float64{5000, 1000}, 1))

	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, 5000.0, plan.Skipped[0].Length)
	assert.Equal(t, "130 L", plan.Skipped[0].MaterialCode)

	// the remaining cut still gets a bar
	assert.Equal(t, 1, plan.Pieces["130 L"])
}

func TestAllocate_QuantityRepeatsLengths(t *testing.T) {
	a := New(slog.Default(), standardLength)

	plan := a.Allocate(demandOf("130 L", []float64{2000}, 3))

	// 2000*3 packs as 2+1 across two bars
	assert.Equal(t, 2, plan.Pieces["130 L"])
}

func TestAllocate_SortsOffcutsByCodeThenLength(t *testing.T) {
	a := New(slog.Default(), standardLength)

	demand := storage.FlattenedDemand{
		"205 L": {{Lengths: []float64{3000}, Quantity: decimal.NewFromInt(1)}},
		"130 L": {{Lengths: []float64{4000}, Quantity: decimal.NewFromInt(1)}},
	}
	plan := a.Allocate(demand)

	require.Len(t, plan.Offcuts, 2)
	assert.Equal(t, "130 L", plan.Offcuts[0].MaterialCode)
	assert.Equal(t, "205 L", plan.Offcuts[1].MaterialCode)
}

func TestAllocate_UncutDemandYieldsNoBars(t *testing.T) {
	a := New(slog.Default(), standardLength)

	plan := a.Allocate(storage.FlattenedDemand{
		"ROUND PIPE": {{Dimension: "-", Quantity: decimal.NewFromInt(4)}},
	})

	assert.Empty(t, plan.Offcuts)
	assert.NotContains(t, plan.Pieces, "ROUND PIPE")
}
