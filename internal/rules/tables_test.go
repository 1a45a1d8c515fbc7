package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRangeTable_RejectsOverlap(t *testing.T) {
	_, err := newRangeTable(
		b2(51, 125, "130 L", ""),
		b2(120, 150, "155 L", ""),
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestNewRangeTable_RejectsInvertedBand(t *testing.T) {
	_, err := newRangeTable(b2(100, 50, "130 L", ""))

	assert.Error(t, err)
}

func TestRangeTable_FirstMatchWins(t *testing.T) {
	tbl := mustRangeTable(
		b2(51, 125, "130 L", ""),
		b2(126, 150, "155 L", ""),
	)

	row, ok := tbl.lookup(125)
	assert.True(t, ok)
	assert.Equal(t, "130 L", row.Codes[0])

	row, ok = tbl.lookup(126)
	assert.True(t, ok)
	assert.Equal(t, "155 L", row.Codes[0])

	_, ok = tbl.lookup(50)
	assert.False(t, ok)
}

func TestBuiltinTables_CoverTheirRanges(t *testing.T) {
	// every built-in table must already have passed overlap validation at
	// package init; here we pin the outer boundaries
	for _, tbl := range []rangeTable{chStraightL, chCornerL, lSections, jSections, tRanges} {
		bounds := tbl.Bounds()
		assert.NotEmpty(t, bounds)
	}

	row, ok := chStraightL.lookup(600)
	assert.True(t, ok)
	assert.Equal(t, "305 L", row.Codes[0])
	assert.Equal(t, "305 L", row.Codes[1])

	_, ok = chStraightL.lookup(601)
	assert.False(t, ok)

	row, ok = jSections.lookup(250)
	assert.True(t, ok)
	assert.Equal(t, "AL SHEET", row.Codes[0])
}
