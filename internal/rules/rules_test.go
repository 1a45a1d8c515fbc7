package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func deriveFor(t *testing.T, raw string, degree bool) ([]storage.MaterialLine, error) {
	t.Helper()
	code, err := fgcode.Parse(raw)
	require.NoError(t, err)
	fam, err := fgcode.Classify(code.Profile)
	require.NoError(t, err)
	return NewRuleset(DefaultOffsets()).Derive(code, fam, degree)
}

func findLine(lines []storage.MaterialLine, code string) (storage.MaterialLine, bool) {
	for _, l := range lines {
		if l.MaterialCode == code {
			return l, true
		}
	}
	return storage.MaterialLine{}, false
}

func TestDeriveChannel_ExactSectionSingleLine(t *testing.T) {
	lines, err := deriveFor(t, "100|65|B|2775|", false)
	require.NoError(t, err)

	ch, ok := findLine(lines, "100 CH")
	require.True(t, ok)
	assert.Equal(t, "2775", ch.Dimension)
	assert.Equal(t, "CHANNEL SECTION", ch.Category)
	assert.True(t, ch.Quantity.Equal(decimalFromInt(1)))

	rail, ok := findLine(lines, "SIDE RAIL")
	require.True(t, ok)
	assert.Equal(t, "84", rail.Dimension)
	assert.True(t, rail.Quantity.Equal(decimalFromInt(2)))

	stiff, ok := findLine(lines, "I STIFF")
	require.True(t, ok)
	assert.True(t, stiff.Quantity.Equal(decimalFromInt(5)))

	// the long balcony item takes its splice plates
	plate, ok := findLine(lines, "STIFF PLATE")
	require.True(t, ok)
	assert.Equal(t, "61X109X4", plate.Dimension)
	assert.True(t, plate.Quantity.Equal(decimalFromInt(3)))
}

func TestDeriveChannel_DoubleSection(t *testing.T) {
	// 350 lands on a band where both seats carry the same code
	lines, err := deriveFor(t, "350|65|PLB|2000|", false)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "180 L", lines[0].MaterialCode)
	assert.True(t, lines[0].Quantity.Equal(decimalFromInt(2)))

	// 360 splits across two different sections
	lines, err = deriveFor(t, "360|65|PLB|2000|", false)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "205 L", lines[0].MaterialCode)
	assert.Equal(t, "180 L", lines[1].MaterialCode)
	assert.True(t, lines[0].Quantity.Equal(decimalFromInt(1)))
	assert.True(t, lines[1].Quantity.Equal(decimalFromInt(1)))
}

func TestDeriveChannel_BelowDoubleUsesSingleSeat(t *testing.T) {
	lines, err := deriveFor(t, "130|65|PLB|2000|", false)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "155 L", lines[0].MaterialCode)
	assert.True(t, lines[0].Quantity.Equal(decimalFromInt(1)))
}

func TestDeriveChannel_CornerWeldAllowance(t *testing.T) {
	lines, err := deriveFor(t, "100|65|BCE|1200|900", false)
	require.NoError(t, err)

	ch, ok := findLine(lines, "100 CH")
	require.True(t, ok)
	// both legs stretch by the weld allowance
	assert.Equal(t, "1265,965", ch.Dimension)
}

func TestDeriveCorner_ZeroSecondLengthReadsAsMissing(t *testing.T) {
	// channel corner
	lines, err := deriveFor(t, "350|100|BC|1200|0", false)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Equal(t, "1200,-", lines[0].Dimension)

	// inner corner
	lines, err = deriveFor(t, "200|180|SC|2400|0", false)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Equal(t, "2400,-", lines[0].Dimension)

	// slab corner
	lines, err = deriveFor(t, "40|30|SXC|2000|0", false)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Equal(t, "2000,-", lines[0].Dimension)
}

func TestDeriveChannel_NoRangeMatch(t *testing.T) {
	lines, err := deriveFor(t, "40|65|T|2000|", false)

	var noMatch *NoRangeMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, 40, noMatch.Dimension)
	assert.Empty(t, lines)
}

func TestDeriveChannel_DegreeCuttingRockerRail(t *testing.T) {
	lines, err := deriveFor(t, "100|65|WR|2000|", true)
	require.NoError(t, err)

	rail, ok := findLine(lines, "SIDE RAIL")
	require.True(t, ok)
	assert.True(t, rail.Quantity.Equal(decimalFromInt(1)))

	// the rocker strip only ships on square-cut items
	_, ok = findLine(lines, "RK-50")
	assert.False(t, ok)

	lines, err = deriveFor(t, "100|65|WR|2000|", false)
	require.NoError(t, err)
	_, ok = findLine(lines, "RK-50")
	assert.True(t, ok)
}

func TestDeriveInnerCorner_ExactSection(t *testing.T) {
	lines, err := deriveFor(t, "100|100|IC|2400|", false)
	require.NoError(t, err)

	ic, ok := findLine(lines, "100 IC")
	require.True(t, ok)
	assert.Equal(t, "2396", ic.Dimension) // butt cut
	assert.Equal(t, "IC SECTION", ic.Category)

	// the capped symbols carry no side rail
	_, ok = findLine(lines, "SIDE RAIL")
	assert.False(t, ok)

	stiff, ok := findLine(lines, "STIFF PLATE")
	require.True(t, ok)
	assert.Equal(t, "85X85X4", stiff.Dimension)
	assert.True(t, stiff.Quantity.Equal(decimalFromInt(8)))

	cap, ok := findLine(lines, "OUTER CAP")
	require.True(t, ok)
	assert.Equal(t, "100X100X4", cap.Dimension)
	assert.True(t, cap.Quantity.Equal(decimalFromInt(1)))
}

func TestDeriveInnerCorner_SymbolOverride(t *testing.T) {
	lines, err := deriveFor(t, "125|100|CC|2400|", false)
	require.NoError(t, err)
	_, ok := findLine(lines, "125 SL")
	assert.True(t, ok)

	lines, err = deriveFor(t, "125|100|SL|2400|", false)
	require.NoError(t, err)
	_, ok = findLine(lines, "125 IC")
	assert.True(t, ok)
}

func TestDeriveInnerCorner_RangeWithSecondLeg(t *testing.T) {
	lines, err := deriveFor(t, "200|100|CC|2400|", false)
	require.NoError(t, err)

	primary, ok := findLine(lines, "205 L")
	require.True(t, ok)
	assert.True(t, primary.Quantity.Equal(decimalFromInt(2)))

	// B sits in a different band, so it earns its own line
	second, ok := findLine(lines, "130 L")
	require.True(t, ok)
	assert.True(t, second.Quantity.Equal(decimalFromInt(2)))

	rail, ok := findLine(lines, "SIDE RAIL")
	require.True(t, ok)
	assert.Equal(t, "188", rail.Dimension)
}

func TestDeriveInnerCorner_SameBandNoSecondLine(t *testing.T) {
	lines, err := deriveFor(t, "200|180|CC|2400|", false)
	require.NoError(t, err)

	var lCount int
	for _, l := range lines {
		if l.Category == "L SECTION" {
			lCount++
		}
	}
	assert.Equal(t, 1, lCount)
}

func TestDeriveJ_SmallWidthSection(t *testing.T) {
	lines, err := deriveFor(t, "40|30|JL|2000|", false)
	require.NoError(t, err)

	j, ok := findLine(lines, "J SEC")
	require.True(t, ok)
	assert.Equal(t, "1996", j.Dimension)
	assert.Equal(t, "J SECTION", j.Category)

	cap, ok := findLine(lines, "OUTER CAP")
	require.True(t, ok)
	assert.Equal(t, "40X30X4", cap.Dimension)
	assert.True(t, cap.Quantity.Equal(decimalFromInt(1)))

	stiff, ok := findLine(lines, "STIFF PLATE")
	require.True(t, ok)
	assert.Equal(t, "24X14X4", stiff.Dimension)
	assert.True(t, stiff.Quantity.Equal(decimalFromInt(6)))
}

func TestDeriveJ_WideFallsBackToSheet(t *testing.T) {
	lines, err := deriveFor(t, "150|100|JR|3000|", false)
	require.NoError(t, err)

	sheet, ok := findLine(lines, "AL SHEET")
	require.True(t, ok)
	// blank is widened by the wrap, cut to the raw length
	assert.Equal(t, "215X3000X4", sheet.Dimension)

	second, ok := findLine(lines, "130 L")
	require.True(t, ok)
	assert.Equal(t, "2996", second.Dimension)
}

func TestDeriveJ_CrossCutQuantities(t *testing.T) {
	lines, err := deriveFor(t, "40|30|JLX|2000|", false)
	require.NoError(t, err)

	j, ok := findLine(lines, "J SEC")
	require.True(t, ok)
	assert.Equal(t, "1992", j.Dimension) // cross cut

	cap, ok := findLine(lines, "OUTER CAP")
	require.True(t, ok)
	assert.True(t, cap.Quantity.Equal(decimalFromInt(2)))

	stiff, ok := findLine(lines, "STIFF PLATE")
	require.True(t, ok)
	assert.True(t, stiff.Quantity.Equal(decimalFromInt(2)))
}

func TestDeriveJ_SlabChildParts(t *testing.T) {
	lines, err := deriveFor(t, "40|30|SX|2000|", false)
	require.NoError(t, err)

	rail, ok := findLine(lines, "SIDE RAIL")
	require.True(t, ok)
	assert.Equal(t, "14", rail.Dimension)
	assert.True(t, rail.Quantity.Equal(decimalFromInt(2)))

	stiff, ok := findLine(lines, "STIFF PLATE")
	require.True(t, ok)
	assert.True(t, stiff.Quantity.Equal(decimalFromInt(5)))

	_, ok = findLine(lines, "OUTER CAP")
	assert.False(t, ok)
}

func TestDeriveT_ExactSize(t *testing.T) {
	lines, err := deriveFor(t, "230|100|TSE|2400|", false)
	require.NoError(t, err)

	tee, ok := findLine(lines, "100 T")
	require.True(t, ok)
	assert.Equal(t, "2400", tee.Dimension)
	assert.Equal(t, "T SECTION", tee.Category)

	rail, ok := findLine(lines, "SIDE RAIL")
	require.True(t, ok)
	assert.Equal(t, "84", rail.Dimension) // seat depth clearance

	u, ok := findLine(lines, "U STIFFNER")
	require.True(t, ok)
	assert.True(t, u.Quantity.Equal(decimalFromInt(5)))
}

func TestDeriveT_ExactWithExternalCorner(t *testing.T) {
	lines, err := deriveFor(t, "380|100|WSE|2400|", false)
	require.NoError(t, err)

	_, ok := findLine(lines, "250 CH")
	require.True(t, ok)

	ec, ok := findLine(lines, "EC")
	require.True(t, ok)
	assert.True(t, ec.Quantity.Equal(decimalFromInt(2)))
}

func TestDeriveT_MidRangeDoubles(t *testing.T) {
	lines, err := deriveFor(t, "300|100|WSE|2400|", false)
	require.NoError(t, err)

	var total int64
	for _, l := range lines {
		if l.MaterialCode == "115 T" {
			total += l.Quantity.IntPart()
		}
	}
	assert.Equal(t, int64(3), total)
}

func TestDeriveT_RockerSetback(t *testing.T) {
	lines, err := deriveFor(t, "300|100|WRSE|2400|", false)
	require.NoError(t, err)

	tee, ok := findLine(lines, "115 T")
	require.True(t, ok)
	assert.Equal(t, "2350", tee.Dimension)

	_, ok = findLine(lines, "RK-50")
	assert.True(t, ok)

	// degree cutting keeps the full length and drops the rocker strip
	lines, err = deriveFor(t, "300|100|WRSE|2400|", true)
	require.NoError(t, err)
	tee, _ = findLine(lines, "115 T")
	assert.Equal(t, "2400", tee.Dimension)
	_, ok = findLine(lines, "RK-50")
	assert.False(t, ok)
}

func TestDeriveMisc_Soldiers(t *testing.T) {
	lines, err := deriveFor(t, "150|65|MB|2000|", false)
	require.NoError(t, err)

	mb, ok := findLine(lines, "EB MB 150")
	require.True(t, ok)
	// bracket extension
	assert.Equal(t, "2100", mb.Dimension)
	assert.Equal(t, "SOLDIER WT LIP", mb.Category)

	_, ok = findLine(lines, "SUPPORT PIPE")
	assert.True(t, ok)
}

func TestDeriveMisc_DropPanel(t *testing.T) {
	lines, err := deriveFor(t, "150|65|DP|2000|", false)
	require.NoError(t, err)

	dp, ok := findLine(lines, "DP 150")
	require.True(t, ok)
	assert.Equal(t, "SOLDIER W/O LIP", dp.Category)

	pipe, ok := findLine(lines, "ROUND PIPE")
	require.True(t, ok)
	assert.Equal(t, "196", pipe.Dimension)

	_, ok = findLine(lines, "SQUARE PLATE")
	assert.True(t, ok)

	// the 100 size skips the square plate
	lines, err = deriveFor(t, "100|65|DP|2000|", false)
	require.NoError(t, err)
	_, ok = findLine(lines, "SQUARE PLATE")
	assert.False(t, ok)
}

func TestDeriveMisc_OffTableSizeKeepsChildParts(t *testing.T) {
	// no DP section for 120, the pipe still ships
	lines, err := deriveFor(t, "120|65|DP|2000|", false)
	require.NoError(t, err)
	_, ok := findLine(lines, "DP 120")
	assert.False(t, ok)
	pipe, ok := findLine(lines, "ROUND PIPE")
	require.True(t, ok)
	assert.Equal(t, "196", pipe.Dimension)

	// nothing at all for an off-table soldier, and no error either
	lines, err = deriveFor(t, "120|65|EB|2000|", false)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestDeriveMisc_RockerOddSize(t *testing.T) {
	lines, err := deriveFor(t, "50|0|RK|1200|", false)
	require.NoError(t, err)
	rk, ok := findLine(lines, "RK-50")
	require.True(t, ok)
	assert.Equal(t, "RK", rk.Category)

	lines, err = deriveFor(t, "140|0|RK|1200|", false)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "155 L", lines[0].MaterialCode)
	assert.Equal(t, "L SECTION FOR RK ODD SIZE", lines[0].Category)
}

func TestDeriveMisc_ExternalCorner(t *testing.T) {
	lines, err := deriveFor(t, "130|65|ECX|2000|", false)
	require.NoError(t, err)
	ec, ok := findLine(lines, "EXTERNAL CORNER")
	require.True(t, ok)
	assert.Equal(t, "EXTERNAL CORNER", ec.Category)
}

func TestDerive_Deterministic(t *testing.T) {
	first, err := deriveFor(t, "350|100|BC|1200|900", false)
	require.NoError(t, err)
	second, err := deriveFor(t, "350|100|BC|1200|900", false)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].MaterialCode, second[i].MaterialCode)
		assert.Equal(t, first[i].Dimension, second[i].Dimension)
		assert.True(t, first[i].Quantity.Equal(second[i].Quantity))
	}
}
