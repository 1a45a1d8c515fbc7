package rules

import (
	"fmt"
	"sort"
)

// Line categories as they appear on the item masters.
const (
	catChannel   = "CHANNEL SECTION"
	catL         = "L SECTION"
	catIC        = "IC SECTION"
	catJ         = "J SECTION"
	catT         = "T SECTION"
	catSoldier   = "SOLDIER WT LIP"
	catSoldierWO = "SOLDIER W/O LIP"
	catExtCorner = "EXTERNAL CORNER"
	catRK        = "RK"
	catRKOdd     = "L SECTION FOR RK ODD SIZE"
)

// Above this outer dimension a channel item is built from two L sections
// instead of one section plus the main frame.
const doubleSectionMin = 301

// band is one row of a piecewise range table: [Min,Max] inclusive, up to
// three material code slots. An empty slot means the seat is unused (the
// legacy tables wrote "MAIN FRAME" or "-" there).
type band struct {
	Min, Max int
	Codes    [3]string
}

func b2(min, max int, primary, secondary string) band {
	return band{Min: min, Max: max, Codes: [3]string{primary, secondary}}
}

func b3(min, max int, c1, c2, c3 string) band {
	return band{Min: min, Max: max, Codes: [3]string{c1, c2, c3}}
}

// rangeTable is an ordered piecewise lookup. The first band containing the
// query wins; overlapping bands are rejected when the table is built rather
// than resolved silently.
type rangeTable struct {
	bands []band
}

func newRangeTable(bands ...band) (rangeTable, error) {
	for i, b := range bands {
		if b.Min > b.Max {
			return rangeTable{}, fmt.Errorf("range table band %d: min %d > max %d", i, b.Min, b.Max)
		}
		for j := i + 1; j < len(bands); j++ {
			if b.Min <= bands[j].Max && bands[j].Min <= b.Max {
				return rangeTable{}, fmt.Errorf("range table bands %d and %d overlap: [%d,%d] vs [%d,%d]",
					i, j, b.Min, b.Max, bands[j].Min, bands[j].Max)
			}
		}
	}
	return rangeTable{bands: bands}, nil
}

func mustRangeTable(bands ...band) rangeTable {
	t, err := newRangeTable(bands...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t rangeTable) lookup(v int) (band, bool) {
	for _, b := range t.bands {
		if b.Min <= v && v <= b.Max {
			return b, true
		}
	}
	return band{}, false
}

// Bounds returns the sorted band boundaries, used by table sanity tests.
func (t rangeTable) Bounds() []int {
	var out []int
	for _, b := range t.bands {
		out = append(out, b.Min, b.Max)
	}
	sort.Ints(out)
	return out
}

// Channel sections for outer dimensions that land exactly on a stocked size.
var channelSections = map[int]string{
	50:  "50 CH",
	75:  "75 CH",
	100: "100 CH",
	125: "125 CH",
	150: "150 CH",
	175: "175 CH",
	200: "200 CH",
	250: "250 CH",
	300: "300 CH",
}

// L-section bands for straight channel items. Below doubleSectionMin the
// second seat is the main frame itself and stays empty.
var chStraightL = mustRangeTable(
	b2(51, 125, "130 L", ""),
	b2(126, 149, "155 L", ""),
	b2(151, 174, "180 L", ""),
	b2(176, 199, "205 L", ""),
	b2(201, 225, "230 L", ""),
	b2(226, 249, "255 L", ""),
	b2(251, 275, "280 L", ""),
	b2(276, 300, "305 L", ""),
	b2(301, 325, "180 L", "155 L"),
	b2(326, 350, "180 L", "180 L"),
	b2(351, 375, "205 L", "180 L"),
	b2(376, 400, "205 L", "205 L"),
	b2(401, 425, "230 L", "205 L"),
	b2(426, 450, "230 L", "230 L"),
	b2(451, 475, "255 L", "230 L"),
	b2(476, 500, "255 L", "255 L"),
	b2(501, 525, "280 L", "255 L"),
	b2(526, 550, "280 L", "280 L"),
	b2(551, 575, "305 L", "280 L"),
	b2(576, 600, "305 L", "305 L"),
)

// Corner channel items use the welded L sizes.
var chCornerL = mustRangeTable(
	b2(51, 124, "125 L", ""),
	b2(126, 149, "150 L", ""),
	b2(151, 174, "175 L", ""),
	b2(176, 199, "200 L", ""),
	b2(201, 224, "225 L", ""),
	b2(226, 249, "250 L", ""),
	b2(251, 275, "275 L", ""),
	b2(276, 300, "300 L", ""),
	b2(301, 325, "175 L", "150 L"),
	b2(326, 350, "175 L", "175 L"),
	b2(351, 375, "200 L", "175 L"),
	b2(376, 400, "200 L", "200 L"),
	b2(401, 425, "225 L", "200 L"),
	b2(426, 450, "225 L", "225 L"),
	b2(451, 475, "250 L", "225 L"),
	b2(476, 500, "250 L", "250 L"),
	b2(501, 525, "275 L", "250 L"),
	b2(526, 550, "275 L", "275 L"),
	b2(551, 575, "300 L", "275 L"),
	b2(576, 600, "300 L", "300 L"),
)

// lSections is shared wherever the L-section bands coincide: the inner-corner
// A and B lookups, the J-family B lookup and the odd-size RK fallback.
var lSections = mustRangeTable(
	b2(50, 125, "130 L", ""),
	b2(126, 150, "155 L", ""),
	b2(151, 175, "180 L", ""),
	b2(176, 200, "205 L", ""),
	b2(201, 225, "230 L", ""),
	b2(226, 250, "255 L", ""),
	b2(251, 275, "280 L", ""),
	b2(276, 300, "305 L", ""),
)

type pair struct {
	A, B int
}

type pairSym struct {
	A, B int
	Sym  string
}

// Exact inner-corner sections. The (125,100) size is contested between two
// symbols, resolved by the symbol-keyed overrides below.
var icExact = map[pair]string{
	{100, 100}: "100 IC",
	{125, 100}: "125 IC",
	{150, 100}: "150 IC",
}

var icExactOverride = map[pairSym]string{
	{125, 100, "SL"}: "125 IC",
	{125, 100, "CC"}: "125 SL",
}

// J-family A bands: a true J section at small widths, the 115 T substitute in
// the middle, wrapped aluminium sheet beyond that.
var jSections = mustRangeTable(
	b2(25, 50, "J SEC", ""),
	b2(51, 115, "115 T", ""),
	b2(116, 250, "AL SHEET", ""),
)

// The J-family B-side lookup only runs from this width up; narrower items
// carry no separate L section.
const jLSectionMinA = 51

// T-profile exact sizes, tried before the range bands.
var tExact = map[int][3]string{
	230: {"100 T", "", ""},
	380: {"250 CH", "EC", ""},
	430: {"300 CH", "EC", ""},
}

var tRanges = mustRangeTable(
	b3(231, 360, "115 T", "115 T", ""),
	b3(361, 380, "255 L", "", "EC"),
	b3(381, 405, "280 L", "", "EC"),
	b3(406, 430, "305 L", "", "EC"),
	b3(431, 455, "180 L", "155 L", "EC"),
	b3(456, 480, "180 L", "180 L", "EC"),
)

type miscKey struct {
	A   int
	Sym string
}

type miscSection struct {
	Code     string
	Category string
}

// Symbols whose misc lookup is keyed by (A, symbol); the external-corner
// family shares a single size-keyed row.
var miscSubtyped = map[string]bool{
	"EB": true, "MB": true, "DP": true, "RK": true,
}

var miscExact = map[miscKey]miscSection{
	{100, "EB"}: {"EB MB 100", catSoldier},
	{150, "EB"}: {"EB MB 150", catSoldier},
	{100, "MB"}: {"EB MB 100", catSoldier},
	{150, "MB"}: {"EB MB 150", catSoldier},
	{100, "DP"}: {"DP 100", catSoldierWO},
	{150, "DP"}: {"DP 150", catSoldierWO},
	{50, "RK"}:  {"RK-50", catRK},
	{130, ""}:   {"EXTERNAL CORNER", catExtCorner},
}
