package rules

import (
	"fmt"
	"math"
	"strconv"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

// Inner-corner items that keep the full stiffener-plate count.
var icFullStiff = map[string]bool{
	"CC": true, "CCL": true, "CCR": true, "IC": true, "ICB": true,
	"LS": true, "LSL": true, "LSR": true, "LSW": true, "SL": true, "SLR": true,
}

var icCapped = map[string]bool{
	"IC": true, "ICB": true, "ICT": true, "ICX": true,
}

func (r *Ruleset) deriveInnerCorner(c fgcode.Code, corner bool) ([]storage.MaterialLine, error) {
	a, b := c.OuterA, c.OuterB
	sym := c.Profile

	l1 := c.Length1 + r.off.CuttingTolerance
	l2 := 0
	if c.Length2 != nil {
		l2 = *c.Length2 + r.off.CuttingTolerance
	}

	switch sym {
	case "IC", "ICB", "SCZ":
		l1 -= r.off.ButtCut
	case "ICT", "ICX":
		l1 -= r.off.CrossCut
	case "SCE", "LSCE":
		l1 += b
		if c.Length2 != nil {
			l2 += b
		}
	case "SCY":
		if c.Length2 != nil {
			l2 += r.off.YCorner
		}
	}

	cd2 := "-"
	if hasLength2(c) {
		cd2 = strconv.Itoa(l2)
	}
	cut := dimText(strconv.Itoa(l1), cd2, corner)

	var lines []storage.MaterialLine

	if code, ok := icExactOverride[pairSym{a, b, sym}]; ok {
		lines = append(lines, mustLine(code, cut, catIC, 1))
	} else if code, ok := icExact[pair{a, b}]; ok {
		lines = append(lines, mustLine(code, cut, catIC, 1))
	} else if a < 150 && a%25 == 0 {
		lines = append(lines, mustLine(fmt.Sprintf("%d IC", a), cut, catIC, 1))
	} else {
		row, ok := lSections.lookup(a)
		if !ok {
			return nil, &NoRangeMatchError{Profile: sym, Dimension: a}
		}
		qty := int64(2)
		if corner {
			qty = 1
		}
		lines = append(lines, mustLine(row.Codes[0], cut, catL, qty))
		// B runs through the same table on its own; only a different
		// section earns a second line.
		if rowB, ok := lSections.lookup(b); ok && rowB.Codes[0] != row.Codes[0] {
			lines = append(lines, mustLine(rowB.Codes[0], cut, catL, qty))
		}
	}

	icPrimary := anyCodeSuffix(lines, "IC") || anyCodeSuffix(lines, "SL")

	return append(lines, r.innerCornerChildParts(c, icPrimary)...), nil
}

func (r *Ruleset) innerCornerChildParts(c fgcode.Code, icPrimary bool) []storage.MaterialLine {
	a, b := c.OuterA, c.OuterB
	sym := c.Profile

	// IC sections sit 15mm proud, L-section builds 12mm.
	inset := 12
	if icPrimary {
		inset = 15
	}

	var parts []storage.MaterialLine

	if !icCapped[sym] {
		qty := int64(2)
		if sym == "SCY" || sym == "SCZ" {
			qty = 1
		}
		parts = append(parts, mustLine("SIDE RAIL", strconv.Itoa(a-inset), storage.CategoryChildPart, qty))
	}

	stiffQty := int64(4)
	switch {
	case icFullStiff[sym]:
		stiffQty = 8
	case sym == "ICT" || sym == "ICX":
		stiffQty = 5
	}
	parts = append(parts, mustLine("STIFF PLATE",
		fmt.Sprintf("%dX%dX4", a-inset, b-inset), storage.CategoryChildPart, stiffQty))

	switch sym {
	case "IC", "ICB":
		parts = append(parts, mustLine("OUTER CAP", fmt.Sprintf("%dX%dX4", a, b), storage.CategoryChildPart, 1))
	case "ICT", "ICX":
		parts = append(parts, mustLine("OUTER CAP", fmt.Sprintf("%dX%dX4", a, b), storage.CategoryChildPart, 2))
	case "SCY", "SCZ":
		// the 45-degree cap leg is the mitre hypotenuse
		leg := strconv.FormatFloat(float64(b)/math.Sin(math.Pi/4), 'f', 2, 64)
		parts = append(parts, mustLine("OUTER CAP", fmt.Sprintf("%sX%dX4", leg, a), storage.CategoryChildPart, 1))
	}

	return parts
}
