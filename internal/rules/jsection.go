package rules

import (
	"fmt"
	"strconv"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

var jCrossCut = map[string]bool{
	"JLT": true, "JRT": true, "JLX": true, "JRX": true,
}

var jButtCut = map[string]bool{
	"JL": true, "JLB": true, "JR": true, "JRB": true,
}

var jSlab = map[string]bool{
	"SX": true, "SXC": true, "SXCE": true,
}

func (r *Ruleset) deriveJ(c fgcode.Code, corner bool) ([]storage.MaterialLine, error) {
	a, b := c.OuterA, c.OuterB
	sym := c.Profile

	l1 := c.Length1 + r.off.CuttingTolerance
	l2 := 0
	if c.Length2 != nil {
		l2 = *c.Length2 + r.off.CuttingTolerance
	}
	switch {
	case jCrossCut[sym]:
		l1 -= r.off.CrossCut
	case jButtCut[sym]:
		l1 -= r.off.ButtCut
	}

	cd2 := "-"
	if hasLength2(c) {
		cd2 = strconv.Itoa(l2)
	}
	cut := dimText(strconv.Itoa(l1), cd2, corner)

	row, ok := jSections.lookup(a)
	if !ok {
		return nil, &NoRangeMatchError{Profile: sym, Dimension: a}
	}

	var lines []storage.MaterialLine
	if row.Codes[0] == "AL SHEET" {
		// no J section this wide; a wrapped sheet blank takes its place,
		// cut from the uncorrected lengths
		dim := fmt.Sprintf("%dX%dX4", a+r.off.SheetWrap, c.Length1)
		if corner && c.Length2 != nil {
			dim += fmt.Sprintf(",%dX%dX4", a+r.off.SheetWrap, *c.Length2)
		}
		lines = append(lines, mustLine(row.Codes[0], dim, catJ, 1))
	} else {
		lines = append(lines, mustLine(row.Codes[0], cut, catJ, 1))
	}

	if a >= jLSectionMinA {
		if rowB, ok := lSections.lookup(b); ok && rowB.Codes[0] != "" {
			lines = append(lines, mustLine(rowB.Codes[0], cut, catL, 1))
		}
	}

	jPrimary := row.Codes[0] == "J SEC"

	return append(lines, jChildParts(c, jPrimary)...), nil
}

func jChildParts(c fgcode.Code, jPrimary bool) []storage.MaterialLine {
	a, b := c.OuterA, c.OuterB
	sym := c.Profile

	inset := 12
	if jPrimary {
		inset = 16
	}

	var parts []storage.MaterialLine

	if jSlab[sym] {
		parts = append(parts, mustLine("SIDE RAIL", strconv.Itoa(b-inset), storage.CategoryChildPart, 2))
		qty := int64(2)
		if sym == "SX" {
			qty = 5
		}
		parts = append(parts, mustLine("STIFF PLATE",
			fmt.Sprintf("%dX%dX4", a-inset, b-inset), storage.CategoryChildPart, qty))
		return parts
	}

	crossed := jCrossCut[sym]

	capQty := int64(1)
	if crossed {
		capQty = 2
	}
	parts = append(parts, mustLine("OUTER CAP", fmt.Sprintf("%dX%dX4", a, b), storage.CategoryChildPart, capQty))

	stiffQty := int64(6)
	if crossed {
		stiffQty = 2
	}
	parts = append(parts, mustLine("STIFF PLATE",
		fmt.Sprintf("%dX%dX4", a-inset, b-inset), storage.CategoryChildPart, stiffQty))

	return parts
}
