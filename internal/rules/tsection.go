package rules

import (
	"strconv"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

var rockerSeats = map[string]bool{"WRBSE": true, "WRSE": true}

var tWideStiff = map[string]bool{
	"TSE": true, "WRBSE": true, "WRSE": true, "WSE": true, "WXSE": true,
}

func (r *Ruleset) deriveT(c fgcode.Code, degree bool) ([]storage.MaterialLine, error) {
	a := c.OuterA
	sym := c.Profile

	l1 := c.Length1 + r.off.CuttingTolerance
	if rockerSeats[sym] && !degree {
		l1 -= r.off.RockerSetback
	}
	cut := strconv.Itoa(l1)

	var lines []storage.MaterialLine

	if codes, ok := tExact[a]; ok {
		lines = append(lines, mustLine(codes[0], cut, catT, 1))
		for _, extra := range codes[1:] {
			if extra == "" {
				continue
			}
			qty := int64(1)
			if extra == "EC" {
				qty = 2
			}
			lines = append(lines, mustLine(extra, cut, catT, qty))
		}
	} else if row, ok := tRanges.lookup(a); ok {
		qty := int64(1)
		if row.Codes[0] == "115 T" {
			qty = 2
		}
		lines = append(lines, mustLine(row.Codes[0], cut, catT, qty))
		if row.Codes[1] != "" {
			lines = append(lines, mustLine(row.Codes[1], cut, catT, 1))
		}
		if row.Codes[2] != "" {
			qty = 1
			if row.Codes[2] == "EC" {
				qty = 2
			}
			lines = append(lines, mustLine(row.Codes[2], cut, catT, qty))
		}
	} else {
		return nil, &NoRangeMatchError{Profile: sym, Dimension: a}
	}

	return append(lines, r.tChildParts(c, lines, degree)...), nil
}

func (r *Ruleset) tChildParts(c fgcode.Code, primary []storage.MaterialLine, degree bool) []storage.MaterialLine {
	a := c.OuterA
	sym := c.Profile

	var parts []storage.MaterialLine

	railQty := int64(2)
	if degree && rockerSeats[sym] {
		railQty = 1
	}
	railDim := a - 16
	if anyCodeSuffix(primary, "T") {
		railDim = a - 1
	}
	// the rocker-seat family clears the full seat depth
	if sym == "TSE" || rockerSeats[sym] {
		railDim = a - 146
	}
	parts = append(parts, mustLine("SIDE RAIL", strconv.Itoa(railDim), storage.CategoryChildPart, railQty))

	if rockerSeats[sym] && !degree {
		parts = append(parts, mustLine("RK-50", strconv.Itoa(a-130), storage.CategoryChildPart, 1))
	}

	if tWideStiff[sym] {
		qty := int64(8)
		if sym == "TSE" {
			qty = 5
		}
		parts = append(parts, mustLine("U STIFFNER", strconv.Itoa(railDim), storage.CategoryChildPart, qty))
	}
	if rockerSeats[sym] || sym == "WSE" || sym == "WXSE" {
		parts = append(parts, mustLine("H STIFFNER", strconv.Itoa(railDim), storage.CategoryChildPart, 2))
	}
	if sym == "PCE" || sym == "SBE" {
		parts = append(parts, mustLine("I STIFFNER", strconv.Itoa(railDim), storage.CategoryChildPart, 8))
	}

	return parts
}
