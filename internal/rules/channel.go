package rules

import (
	"fmt"
	"strconv"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

var wallTypes = map[string]bool{
	"T": true, "TS": true, "W": true, "WR": true, "WRB": true,
	"WS": true, "WX": true, "WXS": true,
}

// Wall items wide enough for the full stiffener set.
var heavyWall = map[string]bool{
	"W": true, "WR": true, "WRB": true, "WS": true, "WX": true, "WXS": true,
}

var pipeQuantities = map[string]int64{
	"CP": 1, "CPP": 2, "CPPP": 3, "PH": 1,
}

func (r *Ruleset) deriveChannel(c fgcode.Code, corner, degree bool) ([]storage.MaterialLine, error) {
	a := c.OuterA
	sym := c.Profile

	cd1 := c.Length1 + r.off.CuttingTolerance
	l2 := 0
	if c.Length2 != nil {
		l2 = *c.Length2 + r.off.CuttingTolerance
	}
	if sym == "BCE" || sym == "KCE" {
		cd1 += r.off.WeldAllowance
		if c.Length2 != nil {
			l2 += r.off.WeldAllowance
		}
	}
	cd2 := "-"
	if hasLength2(c) {
		cd2 = strconv.Itoa(l2)
	}
	cut := dimText(strconv.Itoa(cd1), cd2, corner)

	var lines []storage.MaterialLine

	if code, ok := channelSections[a]; ok && a < 300 && a%25 == 0 {
		lines = append(lines, mustLine(code, cut, catChannel, 1))
	} else {
		table := chStraightL
		if corner {
			table = chCornerL
		}
		b, ok := table.lookup(a)
		if !ok {
			return nil, &NoRangeMatchError{Profile: sym, Dimension: a}
		}
		primary, secondary := b.Codes[0], b.Codes[1]
		switch {
		case a >= doubleSectionMin && secondary == primary:
			lines = append(lines, mustLine(primary, cut, catL, 2))
		case a >= doubleSectionMin:
			lines = append(lines,
				mustLine(primary, cut, catL, 1),
				mustLine(secondary, cut, catL, 1))
		default:
			// second seat is the main frame itself, nothing to buy
			lines = append(lines, mustLine(primary, cut, catL, 1))
		}
	}

	return append(lines, r.channelChildParts(c, corner, degree)...), nil
}

func (r *Ruleset) channelChildParts(c fgcode.Code, corner, degree bool) []storage.MaterialLine {
	a := c.OuterA
	sym := c.Profile

	var parts []storage.MaterialLine

	if sym != "PLB" {
		qty := int64(2)
		if degree && (sym == "WR" || sym == "WRB") {
			qty = 1
		}
		parts = append(parts, mustLine("SIDE RAIL", strconv.Itoa(a-16), storage.CategoryChildPart, qty))
	}

	if sym == "K" && c.Length1 >= 1800 {
		parts = append(parts, mustLine("STIFF PLATE", fmt.Sprintf("%dX61X4", a-16), storage.CategoryChildPart, 4))
	}

	if qty, ok := pipeQuantities[sym]; ok {
		parts = append(parts,
			mustLine("ROUND PIPE", "146", storage.CategoryChildPart, qty),
			mustLine("SQUARE PIPE", "80", storage.CategoryChildPart, qty))
	}

	if (sym == "WR" || sym == "WRB") && !degree {
		parts = append(parts, mustLine("RK-50", strconv.Itoa(a), storage.CategoryChildPart, 1))
	}

	if wallTypes[sym] {
		uQty := int64(3)
		if heavyWall[sym] {
			uQty = 8
		}
		parts = append(parts, mustLine("U STIFF", strconv.Itoa(a-16), storage.CategoryChildPart, uQty))
		if heavyWall[sym] {
			parts = append(parts, mustLine("H STIFF", strconv.Itoa(a-16), storage.CategoryChildPart, 2))
		}
	}

	if sym == "D" || sym == "SB" || sym == "PC" || sym == "B" {
		qty := int64(5)
		if sym == "D" || sym == "SB" {
			qty = 4
		}
		parts = append(parts, mustLine("I STIFF", strconv.Itoa(a-16), storage.CategoryChildPart, qty))
	}

	if corner && a < doubleSectionMin {
		parts = append(parts, mustLine("STIFF PLATE", fmt.Sprintf("%dX61X4", a-16), storage.CategoryChildPart, 2))
	}

	// long balcony item takes extra plates at the splice
	if sym == "B" && c.Length1 == 2775 {
		parts = append(parts, mustLine("STIFF PLATE", "61X109X4", storage.CategoryChildPart, 3))
	}

	return parts
}
