package rules

import (
	"strconv"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

func (r *Ruleset) deriveMisc(c fgcode.Code) ([]storage.MaterialLine, error) {
	a := c.OuterA
	sym := c.Profile

	l1 := c.Length1 + r.off.CuttingTolerance
	if sym == "MB" {
		l1 += r.off.BracketExtension
	}
	cut := strconv.Itoa(l1)

	key := miscKey{A: a}
	if miscSubtyped[sym] {
		key.Sym = sym
	}

	// an unmatched size is not an error here, the child parts below
	// still apply
	var lines []storage.MaterialLine
	if sec, ok := miscExact[key]; ok {
		lines = append(lines, mustLine(sec.Code, cut, sec.Category, 1))
	} else if sym == "RK" && a != 50 {
		if row, ok := lSections.lookup(a); ok {
			lines = append(lines, mustLine(row.Codes[0], cut, catRKOdd, 1))
		}
	}

	if sym == "DP" {
		lines = append(lines, mustLine("ROUND PIPE", "196", storage.CategoryChildPart, 1))
		if a == 150 {
			lines = append(lines, mustLine("SQUARE PLATE", "150X150X4", storage.CategoryChildPart, 1))
		}
	}
	if (sym == "EB" || sym == "MB") && a == 150 {
		lines = append(lines, mustLine("SUPPORT PIPE", "105", storage.CategoryChildPart, 1))
	}

	return lines, nil
}
