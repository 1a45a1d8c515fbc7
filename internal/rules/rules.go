// Package rules derives the raw-material and child-part lines for a parsed
// FG code. Derivation is a pure function of the code, its family and the
// degree-cutting flag; every additive constant comes in through Offsets.
package rules

import (
	"fmt"

	"sbcut/internal/fgcode"
	"sbcut/internal/storage"
)

// Offsets are the cut-length adjustments the derivation rules apply before
// formatting a dimension. They are configuration: the values changed between
// table revisions and must never be hard-coded in the rule bodies.
type Offsets struct {
	// CuttingTolerance is added to every numeric primary cut length.
	CuttingTolerance int
	// WeldAllowance extends both lengths of welded corner channels (BCE, KCE).
	WeldAllowance int
	// SheetWrap widens the plate blank when aluminium sheet substitutes a J section.
	SheetWrap int
	// ButtCut shortens butt-jointed inner-corner and J cuts.
	ButtCut int
	// CrossCut shortens cross-jointed (T/X) cuts.
	CrossCut int
	// YCorner extends the second leg of the Y-corner (SCY) items.
	YCorner int
	// BracketExtension lengthens the MB soldier cut for its bracket.
	BracketExtension int
	// RockerSetback shortens rocker-seat T profiles cut square (no degree cutting).
	RockerSetback int
}

func DefaultOffsets() Offsets {
	return Offsets{
		CuttingTolerance: 0,
		WeldAllowance:    65,
		SheetWrap:        65,
		ButtCut:          4,
		CrossCut:         8,
		YCorner:          96,
		BracketExtension: 100,
		RockerSetback:    50,
	}
}

type Ruleset struct {
	off Offsets
}

func NewRuleset(off Offsets) *Ruleset {
	return &Ruleset{off: off}
}

// NoRangeMatchError reports a primary dimension outside every table of its
// family. The component yields zero lines; the batch keeps going.
type NoRangeMatchError struct {
	Profile   string
	Dimension int
}

func (e *NoRangeMatchError) Error() string {
	return fmt.Sprintf("profile %s: dimension %d outside every lookup table", e.Profile, e.Dimension)
}

// Derive produces the material lines for one FG code. Primary lines carry
// their section category, fabricated sub-components carry CHILD PART. The
// result is deterministic and the receiver is never mutated.
func (r *Ruleset) Derive(c fgcode.Code, fam fgcode.Family, degreeCutting bool) ([]storage.MaterialLine, error) {
	switch fam {
	case fgcode.ChannelStraight, fgcode.ChannelCorner:
		return r.deriveChannel(c, fam.Corner(), degreeCutting)
	case fgcode.InnerCornerStraight, fgcode.InnerCornerCorner:
		return r.deriveInnerCorner(c, fam.Corner())
	case fgcode.JStraight, fgcode.JCorner:
		return r.deriveJ(c, fam.Corner())
	case fgcode.TProfile:
		return r.deriveT(c, degreeCutting)
	case fgcode.Misc:
		return r.deriveMisc(c)
	default:
		return nil, fmt.Errorf("profile %s: no derivation for family %s", c.Profile, fam)
	}
}

// mustLine builds a line from static table data; the inputs cannot fail
// validation for any well-formed code.
func mustLine(materialCode, dimension, category string, qty int64) storage.MaterialLine {
	l, err := storage.NewMaterialLine("", materialCode, dimension, category, qty)
	if err != nil {
		panic(err)
	}
	return l
}

// hasLength2 reports whether the code carries a usable second length.
// An explicit zero reads the same as an absent field.
func hasLength2(c fgcode.Code) bool {
	return c.Length2 != nil && *c.Length2 != 0
}

func dimText(cd1, cd2 string, corner bool) string {
	if corner {
		return cd1 + "," + cd2
	}
	return cd1
}

func anyCodeSuffix(lines []storage.MaterialLine, suffix string) bool {
	for _, l := range lines {
		if len(l.MaterialCode) >= len(suffix) && l.MaterialCode[len(l.MaterialCode)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
