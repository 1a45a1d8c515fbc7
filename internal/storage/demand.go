package storage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const CategoryChildPart = "CHILD PART"

// BomComponent is one row of a planning BOM batch.
type BomComponent struct {
	FgCode    string          `json:"fg_code"`
	Quantity  decimal.Decimal `json:"quantity"`
	UOM       string          `json:"uom"`
	SourceRef string          `json:"source_ref"`
}

// MaterialLine is one derived raw-material or child-part requirement.
// Dimension is kept as text: it is either one cut length, two comma-separated
// cut lengths for corner items, a plate size like "205X3000X4", or "-" when
// the material is bought uncut.
type MaterialLine struct {
	FgCode       string          `json:"fg_code"`
	MaterialCode string          `json:"material_code"`
	Dimension    string          `json:"dimension"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	UOM          string          `json:"uom,omitempty"`
	SourceRef    string          `json:"source_ref,omitempty"`
}

func NewMaterialLine(fgCode, materialCode, dimension, category string, quantity int64) (MaterialLine, error) {
	if materialCode == "" {
		return MaterialLine{}, fmt.Errorf("material line for %q: empty material code", fgCode)
	}
	if quantity <= 0 {
		return MaterialLine{}, fmt.Errorf("material line %s for %q: quantity %d", materialCode, fgCode, quantity)
	}
	if dimension == "" {
		dimension = "-"
	}
	return MaterialLine{
		FgCode:       fgCode,
		MaterialCode: materialCode,
		Dimension:    dimension,
		Category:     category,
		Quantity:     decimal.NewFromInt(quantity),
	}, nil
}

func (l MaterialLine) IsChildPart() bool {
	return l.Category == CategoryChildPart
}

// CutLengths extracts the numeric cut lengths from the line dimension.
// Plate sizes and "-" placeholders yield none.
func (l MaterialLine) CutLengths() []float64 {
	var lengths []float64
	for _, part := range strings.Split(l.Dimension, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v <= 0 {
			continue
		}
		lengths = append(lengths, v)
	}
	return lengths
}

// DemandLine is one flattened line of a material code's demand.
type DemandLine struct {
	FgCode    string          `json:"fg_code"`
	Dimension string          `json:"dimension"`
	Lengths   []float64       `json:"lengths,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UOM       string          `json:"uom,omitempty"`
	SourceRef string          `json:"source_ref,omitempty"`
}

// FlattenedDemand groups flattened lines per material code, preserving the
// order the lines were derived in.
type FlattenedDemand map[string][]DemandLine

func GroupByMaterial(lines []MaterialLine) FlattenedDemand {
	demand := make(FlattenedDemand)
	for _, l := range lines {
		demand[l.MaterialCode] = append(demand[l.MaterialCode], DemandLine{
			FgCode:    l.FgCode,
			Dimension: l.Dimension,
			Lengths:   l.CutLengths(),
			Quantity:  l.Quantity,
			UOM:       l.UOM,
			SourceRef: l.SourceRef,
		})
	}
	return demand
}

// MaterialCodes returns the demand's codes in stable sorted order.
func (d FlattenedDemand) MaterialCodes() []string {
	codes := make([]string, 0, len(d))
	for code := range d {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
