// Package report renders a flattening run and its cut plan as an Excel
// workbook for the cutting floor.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sbcut/internal/service/cutplan"
	"sbcut/internal/service/flatten"
	"sbcut/internal/storage"
)

type Flattener interface {
	Flatten(ctx context.Context, batch []storage.BomComponent, degreeCutting bool) (*flatten.Result, error)
}

type Service struct {
	flattener Flattener
	allocator *cutplan.Allocator
}

func New(flattener Flattener, allocator *cutplan.Allocator) *Service {
	return &Service{flattener: flattener, allocator: allocator}
}

const (
	sheetCutting = "Cutting Report"
	sheetOffcut  = "Offcut Report"
)

// GenerateExcel flattens the batch, allocates it to stock bars and writes
// both views into one workbook.
func (s *Service) GenerateExcel(ctx context.Context, batch []storage.BomComponent, degreeCutting bool) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	res, err := s.flattener.Flatten(ctx, batch, degreeCutting)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plan := s.allocator.Allocate(res.Demand())

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	f.SetSheetName("Sheet1", sheetCutting)
	if err := s.writeCuttingSheet(f, headerStyle, res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := f.NewSheet(sheetOffcut); err != nil {
		return nil, fmt.Errorf("%s: offcut sheet: %w", op, err)
	}
	if err := s.writeOffcutSheet(f, headerStyle, plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}
	return buf.Bytes(), nil
}

func (s *Service) writeCuttingSheet(f *excelize.File, headerStyle int, res *flatten.Result) error {
	headers := []string{"FG Code", "Raw Material", "Dimension", "Category", "Quantity", "UOM", "Source Ref"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetCutting, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetCutting, "A1", lastCol, headerStyle)

	for i, l := range res.Lines {
		row := i + 2
		qty, _ := l.Quantity.Float64()
		values := []interface{}{l.FgCode, l.MaterialCode, l.Dimension, l.Category, qty, l.UOM, l.SourceRef}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetCutting, cell, v)
		}
	}
	return nil
}

func (s *Service) writeOffcutSheet(f *excelize.File, headerStyle int, plan *cutplan.Plan) error {
	headers := []string{"Raw Material", "Remaining Length", "Quantity"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetOffcut, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetOffcut, "A1", lastCol, headerStyle)

	for i, o := range plan.Offcuts {
		row := i + 2
		values := []interface{}{o.MaterialCode, o.RemainingLength, o.Quantity}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetOffcut, cell, v)
		}
	}
	return nil
}
