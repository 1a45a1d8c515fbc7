package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sbcut/internal/storage"
)

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, batch []storage.BomComponent, degreeCutting bool) ([]byte, error)
}

type Request struct {
	Components    []storage.BomComponent `json:"components"`
	DegreeCutting bool                   `json:"degree_cutting"`
}

// GenerateReportExcel returns the cutting and offcut report workbook for a
// component batch.
func GenerateReportExcel(log *slog.Logger, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if len(req.Components) == 0 {
			http.Error(w, "empty component batch", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, req.Components, req.DegreeCutting)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Cutting_Report_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
