package reserve

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"sbcut/internal/service/reserve"
	"sbcut/internal/storage"
)

type ShortfallResp struct {
	RunID uuid.UUID                     `json:"run_id"`
	Lines []storage.PurchaseRequestLine `json:"lines"`
}

// Shortfall lists what a run could not reserve, as purchase request lines.
func Shortfall(log *slog.Logger, engine Reserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reserve.Shortfall"

		runID, err := uuid.Parse(chi.URLParam(r, "runID"))
		if err != nil {
			http.Error(w, "invalid run id", http.StatusBadRequest)
			return
		}

		lines, err := engine.Shortfall(runID)
		if err != nil {
			var notFound *reserve.RunNotFoundError
			if errors.As(err, &notFound) {
				http.Error(w, "run not found", http.StatusNotFound)
				return
			}
			log.Error("failed to compute shortfall", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ShortfallResp{RunID: runID, Lines: lines})
	}
}
