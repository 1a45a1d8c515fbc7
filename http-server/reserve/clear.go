package reserve

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"sbcut/internal/service/reserve"
)

// Clear releases every hold of a reservation run.
func Clear(log *slog.Logger, engine Reserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reserve.Clear"

		runID, err := uuid.Parse(chi.URLParam(r, "runID"))
		if err != nil {
			http.Error(w, "invalid run id", http.StatusBadRequest)
			return
		}

		if err := engine.Clear(runID); err != nil {
			var notFound *reserve.RunNotFoundError
			if errors.As(err, &notFound) {
				http.Error(w, "run not found", http.StatusNotFound)
				return
			}
			log.Error("failed to clear reservation", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "cleared", "run_id": runID.String()})
	}
}
