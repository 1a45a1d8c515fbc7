package reserve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"sbcut/internal/service/flatten"
	"sbcut/internal/storage"
)

type Flattener interface {
	Flatten(ctx context.Context, batch []storage.BomComponent, degreeCutting bool) (*flatten.Result, error)
}

type Reserver interface {
	Reserve(ctx context.Context, demand storage.FlattenedDemand) (uuid.UUID, []*storage.ReservationLine, error)
	Clear(runID uuid.UUID) error
	Shortfall(runID uuid.UUID) ([]storage.PurchaseRequestLine, error)
}

type Request struct {
	Components    []storage.BomComponent `json:"components"`
	DegreeCutting bool                   `json:"degree_cutting"`
}

type Resp struct {
	RunID uuid.UUID                  `json:"run_id"`
	Lines []*storage.ReservationLine `json:"lines"`
}

// Reserve flattens the batch and holds stock for it warehouse by warehouse.
func Reserve(log *slog.Logger, flattener Flattener, engine Reserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reserve.Reserve"

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

		res, err := flattener.Flatten(ctx, req.Components, req.DegreeCutting)
		if err != nil {
			log.Error("failed to flatten batch", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		runID, lines, err := engine.Reserve(ctx, res.Demand())
		if err != nil {
			log.Error("failed to reserve stock", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Resp{RunID: runID, Lines: lines})
	}
}
