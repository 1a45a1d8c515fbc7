package cutplan

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"sbcut/internal/service/cutplan"
	"sbcut/internal/service/flatten"
	"sbcut/internal/storage"
)

type Flattener interface {
	Flatten(ctx context.Context, batch []storage.BomComponent, degreeCutting bool) (*flatten.Result, error)
}

type Request struct {
	Components    []storage.BomComponent `json:"components"`
	DegreeCutting bool                   `json:"degree_cutting"`
}

type Resp struct {
	Plan   *cutplan.Plan `json:"plan"`
	Errors int           `json:"skipped_components,omitempty"`
}

// Plan flattens the batch and packs its cuts into standard stock bars.
func Plan(log *slog.Logger, flattener Flattener, allocator *cutplan.Allocator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.cutplan.Plan"

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

		plan := allocator.Allocate(res.Demand())

		render.JSON(w, r, Resp{Plan: plan, Errors: len(res.Errors)})
	}
}
