package decompose

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

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

type ComponentError struct {
	Index  int    `json:"index"`
	FgCode string `json:"fg_code"`
	Error  string `json:"error"`
}

type Resp struct {
	Lines  []storage.MaterialLine  `json:"lines"`
	Demand storage.FlattenedDemand `json:"demand"`
	Errors []ComponentError        `json:"errors,omitempty"`
}

// Decompose flattens a batch of finished-good components into raw-material
// and child-part lines. Bad components come back in the errors list; they
// never fail the whole batch.
func Decompose(log *slog.Logger, flattener Flattener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.decompose.Decompose"

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

		resp := Resp{Lines: res.Lines, Demand: res.Demand()}
		for _, ce := range res.Errors {
			resp.Errors = append(resp.Errors, ComponentError{
				Index:  ce.Index,
				FgCode: ce.FgCode,
				Error:  ce.Err.Error(),
			})
		}

		render.JSON(w, r, resp)
	}
}
