// Package reserve checks flattened demand against warehouse stock and holds
// the outcome per run so a reservation can be inspected, cleared or turned
// into a purchase request.
package reserve

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"sbcut/internal/storage"
)

// StockQuerier reads the on-hand quantity of one material in one warehouse,
// converted to the requested unit.
type StockQuerier interface {
	GetAvailableQty(ctx context.Context, materialCode, warehouse, uom string) (float64, error)
}

// RunNotFoundError reports an unknown or already cleared reservation run.
type RunNotFoundError struct {
	RunID uuid.UUID
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("reservation run %s not found", e.RunID)
}

type Engine struct {
	log            *slog.Logger
	stock          StockQuerier
	warehouses     []string
	standardLength float64

	mu   sync.Mutex
	runs map[uuid.UUID][]*storage.ReservationLine
}

// New builds an engine checking warehouses in the given priority order.
func New(log *slog.Logger, stock StockQuerier, warehouses []string, standardLength float64) *Engine {
	return &Engine{
		log:            log,
		stock:          stock,
		warehouses:     warehouses,
		standardLength: standardLength,
		runs:           make(map[uuid.UUID][]*storage.ReservationLine),
	}
}

// Reserve walks the demand per material code. A code is reserved only from
// the first warehouse in priority order that covers the FULL requirement;
// partial stock never splits across warehouses. The result is kept under the
// returned run id until Clear.
func (e *Engine) Reserve(ctx context.Context, demand storage.FlattenedDemand) (uuid.UUID, []*storage.ReservationLine, error) {
	const op = "service.reserve.Reserve"

	codes := demand.MaterialCodes()
	lines := make([]*storage.ReservationLine, len(codes))

	g, gCtx := errgroup.WithContext(ctx)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			line, err := e.reserveOne(gCtx, code, demand[code])
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			lines[i] = line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return uuid.Nil, nil, err
	}

	runID := uuid.New()
	e.mu.Lock()
	e.runs[runID] = lines
	e.mu.Unlock()

	e.log.Info("reservation run completed",
		slog.String("run_id", runID.String()),
		slog.Int("materials", len(lines)))

	return runID, lines, nil
}

func (e *Engine) reserveOne(ctx context.Context, code string, lines []storage.DemandLine) (*storage.ReservationLine, error) {
	required, uom := requiredQty(lines, e.standardLength)

	line := &storage.ReservationLine{
		MaterialCode: code,
		UOM:          uom,
		RequiredQty:  required,
		Status:       storage.StatusNotInStock,
	}

	// remember the deepest stock seen so the shortfall stays honest
	best := decimal.Zero
	for _, wh := range e.warehouses {
		qty, err := e.stock.GetAvailableQty(ctx, code, wh, uom)
		if err != nil {
			// an unreachable bin reads as empty, the run never aborts
			e.log.Error("stock query failed",
				slog.String("material_code", code),
				slog.String("warehouse", wh),
				slog.String("error", err.Error()))
			qty = 0
		}
		avail := decimal.NewFromFloat(qty)
		if avail.GreaterThanOrEqual(required) {
			line.AvailableQty = avail
			line.Status = storage.StatusReserved
			line.Warehouse = wh
			return line, nil
		}
		if avail.GreaterThan(best) {
			best = avail
		}
	}

	line.AvailableQty = best
	e.log.Warn("material not in stock",
		slog.String("material_code", code),
		slog.String("required", required.String()),
		slog.String("available", best.String()))
	return line, nil
}

// requiredQty converts a material's demand to stock pieces. Length-cut
// demand becomes whole standard bars; uncut demand is the summed quantity.
func requiredQty(lines []storage.DemandLine, standardLength float64) (decimal.Decimal, string) {
	var totalLen float64
	pieces := decimal.Zero
	uom := ""
	hasLengths := false

	for _, l := range lines {
		if uom == "" {
			uom = l.UOM
		}
		if len(l.Lengths) > 0 {
			hasLengths = true
			n, _ := l.Quantity.Float64()
			for _, length := range l.Lengths {
				totalLen += length * n
			}
			continue
		}
		pieces = pieces.Add(l.Quantity)
	}

	if hasLengths {
		bars := math.Ceil(totalLen / standardLength)
		return decimal.NewFromFloat(bars).Add(pieces), uom
	}
	return pieces, uom
}

// Lines returns a run's reservation lines.
func (e *Engine) Lines(runID uuid.UUID) ([]*storage.ReservationLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	lines, ok := e.runs[runID]
	if !ok {
		return nil, &RunNotFoundError{RunID: runID}
	}
	return lines, nil
}

// Clear drops a run and resets its lines, mirroring a released hold.
func (e *Engine) Clear(runID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines, ok := e.runs[runID]
	if !ok {
		return &RunNotFoundError{RunID: runID}
	}
	for _, l := range lines {
		l.Status = storage.StatusNone
		l.Warehouse = ""
		l.AvailableQty = decimal.Zero
	}
	delete(e.runs, runID)

	e.log.Info("reservation run cleared", slog.String("run_id", runID.String()))
	return nil
}

// Shortfall consolidates the unreservable part of a run into purchase
// request lines, sorted by material code.
func (e *Engine) Shortfall(runID uuid.UUID) ([]storage.PurchaseRequestLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines, ok := e.runs[runID]
	if !ok {
		return nil, &RunNotFoundError{RunID: runID}
	}

	var out []storage.PurchaseRequestLine
	for _, l := range lines {
		if l.Status != storage.StatusNotInStock {
			continue
		}
		missing := l.RequiredQty.Sub(l.AvailableQty)
		if missing.LessThanOrEqual(decimal.Zero) {
			continue
		}
		out = append(out, storage.PurchaseRequestLine{
			MaterialCode: l.MaterialCode,
			Quantity:     missing,
			UOM:          l.UOM,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialCode < out[j].MaterialCode })
	return out, nil
}
