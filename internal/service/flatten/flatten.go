// Package flatten expands a batch of finished-good components into the flat
// per-material cutting demand the allocator and reservation engine consume.
package flatten

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"sbcut/internal/fgcode"
	"sbcut/internal/rules"
	"sbcut/internal/storage"
)

// ComponentError wraps any per-component failure so the batch can keep
// going. Index refers to the component's position in the input batch.
type ComponentError struct {
	Index  int
	FgCode string
	Err    error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %d (%s): %v", e.Index, e.FgCode, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// Result holds the flattened lines in input order plus the components that
// failed to decompose.
type Result struct {
	Lines  []storage.MaterialLine
	Errors []*ComponentError
}

// Demand regroups the flattened lines per material code.
func (r *Result) Demand() storage.FlattenedDemand {
	return storage.GroupByMaterial(r.Lines)
}

type Service struct {
	log       *slog.Logger
	rules     *rules.Ruleset
	batchSize int
}

func New(log *slog.Logger, rs *rules.Ruleset, batchSize int) *Service {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Service{log: log, rules: rs, batchSize: batchSize}
}

// Flatten decomposes every component of the batch. A malformed or unmatched
// component contributes zero lines and an entry in Result.Errors; the rest
// of the batch is unaffected. Output order follows input order regardless of
// which goroutine finished first.
func (s *Service) Flatten(ctx context.Context, batch []storage.BomComponent, degreeCutting bool) (*Result, error) {
	const op = "service.flatten.Flatten"

	type slot struct {
		lines []storage.MaterialLine
		err   *ComponentError
	}
	slots := make([]slot, len(batch))

	for start := 0; start < len(batch); start += s.batchSize {
		end := start + s.batchSize
		if end > len(batch) {
			end = len(batch)
		}

		g, gCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				lines, err := s.flattenOne(batch[i], degreeCutting)
				if err != nil {
					slots[i].err = &ComponentError{Index: i, FgCode: batch[i].FgCode, Err: err}
					s.log.Warn("component skipped",
						slog.String("fg_code", batch[i].FgCode),
						slog.String("error", err.Error()))
					return nil
				}
				slots[i].lines = lines
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	res := &Result{}
	for i := range slots {
		res.Lines = append(res.Lines, slots[i].lines...)
		if slots[i].err != nil {
			res.Errors = append(res.Errors, slots[i].err)
		}
	}
	return res, nil
}

func (s *Service) flattenOne(comp storage.BomComponent, degreeCutting bool) ([]storage.MaterialLine, error) {
	code, err := fgcode.Parse(comp.FgCode)
	if err != nil {
		return nil, err
	}
	fam, err := fgcode.Classify(code.Profile)
	if err != nil {
		return nil, err
	}

	derived, err := s.rules.Derive(code, fam, degreeCutting)
	if err != nil {
		return nil, err
	}

	out := make([]storage.MaterialLine, 0, len(derived))
	for _, l := range derived {
		l.FgCode = comp.FgCode
		l.UOM = comp.UOM
		l.SourceRef = comp.SourceRef
		l.Quantity = l.Quantity.Mul(comp.Quantity)
		out = append(out, l)
	}
	return out, nil
}
