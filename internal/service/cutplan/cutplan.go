// Package cutplan assigns the flattened cut demand to standard stock bars
// and reports the resulting offcuts.
package cutplan

import (
	"log/slog"
	"sort"

	"sbcut/internal/storage"
)

// Offcut is the unused remainder of one or more identically cut bars.
type Offcut struct {
	MaterialCode    string  `json:"material_code"`
	RemainingLength float64 `json:"remaining_length"`
	Quantity        int     `json:"quantity"`
}

// SkippedCut records a demanded length no stock bar can hold.
type SkippedCut struct {
	MaterialCode string  `json:"material_code"`
	Length       float64 `json:"length"`
}

// Plan is the full allocation for one demand set.
type Plan struct {
	// Offcuts is sorted by material code, then remaining length descending.
	Offcuts []Offcut `json:"offcuts"`
	// Pieces counts the stock bars opened per material.
	Pieces map[string]int `json:"pieces"`
	// Skipped lists cuts longer than the standard bar, in demand order.
	Skipped []SkippedCut `json:"skipped,omitempty"`
}

type Allocator struct {
	log            *slog.Logger
	standardLength float64
}

func New(log *slog.Logger, standardLength float64) *Allocator {
	return &Allocator{log: log, standardLength: standardLength}
}

// Allocate packs every cut of the demand into standard bars, material by
// material. Cuts are taken longest first into a single open bar; when the
// next cut does not fit the bar is closed, its remainder recorded, and a
// fresh bar opened. Total bar length always equals cut total plus offcut
// total for every material.
func (a *Allocator) Allocate(demand storage.FlattenedDemand) *Plan {
	plan := &Plan{Pieces: make(map[string]int)}

	for _, code := range demand.MaterialCodes() {
		cuts := expand(demand[code])
		if len(cuts) == 0 {
			continue
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(cuts)))

		var rems []float64
		remaining := a.standardLength
		pieces := 0
		for _, cut := range cuts {
			if cut > a.standardLength {
				plan.Skipped = append(plan.Skipped, SkippedCut{MaterialCode: code, Length: cut})
				a.log.Error("cut exceeds standard bar",
					slog.String("material_code", code),
					slog.Float64("length", cut),
					slog.Float64("standard_length", a.standardLength))
				continue
			}
			if pieces == 0 || cut > remaining {
				if pieces > 0 {
					rems = append(rems, remaining)
				}
				remaining = a.standardLength
				pieces++
			}
			remaining -= cut
		}
		if pieces == 0 {
			continue
		}
		rems = append(rems, remaining)

		plan.Pieces[code] = pieces

		// identical remainders collapse into one row
		counts := make(map[float64]int)
		for _, rem := range rems {
			counts[rem]++
		}
		for rem, qty := range counts {
			plan.Offcuts = append(plan.Offcuts, Offcut{
				MaterialCode:    code,
				RemainingLength: rem,
				Quantity:        qty,
			})
		}
	}

	sort.Slice(plan.Offcuts, func(i, j int) bool {
		if plan.Offcuts[i].MaterialCode != plan.Offcuts[j].MaterialCode {
			return plan.Offcuts[i].MaterialCode < plan.Offcuts[j].MaterialCode
		}
		return plan.Offcuts[i].RemainingLength > plan.Offcuts[j].RemainingLength
	})

	return plan
}

// expand repeats each line's cut lengths by its quantity.
func expand(lines []storage.DemandLine) []float64 {
	var cuts []float64
	for _, l := range lines {
		n := int(l.Quantity.IntPart())
		for i := 0; i < n; i++ {
			cuts = append(cuts, l.Lengths...)
		}
	}
	return cuts
}
