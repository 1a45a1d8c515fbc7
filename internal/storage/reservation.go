package storage

import "github.com/shopspring/decimal"

type ReservationStatus string

const (
	StatusReserved   ReservationStatus = "RESERVED"
	StatusNotInStock ReservationStatus = "NOT IN STOCK"
	StatusNone       ReservationStatus = ""
)

// ReservationLine is the reservation decision for one material code of a run.
// RequiredQty is in stock pieces: for length-cut materials it is the number of
// standard bars the total demand length needs.
type ReservationLine struct {
	MaterialCode string            `json:"material_code"`
	UOM          string            `json:"uom,omitempty"`
	RequiredQty  decimal.Decimal   `json:"required_qty"`
	AvailableQty decimal.Decimal   `json:"available_qty"`
	Status       ReservationStatus `json:"status"`
	Warehouse    string            `json:"warehouse,omitempty"`
}

// PurchaseRequestLine is one consolidated shortfall line for a material code
// that no warehouse could cover.
type PurchaseRequestLine struct {
	MaterialCode string          `json:"material_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	UOM          string          `json:"uom,omitempty"`
}
