package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsageEntry registro append-only de consumo de material.
// Cost es un snapshot (quantity × UnitCost del material al momento del uso);
// no se recalcula si el costo de referencia cambia después.
type UsageEntry struct {
	ID         string
	MaterialID string
	Quantity   decimal.Decimal
	UsedBy     string // user id del token
	Project    string
	Note       string
	Cost       decimal.Decimal
	CreatedAt  time.Time
}

// RestockEntry registro append-only de entrada de stock con metadatos de compra.
type RestockEntry struct {
	ID            string
	MaterialID    string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal // Quantity × UnitCost al momento del reabastecimiento
	Supplier      string
	PurchaseOrder string
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
}
