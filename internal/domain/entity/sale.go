package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta del POS.
type SaleStatus string

// Estados de una venta. Solo COMPLETED participa en la analítica.
const (
	SaleStatusPending   SaleStatus = "PENDING"   // carrito pagado parcialmente o en espera
	SaleStatusCompleted SaleStatus = "COMPLETED" // venta confirmada
	SaleStatusCancelled SaleStatus = "CANCELLED" // anulada
)

// Sale representa la cabecera de una venta del POS.
type Sale struct {
	ID          string
	CustomerID  string
	Date        time.Time
	TotalAmount decimal.Decimal
	Status      SaleStatus
	Items       []SaleItem
}

// IsCompleted indica si la venta cuenta para recencia, frecuencia y monto.
func (s Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}
