package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo del POS.
// Stock y MinStock se expresan en unidades.
type Product struct {
	ID            string
	Name          string
	Category      string
	Stock         int
	MinStock      int
	PurchasePrice decimal.Decimal // costo de compra
	SellingPrice  decimal.Decimal // precio de venta
}
