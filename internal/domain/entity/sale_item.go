package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de una venta.
// Lleva una copia de los datos del producto necesarios para la analítica
// (nombre, categoría y precio de compra vigente).
type SaleItem struct {
	ProductID     string
	ProductName   string
	Category      string
	Quantity      int
	UnitPrice     decimal.Decimal
	PurchasePrice *decimal.Decimal // nil cuando el producto no tiene costo registrado
}

// Subtotal devuelve quantity × unit price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cost devuelve purchase price × quantity; cero si no hay costo registrado.
func (i SaleItem) Cost() decimal.Decimal {
	if i.PurchasePrice == nil {
		return decimal.Zero
	}
	return i.PurchasePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
