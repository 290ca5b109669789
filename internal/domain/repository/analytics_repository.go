package repository

import (
	"context"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
)

// SalesAnalyticsRepository define las consultas de lectura que alimentan la analítica.
// Las implementaciones son read-only y siempre filtran por empresa.
type SalesAnalyticsRepository interface {
	// ListCustomersWithSales devuelve los clientes con sus ventas completadas
	// anidadas (id, fecha, total) en orden ascendente de fecha.
	// period nil devuelve el historial completo.
	ListCustomersWithSales(ctx context.Context, companyID string, period *analytics.Period) ([]entity.Customer, error)

	// ListProducts devuelve el catálogo con stock, mínimo y precios.
	ListProducts(ctx context.Context, companyID string) ([]entity.Product, error)

	// ListCompletedSales devuelve las ventas completadas del período con sus
	// líneas (producto, categoría, cantidad, precio y costo), ascendente por fecha.
	ListCompletedSales(ctx context.Context, companyID string, period analytics.Period) ([]entity.Sale, error)
}
