package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
)

var _ repository.SalesAnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre clientes, productos y ventas del POS.
// Todas filtran status = 'COMPLETED' en SQL.
type AnalyticsRepo struct {
	db Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db Querier) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// ListCustomersWithSales devuelve cada cliente de la empresa con sus ventas completadas
// anidadas. Los clientes sin ventas aparecen con Sales vacío.
func (r *AnalyticsRepo) ListCustomersWithSales(
	ctx context.Context,
	companyID string,
	period *analytics.Period,
) ([]entity.Customer, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    s.id,
	    s.date,
	    s.total_amount
	FROM customers c
	LEFT JOIN sales s
	       ON s.customer_id = c.id
	      AND s.company_id  = c.company_id
	      AND s.status      = 'COMPLETED'
	      AND ($2::timestamptz IS NULL OR s.date >= $2)
	      AND ($3::timestamptz IS NULL OR s.date <= $3)
	WHERE c.company_id = $1
	ORDER BY c.name, c.id, s.date`

	var start, end *time.Time
	if period != nil {
		start, end = &period.Start, &period.End
	}

	rows, err := r.db.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListCustomersWithSales: %w", err)
	}
	defer rows.Close()

	customers := []entity.Customer{}
	for rows.Next() {
		var (
			customerID, name string
			saleID           *string
			date             *time.Time
			total            *decimal.Decimal
		)
		if err := rows.Scan(&customerID, &name, &saleID, &date, &total); err != nil {
			return nil, fmt.Errorf("analytics.ListCustomersWithSales scan: %w", err)
		}
		if n := len(customers); n == 0 || customers[n-1].ID != customerID {
			customers = append(customers, entity.Customer{ID: customerID, Name: name})
		}
		if saleID == nil {
			continue
		}
		c := &customers[len(customers)-1]
		sale := entity.Sale{
			ID:          *saleID,
			CustomerID:  customerID,
			Status:      entity.SaleStatusCompleted,
			TotalAmount: decimal.Zero,
		}
		if date != nil {
			sale.Date = *date
		}
		if total != nil {
			sale.TotalAmount = *total
		}
		c.Sales = append(c.Sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.ListCustomersWithSales rows: %w", err)
	}
	return customers, nil
}

// ListProducts devuelve el catálogo de la empresa con stock y precios.
func (r *AnalyticsRepo) ListProducts(ctx context.Context, companyID string) ([]entity.Product, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(cat.name, '')          AS category,
	    p.stock,
	    p.min_stock,
	    COALESCE(p.purchase_price, 0)   AS purchase_price,
	    p.selling_price
	FROM products p
	LEFT JOIN categories cat ON cat.id = p.category_id
	WHERE p.company_id = $1
	ORDER BY p.name, p.id`

	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListProducts: %w", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.Stock,
			&p.MinStock,
			&p.PurchasePrice,
			&p.SellingPrice,
		); err != nil {
			return nil, fmt.Errorf("analytics.ListProducts scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.ListProducts rows: %w", err)
	}
	return products, nil
}

// ListCompletedSales devuelve las ventas completadas del período con sus líneas.
// Cada línea lleva nombre, categoría y precio de compra actual del producto.
func (r *AnalyticsRepo) ListCompletedSales(
	ctx context.Context,
	companyID string,
	period analytics.Period,
) ([]entity.Sale, error) {
	const query = `
	SELECT
	    s.id,
	    COALESCE(s.customer_id::TEXT, '') AS customer_id,
	    s.date,
	    s.total_amount,
	    si.product_id,
	    p.name,
	    COALESCE(cat.name, '')            AS category,
	    si.quantity,
	    si.unit_price,
	    p.purchase_price
	FROM sales s
	JOIN sale_items si      ON si.sale_id = s.id
	JOIN products   p       ON p.id       = si.product_id
	LEFT JOIN categories cat ON cat.id    = p.category_id
	WHERE s.company_id = $1
	  AND s.status     = 'COMPLETED'
	  AND s.date BETWEEN $2 AND $3
	ORDER BY s.date, s.id, si.id`

	rows, err := r.db.Query(ctx, query, companyID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListCompletedSales: %w", err)
	}
	defer rows.Close()

	sales := []entity.Sale{}
	for rows.Next() {
		var (
			sale entity.Sale
			item entity.SaleItem
		)
		if err := rows.Scan(
			&sale.ID,
			&sale.CustomerID,
			&sale.Date,
			&sale.TotalAmount,
			&item.ProductID,
			&item.ProductName,
			&item.Category,
			&item.Quantity,
			&item.UnitPrice,
			&item.PurchasePrice,
		); err != nil {
			return nil, fmt.Errorf("analytics.ListCompletedSales scan: %w", err)
		}
		// Las filas llegan agrupadas por venta: solo se abre una cabecera nueva al cambiar de id.
		if n := len(sales); n == 0 || sales[n-1].ID != sale.ID {
			sale.Status = entity.SaleStatusCompleted
			sales = append(sales, sale)
		}
		last := &sales[len(sales)-1]
		last.Items = append(last.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.ListCompletedSales rows: %w", err)
	}
	return sales, nil
}
