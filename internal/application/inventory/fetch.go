package inventory

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
)

// fetchProductsAndSales lanza las dos consultas independientes en paralelo.
func fetchProductsAndSales(
	ctx context.Context,
	repo repository.SalesAnalyticsRepository,
	companyID string,
	period analytics.Period,
) ([]entity.Product, []entity.Sale, error) {
	var (
		products []entity.Product
		sales    []entity.Sale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = repo.ListProducts(gctx, companyID)
		if err != nil {
			return fmt.Errorf("productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sales, err = repo.ListCompletedSales(gctx, companyID, period)
		if err != nil {
			return fmt.Errorf("ventas: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, sales, nil
}
