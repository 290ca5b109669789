// Package memory implementa el repositorio de analítica sobre datos en memoria.
// Lo usan el CLI (modo --fixtures) y las pruebas de las capas superiores.
package memory

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/jhoicas/pos-analytics/internal/domain/analytics"
	"github.com/jhoicas/pos-analytics/internal/domain/entity"
	"github.com/jhoicas/pos-analytics/internal/domain/repository"
)

var _ repository.SalesAnalyticsRepository = (*AnalyticsRepo)(nil)

// Snapshot datos de una empresa. Las ventas se guardan planas con su CustomerID;
// Customer.Sales se ignora al cargar.
type Snapshot struct {
	Customers []entity.Customer `json:"customers"`
	Products  []entity.Product  `json:"products"`
	Sales     []entity.Sale     `json:"sales"`
}

// AnalyticsRepo repositorio en memoria, seguro para uso concurrente.
type AnalyticsRepo struct {
	mu    sync.RWMutex
	data  map[string]Snapshot
	err   error
	calls int
}

// NewAnalyticsRepository crea un repositorio vacío.
func NewAnalyticsRepository() *AnalyticsRepo {
	return &AnalyticsRepo{data: map[string]Snapshot{}}
}

// Put reemplaza los datos de una empresa.
func (r *AnalyticsRepo) Put(companyID string, s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[companyID] = s
}

// FailWith hace que todas las consultas devuelvan err (nil restablece).
func (r *AnalyticsRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls devuelve cuántas consultas se han atendido.
func (r *AnalyticsRepo) Calls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}

// LoadJSON carga un archivo {"<company_id>": Snapshot, ...}.
func LoadJSON(rd io.Reader) (*AnalyticsRepo, error) {
	var data map[string]Snapshot
	if err := json.NewDecoder(rd).Decode(&data); err != nil {
		return nil, fmt.Errorf("memory: decodificar fixtures: %w", err)
	}
	r := NewAnalyticsRepository()
	for companyID, s := range data {
		r.Put(companyID, s)
	}
	return r, nil
}

func (r *AnalyticsRepo) snapshot(ctx context.Context, companyID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return Snapshot{}, r.err
	}
	return r.data[companyID], nil
}

// ListCustomersWithSales devuelve los clientes ordenados por nombre con sus ventas
// completadas del período (sin líneas), ascendentes por fecha.
func (r *AnalyticsRepo) ListCustomersWithSales(ctx context.Context, companyID string, period *analytics.Period) ([]entity.Customer, error) {
	s, err := r.snapshot(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListCustomersWithSales: %w", err)
	}

	byCustomer := map[string][]entity.Sale{}
	for _, sale := range completedSales(s.Sales, period) {
		sale.Items = nil
		byCustomer[sale.CustomerID] = append(byCustomer[sale.CustomerID], sale)
	}

	customers := make([]entity.Customer, 0, len(s.Customers))
	for _, c := range s.Customers {
		customers = append(customers, entity.Customer{ID: c.ID, Name: c.Name, Sales: byCustomer[c.ID]})
	}
	slices.SortStableFunc(customers, func(a, b entity.Customer) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return customers, nil
}

// ListProducts devuelve el catálogo ordenado por nombre.
func (r *AnalyticsRepo) ListProducts(ctx context.Context, companyID string) ([]entity.Product, error) {
	s, err := r.snapshot(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListProducts: %w", err)
	}
	products := slices.Clone(s.Products)
	slices.SortStableFunc(products, func(a, b entity.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// ListCompletedSales devuelve las ventas completadas del período con sus líneas.
func (r *AnalyticsRepo) ListCompletedSales(ctx context.Context, companyID string, period analytics.Period) ([]entity.Sale, error) {
	s, err := r.snapshot(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListCompletedSales: %w", err)
	}
	return completedSales(s.Sales, &period), nil
}

func completedSales(all []entity.Sale, period *analytics.Period) []entity.Sale {
	sales := []entity.Sale{}
	for _, sale := range all {
		if !sale.IsCompleted() {
			continue
		}
		if period != nil && !period.Contains(sale.Date) {
			continue
		}
		sale.Items = slices.Clone(sale.Items)
		sales = append(sales, sale)
	}
	slices.SortStableFunc(sales, func(a, b entity.Sale) int {
		return a.Date.Compare(b.Date)
	})
	return sales
}
