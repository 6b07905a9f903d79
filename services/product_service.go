package services

import (
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

var ErrNegativePrice = errors.New("price cannot be negative")

type ProductService struct {
	logger       *gecho.Logger
	store        ProductStore
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, store ProductStore, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		store:        store,
		cacheService: cacheService,
	}
}

// List returns the catalog, served from Redis when the same filter was asked for recently.
func (ps *ProductService) List(ctx context.Context, filter structs.ProductFilter) ([]tables.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)

	cached, err := ps.cacheService.GetProductList(ctx, filter)
	if err != nil {
		ps.logger.Warn("Failed to read product list from cache", gecho.Field("error", err))
	}
	if cached != nil {
		return cached, nil
	}

	startTime := time.Now()
	products, err := ps.store.ListProducts(ctx, filter)
	if err != nil {
		ps.logger.Error("Failed to list products", gecho.Field("error", err))
		return nil, err
	}
	ps.logger.Debug("Products listed",
		gecho.Field("count", len(products)),
		gecho.Field("elapsed_ms", time.Since(startTime).Milliseconds()),
	)

	if err := ps.cacheService.SetProductList(ctx, filter, products); err != nil {
		ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
	}
	return products, nil
}

func (ps *ProductService) Get(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	return ps.store.GetProduct(ctx, id)
}

func (ps *ProductService) Create(ctx context.Context, req *structs.ProductRequest) (*tables.Product, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	p := &tables.Product{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Price:    req.Price.Round(2),
		Active:   true,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := ps.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	ps.invalidate(ctx)
	ps.logger.Info("Product created", gecho.Field("product_id", p.ID), gecho.Field("name", p.Name))
	return p, nil
}

func (ps *ProductService) Update(ctx context.Context, id uuid.UUID, req *structs.ProductRequest) (*tables.Product, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	p, err := ps.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Category = strings.TrimSpace(req.Category)
	p.Price = req.Price.Round(2)
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := ps.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	ps.invalidate(ctx)
	return p, nil
}

func (ps *ProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*tables.Product, error) {
	if err := ps.store.SetProductActive(ctx, id, active); err != nil {
		return nil, err
	}
	ps.invalidate(ctx)
	return ps.store.GetProduct(ctx, id)
}

// Delete fails with a conflict while any ticket item still points at the product.
func (ps *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ps.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	ps.invalidate(ctx)
	ps.logger.Info("Product deleted", gecho.Field("product_id", id))
	return nil
}

func (ps *ProductService) invalidate(ctx context.Context) {
	if err := ps.cacheService.InvalidateCatalog(ctx); err != nil {
		ps.logger.Warn("Failed to invalidate catalog cache", gecho.Field("error", err))
	}
}
