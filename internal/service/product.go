package service

import (
	"context"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/types"
)

// ProductService covers the store catalogue.
type ProductService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, limit, offset int) (*dto.ListProductsResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{ServiceParams: params}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProduct()
	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	if err := s.ProductRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	return s.ProductRepo.SoftDelete(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, limit, offset int) (*dto.ListProductsResponse, error) {
	if limit <= 0 {
		limit = types.FilterDefaultLimit
	}

	products, err := s.ProductRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.ProductRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = dto.NewProductResponse(p)
	}

	listResponse := types.NewListResponse(responses, int(total), limit, offset)
	return &listResponse, nil
}
