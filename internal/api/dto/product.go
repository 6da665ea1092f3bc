package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/domain/product"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type CreateProductRequest struct {
	Name        types.Bilingual `json:"name" validate:"required"`
	Description types.Bilingual `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Currency    types.Currency  `json:"currency"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

func (r *CreateProductRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name.En == "" {
		return ierr.NewError("product name is required").
			WithHint("Provide at least the English product name").
			Mark(ierr.ErrValidation)
	}
	if r.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithHint("Provide a non-negative price").
			Mark(ierr.ErrValidation)
	}
	if r.Currency != "" {
		return r.Currency.Validate()
	}
	return nil
}

func (r *CreateProductRequest) ToProduct() *product.Product {
	currency := r.Currency
	if currency == "" {
		currency = types.CurrencyEGP
	}
	return &product.Product{
		ID:          types.GenerateUUIDWithPrefix(types.IDPrefixProduct),
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		Currency:    currency,
		Stock:       r.Stock,
		BaseModel:   types.GetDefaultBaseModel(),
	}
}

type UpdateProductRequest struct {
	Name        *types.Bilingual `json:"name,omitempty"`
	Description *types.Bilingual `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateProductRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Price != nil && r.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithHint("Provide a non-negative price").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ProductResponse struct {
	*product.Product
}

func NewProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{Product: p}
}

type ListProductsResponse = types.ListResponse[*ProductResponse]
