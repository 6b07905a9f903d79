package structs

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=120"`
	Category string          `json:"category" validate:"required,min=1,max=60"`
	Price    decimal.Decimal `json:"price"`
	Active   *bool           `json:"active,omitempty"`
}

type ProductActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ProductFilter struct {
	Category string
	Active   *bool
	Search   string
}
