package dto

import (
	"github.com/shopspring/decimal"
)

// ReviewResponse resumen de reseñas de un producto.
type ReviewResponse struct {
	Rating  float64 `json:"rating"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	CategoryID  string          `json:"category_id"`
	ShopID      string          `json:"shop_id,omitempty"`
	Review      ReviewResponse  `json:"review"`
	Attributes  map[string]any  `json:"attributes"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// FilterRequest un filtro atributo = valor (forma canónica).
type FilterRequest struct {
	AttributeID string `json:"attribute_id" validate:"required"`
	Value       string `json:"value"`
}

// ProductQueryRequest entrada de la búsqueda de productos por categoría.
type ProductQueryRequest struct {
	CategoryID string          `json:"category_id" validate:"required"`
	Filters    []FilterRequest `json:"filters" validate:"omitempty,dive"`
}

// ProductListResponse resultado de una búsqueda.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
