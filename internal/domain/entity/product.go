package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo.
// Attributes guarda los valores sin tipo (tal como llegan de la fuente); se interpretan
// contra la definición de atributos de la categoría al momento de consultar.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	CategoryID  string
	ShopID      string
	Review      Review
	Attributes  map[string]any
	Metadata    map[string]any
}

// Review resumen agregado de calificaciones (no se modelan reseñas individuales).
type Review struct {
	Rating  float64
	Count   int
	Average float64
}
