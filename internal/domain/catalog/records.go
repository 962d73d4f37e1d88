package catalog

import "github.com/shopspring/decimal"

// Records son las colecciones normalizadas tal como llegan de la fuente (JSON, PostgreSQL o MongoDB).
// Shops, Categories y Attributes están indexados por ID; Products conserva el orden de carga.
type Records struct {
	Shops              map[string]ShopRecord
	Categories         map[string]CategoryRecord
	Attributes         map[string]AttributeRecord
	CategoryAttributes map[string][]string // category_id -> attribute_ids en orden
	Products           []ProductRecord
}

// ShopRecord fila normalizada de tienda.
type ShopRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	FirstPrompt string   `json:"first_prompt"`
	CategoryIDs []string `json:"category_ids"`
}

// CategoryRecord fila normalizada de categoría.
// AttributeIDs se usa solo si CategoryAttributes no trae entrada para la categoría.
type CategoryRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Images       []string `json:"images"`
	ShopID       string   `json:"shop_id"`
	AttributeIDs []string `json:"attribute_ids"`
}

// AttributeRecord fila normalizada de atributo.
type AttributeRecord struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Values []string `json:"values"`
}

// ReviewRecord sub-objeto de reseña de un producto.
type ReviewRecord struct {
	Rating  float64 `json:"rating"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ProductRecord fila normalizada de producto.
// Review es nil cuando la fuente no lo trae.
type ProductRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"category_id"`
	ShopID      string          `json:"shop_id"`
	Review      *ReviewRecord   `json:"review"`
	Attributes  map[string]any  `json:"attributes"`
	Metadata    map[string]any  `json:"metadata"`
}
