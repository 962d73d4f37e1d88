package dto

// AttributeResponse definición de un atributo de categoría.
type AttributeResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
}

// CategoryResponse salida de una categoría con su esquema de atributos.
type CategoryResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Image       string              `json:"image,omitempty"`
	Images      []string            `json:"images"`
	ShopID      string              `json:"shop_id,omitempty"`
	Attributes  []AttributeResponse `json:"attributes"`
}

// ShopResponse salida de una tienda con sus categorías.
type ShopResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Image       string             `json:"image,omitempty"`
	FirstPrompt string             `json:"first_prompt"`
	Categories  []CategoryResponse `json:"categories"`
}

// ShopListResponse listado de tiendas.
type ShopListResponse struct {
	Items []ShopResponse `json:"items"`
	Total int            `json:"total"`
}

// CategoriesRequest entrada de POST /categories.
type CategoriesRequest struct {
	ShopID string `json:"shop_id" validate:"required"`
}

// CategoriesResponse saludo inicial de la tienda y sus categorías.
type CategoriesResponse struct {
	FirstPrompt string             `json:"first_prompt"`
	Categories  []CategoryResponse `json:"categories"`
}
