package entity

// Category representa una categoría de productos de una tienda.
// Attributes es la lista ordenada de atributos aplicables a sus productos.
type Category struct {
	ID          string
	Name        string
	Description string
	Image       string
	Images      []string
	ShopID      string // vacío si la categoría no declara tienda
	Attributes  []Attribute
}

// Attribute busca la definición de un atributo de la categoría por ID.
func (c Category) Attribute(id string) (Attribute, bool) {
	for _, a := range c.Attributes {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}
