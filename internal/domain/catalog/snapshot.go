package catalog

import "github.com/jhoicas/ShopAssistant-api/internal/domain/entity"

// Snapshot catálogo desnormalizado, construido una sola vez con Build y de solo lectura
// durante toda la vida del proceso. Las lecturas concurrentes no requieren sincronización;
// ningún llamador debe modificar los slices o mapas de las entidades devueltas.
type Snapshot struct {
	shops      map[string]entity.Shop
	shopOrder  []string
	categories map[string]entity.Category
	products   []entity.Product
}

// ShopCount número de tiendas.
func (s *Snapshot) ShopCount() int { return len(s.shops) }

// CategoryCount número de categorías.
func (s *Snapshot) CategoryCount() int { return len(s.categories) }

// ProductCount número de productos.
func (s *Snapshot) ProductCount() int { return len(s.products) }

// ShopIDs IDs de tiendas en orden ascendente.
func (s *Snapshot) ShopIDs() []string {
	return append([]string(nil), s.shopOrder...)
}

// CategoryIDs IDs de categorías en orden ascendente.
func (s *Snapshot) CategoryIDs() []string {
	return sortedKeys(s.categories)
}

// ProductIDs IDs de productos en el orden de carga.
func (s *Snapshot) ProductIDs() []string {
	ids := make([]string, len(s.products))
	for i, p := range s.products {
		ids[i] = p.ID
	}
	return ids
}
