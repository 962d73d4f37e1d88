package catalog

import (
	"fmt"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// Engine responde consultas contra un Snapshot inmutable. Es seguro para uso concurrente.
type Engine struct {
	snap *Snapshot
}

// NewEngine construye el motor de consultas sobre el snapshot cargado al arranque.
func NewEngine(snap *Snapshot) *Engine {
	return &Engine{snap: snap}
}

// Snapshot devuelve el snapshot consultado.
func (e *Engine) Snapshot() *Snapshot { return e.snap }

// FindShop busca una tienda por ID.
func (e *Engine) FindShop(id string) (entity.Shop, error) {
	s, ok := e.snap.shops[id]
	if !ok {
		return entity.Shop{}, fmt.Errorf("tienda %q: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

// FindCategory busca una categoría por ID.
func (e *Engine) FindCategory(id string) (entity.Category, error) {
	c, ok := e.snap.categories[id]
	if !ok {
		return entity.Category{}, fmt.Errorf("categoría %q: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// FindProduct devuelve el primer producto con ese ID (los IDs son únicos por construcción).
func (e *Engine) FindProduct(id string) (entity.Product, error) {
	for _, p := range e.snap.products {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, fmt.Errorf("producto %q: %w", id, domain.ErrNotFound)
}

// ListShops devuelve todas las tiendas en orden de ID.
func (e *Engine) ListShops() []entity.Shop {
	out := make([]entity.Shop, 0, len(e.snap.shopOrder))
	for _, id := range e.snap.shopOrder {
		out = append(out, e.snap.shops[id])
	}
	return out
}

// CategoriesOfShop devuelve las categorías resueltas de una tienda.
func (e *Engine) CategoriesOfShop(shopID string) ([]entity.Category, error) {
	s, err := e.FindShop(shopID)
	if err != nil {
		return nil, err
	}
	return s.Categories, nil
}

// QueryProducts devuelve los productos de la categoría que cumplen todos los filtros.
//
// Cada filtro exige que el producto tenga el atributo y que su forma canónica (interpretada
// según la definición de la categoría) sea exactamente igual al valor pedido. Un atributo ausente
// nunca cumple. Sin filtros se devuelven todos los productos de la categoría. Una categoría
// inexistente da un resultado vacío: validar su existencia es responsabilidad del llamador.
// Se conserva el orden del snapshot.
func (e *Engine) QueryProducts(categoryID string, filters []Filter) []entity.Product {
	var defs map[string]*entity.Attribute
	if c, ok := e.snap.categories[categoryID]; ok && len(filters) > 0 {
		defs = make(map[string]*entity.Attribute, len(c.Attributes))
		for i := range c.Attributes {
			defs[c.Attributes[i].ID] = &c.Attributes[i]
		}
	}

	out := make([]entity.Product, 0)
	for _, p := range e.snap.products {
		if p.CategoryID != categoryID {
			continue
		}
		if matchesAll(p, filters, defs) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAll(p entity.Product, filters []Filter, defs map[string]*entity.Attribute) bool {
	for _, f := range filters {
		raw, ok := p.Attributes[f.AttributeID]
		if !ok {
			return false
		}
		v, ok := ResolveAttribute(defs[f.AttributeID], raw)
		if !ok || v.String() != f.Value {
			return false
		}
	}
	return true
}
