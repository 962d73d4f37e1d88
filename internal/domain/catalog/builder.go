package catalog

import (
	"fmt"
	"sort"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// Build materializa el snapshot desnormalizado a partir de las colecciones normalizadas.
//
// Las referencias colgantes (atributos o categorías inexistentes) se descartan sin error:
// significan "no aplica", no un problema de integridad. Solo falla por registros sin campos
// obligatorios (domain.ErrInvalidInput). Los productos no se validan contra el esquema de su
// categoría; eso ocurre al consultar.
func Build(rec Records) (*Snapshot, error) {
	attributes := make(map[string]entity.Attribute, len(rec.Attributes))
	for key, a := range rec.Attributes {
		if err := checkKey("atributo", key, a.ID, a.Name); err != nil {
			return nil, err
		}
		kind := entity.AttributeKind(a.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("atributo %q: tipo %q desconocido: %w", a.ID, a.Kind, domain.ErrInvalidInput)
		}
		attributes[a.ID] = entity.Attribute{
			ID:     a.ID,
			Name:   a.Name,
			Kind:   kind,
			Values: cloneStrings(a.Values),
		}
	}

	categoryIDs := sortedKeys(rec.Categories)
	categories := make(map[string]entity.Category, len(rec.Categories))
	for _, key := range categoryIDs {
		c := rec.Categories[key]
		if err := checkKey("categoría", key, c.ID, c.Name); err != nil {
			return nil, err
		}
		attrIDs, ok := rec.CategoryAttributes[c.ID]
		if !ok {
			attrIDs = c.AttributeIDs
		}
		attrs := make([]entity.Attribute, 0, len(attrIDs))
		for _, id := range attrIDs {
			if a, found := attributes[id]; found {
				attrs = append(attrs, a)
			}
		}
		categories[c.ID] = entity.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Image:       c.Image,
			Images:      cloneStrings(c.Images),
			ShopID:      c.ShopID,
			Attributes:  attrs,
		}
	}

	shopIDs := sortedKeys(rec.Shops)
	shops := make(map[string]entity.Shop, len(rec.Shops))
	for _, key := range shopIDs {
		s := rec.Shops[key]
		if err := checkKey("tienda", key, s.ID, s.Name); err != nil {
			return nil, err
		}
		var cats []entity.Category
		if len(s.CategoryIDs) > 0 {
			cats = make([]entity.Category, 0, len(s.CategoryIDs))
			for _, id := range s.CategoryIDs {
				if c, found := categories[id]; found {
					cats = append(cats, c)
				}
			}
		} else {
			// Sin lista declarada: categorías que apuntan a la tienda, en orden de ID.
			for _, id := range categoryIDs {
				if c := categories[id]; c.ShopID == s.ID {
					cats = append(cats, c)
				}
			}
		}
		shops[s.ID] = entity.Shop{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Image:       s.Image,
			FirstPrompt: s.FirstPrompt,
			Categories:  cats,
		}
	}

	products := make([]entity.Product, 0, len(rec.Products))
	for i, p := range rec.Products {
		if p.ID == "" || p.Name == "" || p.CategoryID == "" {
			return nil, fmt.Errorf("producto #%d (%q): id, name y category_id son obligatorios: %w", i, p.ID, domain.ErrInvalidInput)
		}
		var review entity.Review
		if p.Review != nil {
			review = entity.Review{Rating: p.Review.Rating, Count: p.Review.Count, Average: p.Review.Average}
		}
		products = append(products, entity.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			CategoryID:  p.CategoryID,
			ShopID:      p.ShopID,
			Review:      review,
			Attributes:  cloneMap(p.Attributes),
			Metadata:    cloneMap(p.Metadata),
		})
	}

	return &Snapshot{
		shops:      shops,
		shopOrder:  shopIDs,
		categories: categories,
		products:   products,
	}, nil
}

// checkKey valida campos obligatorios y que la clave del índice coincida con el ID del registro.
func checkKey(kind, key, id, name string) error {
	if id == "" || name == "" {
		return fmt.Errorf("%s %q: id y name son obligatorios: %w", kind, key, domain.ErrInvalidInput)
	}
	if key != id {
		return fmt.Errorf("%s: clave %q no coincide con id %q: %w", kind, key, id, domain.ErrInvalidInput)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
