package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/repository"
)

var _ repository.CatalogSource = (*CatalogSource)(nil)

// CatalogSource lee las tablas normalizadas del catálogo desde PostgreSQL.
//
// Tablas: shops, shop_categories, categories, attributes, category_attributes, products.
// Las tablas de unión (shop_categories, category_attributes) son opcionales: si no existen
// se usan las relaciones por shop_id.
type CatalogSource struct {
	q Querier
}

// NewCatalogSource construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogSource(q Querier) *CatalogSource {
	return &CatalogSource{q: q}
}

// Load lee todas las tablas y devuelve los registros sin validar.
func (s *CatalogSource) Load(ctx context.Context) (*catalog.Records, error) {
	rec := &catalog.Records{
		Shops:              map[string]catalog.ShopRecord{},
		Categories:         map[string]catalog.CategoryRecord{},
		Attributes:         map[string]catalog.AttributeRecord{},
		CategoryAttributes: map[string][]string{},
	}
	if err := s.loadShops(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.loadCategories(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.loadAttributes(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.loadProducts(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *CatalogSource) loadShops(ctx context.Context, rec *catalog.Records) error {
	rows, err := s.q.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(image, ''), COALESCE(first_prompt, '')
		FROM shops ORDER BY id`)
	if err != nil {
		return fmt.Errorf("list shops: %w", err)
	}
	shops, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.ShopRecord, error) {
		var r catalog.ShopRecord
		err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Image, &r.FirstPrompt)
		return r, err
	})
	if err != nil {
		return fmt.Errorf("scan shops: %w", err)
	}

	links, err := s.pairs(ctx, `SELECT shop_id, category_id FROM shop_categories ORDER BY shop_id, position`)
	if err != nil {
		return fmt.Errorf("list shop_categories: %w", err)
	}
	for _, r := range shops {
		r.CategoryIDs = links[r.ID]
		rec.Shops[r.ID] = r
	}
	return nil
}

func (s *CatalogSource) loadCategories(ctx context.Context, rec *catalog.Records) error {
	rows, err := s.q.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(image, ''), COALESCE(images, '{}'), COALESCE(shop_id, '')
		FROM categories ORDER BY id`)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	cats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.CategoryRecord, error) {
		var r catalog.CategoryRecord
		err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Image, &r.Images, &r.ShopID)
		return r, err
	})
	if err != nil {
		return fmt.Errorf("scan categories: %w", err)
	}
	for _, r := range cats {
		rec.Categories[r.ID] = r
	}
	return nil
}

func (s *CatalogSource) loadAttributes(ctx context.Context, rec *catalog.Records) error {
	rows, err := s.q.Query(ctx, `
		SELECT id, name, kind, COALESCE(allowed_values, '{}')
		FROM attributes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("list attributes: %w", err)
	}
	attrs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.AttributeRecord, error) {
		var r catalog.AttributeRecord
		err := row.Scan(&r.ID, &r.Name, &r.Kind, &r.Values)
		return r, err
	})
	if err != nil {
		return fmt.Errorf("scan attributes: %w", err)
	}
	for _, r := range attrs {
		rec.Attributes[r.ID] = r
	}

	links, err := s.pairs(ctx, `SELECT category_id, attribute_id FROM category_attributes ORDER BY category_id, position`)
	if err != nil {
		return fmt.Errorf("list category_attributes: %w", err)
	}
	for k, v := range links {
		rec.CategoryAttributes[k] = v
	}
	return nil
}

func (s *CatalogSource) loadProducts(ctx context.Context, rec *catalog.Records) error {
	rows, err := s.q.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(image, ''), category_id,
		       COALESCE(shop_id, ''), review, attributes, metadata
		FROM products ORDER BY position, id`)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.ProductRecord, error) {
		var (
			r                       catalog.ProductRecord
			review, attrs, metadata []byte
		)
		if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Price, &r.Image, &r.CategoryID,
			&r.ShopID, &review, &attrs, &metadata); err != nil {
			return r, err
		}
		if len(review) > 0 && string(review) != "null" {
			r.Review = &catalog.ReviewRecord{}
			if err := json.Unmarshal(review, r.Review); err != nil {
				return r, fmt.Errorf("product %s review: %w", r.ID, err)
			}
		}
		var err error
		if r.Attributes, err = decodeJSONMap(attrs); err != nil {
			return r, fmt.Errorf("product %s attributes: %w", r.ID, err)
		}
		if r.Metadata, err = decodeJSONMap(metadata); err != nil {
			return r, fmt.Errorf("product %s metadata: %w", r.ID, err)
		}
		return r, nil
	})
	if err != nil {
		return fmt.Errorf("scan products: %w", err)
	}
	rec.Products = products
	return nil
}

// pairs lee una tabla de unión (clave, valor) ordenada; una tabla inexistente devuelve un mapa vacío.
func (s *CatalogSource) pairs(ctx context.Context, sql string) (map[string][]string, error) {
	out := map[string][]string{}
	rows, err := s.q.Query(ctx, sql)
	if err != nil {
		if isUndefinedTable(err) {
			return out, nil
		}
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = append(out[k], v)
	}
	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return map[string][]string{}, nil
		}
		return nil, err
	}
	return out, nil
}
