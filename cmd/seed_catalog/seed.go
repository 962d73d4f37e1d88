package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
)

// writeSeed escribe los INSERT idempotentes (ON CONFLICT) en orden estable por id.
func writeSeed(w io.Writer, rec *catalog.Records) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("-- Catálogo del asistente de compras\n")
	bw.WriteString("-- Generado por cmd/seed_catalog desde el directorio JSON\n\n")

	bw.WriteString("-- 1. Tiendas\n")
	for _, id := range sortedKeys(rec.Shops) {
		s := rec.Shops[id]
		fmt.Fprintf(bw, "INSERT INTO shops (id, name, description, image, first_prompt) VALUES (%s, %s, %s, %s, %s)\n",
			quote(s.ID), quote(s.Name), quote(s.Description), quote(s.Image), quote(s.FirstPrompt))
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, image = EXCLUDED.image, first_prompt = EXCLUDED.first_prompt;\n")
	}

	bw.WriteString("\n-- 2. Categorías\n")
	for _, id := range sortedKeys(rec.Categories) {
		c := rec.Categories[id]
		shopID := "NULL"
		if c.ShopID != "" {
			shopID = quote(c.ShopID)
		}
		fmt.Fprintf(bw, "INSERT INTO categories (id, name, description, image, images, shop_id) VALUES (%s, %s, %s, %s, %s, %s)\n",
			quote(c.ID), quote(c.Name), quote(c.Description), quote(c.Image), textArray(c.Images), shopID)
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, image = EXCLUDED.image, images = EXCLUDED.images, shop_id = EXCLUDED.shop_id;\n")
	}

	bw.WriteString("\n-- 3. Tienda → categorías (orden declarado)\n")
	for _, id := range sortedKeys(rec.Shops) {
		for pos, catID := range rec.Shops[id].CategoryIDs {
			if _, ok := rec.Categories[catID]; !ok {
				continue
			}
			fmt.Fprintf(bw, "INSERT INTO shop_categories (shop_id, category_id, position) VALUES (%s, %s, %d)\n",
				quote(id), quote(catID), pos)
			bw.WriteString("ON CONFLICT (shop_id, category_id) DO UPDATE SET position = EXCLUDED.position;\n")
		}
	}

	bw.WriteString("\n-- 4. Atributos\n")
	for _, id := range sortedKeys(rec.Attributes) {
		a := rec.Attributes[id]
		fmt.Fprintf(bw, "INSERT INTO attributes (id, name, kind, allowed_values) VALUES (%s, %s, %s, %s)\n",
			quote(a.ID), quote(a.Name), quote(a.Kind), textArray(a.Values))
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, kind = EXCLUDED.kind, allowed_values = EXCLUDED.allowed_values;\n")
	}

	bw.WriteString("\n-- 5. Categoría → atributos (orden del esquema)\n")
	for _, catID := range sortedKeys(rec.Categories) {
		attrIDs, ok := rec.CategoryAttributes[catID]
		if !ok {
			attrIDs = rec.Categories[catID].AttributeIDs
		}
		for pos, attrID := range attrIDs {
			if _, ok := rec.Attributes[attrID]; !ok {
				continue
			}
			fmt.Fprintf(bw, "INSERT INTO category_attributes (category_id, attribute_id, position) VALUES (%s, %s, %d)\n",
				quote(catID), quote(attrID), pos)
			bw.WriteString("ON CONFLICT (category_id, attribute_id) DO UPDATE SET position = EXCLUDED.position;\n")
		}
	}

	bw.WriteString("\n-- 6. Productos (position conserva el orden del archivo)\n")
	for pos, p := range rec.Products {
		attrs, err := jsonb(p.Attributes, "{}")
		if err != nil {
			return fmt.Errorf("producto %s: %w", p.ID, err)
		}
		meta, err := jsonb(p.Metadata, "NULL")
		if err != nil {
			return fmt.Errorf("producto %s: %w", p.ID, err)
		}
		review := "NULL"
		if p.Review != nil {
			if review, err = jsonb(p.Review, "NULL"); err != nil {
				return fmt.Errorf("producto %s: %w", p.ID, err)
			}
		}
		shopID := "NULL"
		if p.ShopID != "" {
			shopID = quote(p.ShopID)
		}
		fmt.Fprintf(bw, "INSERT INTO products (id, name, description, price, image, category_id, shop_id, position, review, attributes, metadata)\n")
		fmt.Fprintf(bw, "VALUES (%s, %s, %s, %s, %s, %s, %s, %d, %s, %s, %s)\n",
			quote(p.ID), quote(p.Name), quote(p.Description), p.Price.StringFixed(2), quote(p.Image),
			quote(p.CategoryID), shopID, pos, review, attrs, meta)
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price, image = EXCLUDED.image, category_id = EXCLUDED.category_id, shop_id = EXCLUDED.shop_id, position = EXCLUDED.position, review = EXCLUDED.review, attributes = EXCLUDED.attributes, metadata = EXCLUDED.metadata;\n")
	}

	return bw.Flush()
}

func quote(s string) string {
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// textArray literal TEXT[]: ARRAY['a','b']::TEXT[] o '{}'.
func textArray(values []string) string {
	if len(values) == 0 {
		return "'{}'"
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::TEXT[]"
}

// jsonb serializa v como literal JSONB; nil o mapa vacío devuelve empty.
func jsonb(v any, empty string) (string, error) {
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		if empty == "NULL" {
			return empty, nil
		}
		return "'" + empty + "'::JSONB", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return quote(string(raw)) + "::JSONB", nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
