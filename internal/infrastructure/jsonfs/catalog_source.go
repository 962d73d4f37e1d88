package jsonfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/repository"
)

// Archivos del directorio de catálogo.
const (
	ShopsFile              = "shops.json"
	CategoriesFile         = "categories.json"
	LegacyCategoriesFile   = "category_metadata.json"
	AttributesFile         = "attributes.json"
	CategoryAttributesFile = "category_attributes.json"
	ProductsFile           = "products.json"
)

var _ repository.CatalogSource = (*CatalogSource)(nil)

// CatalogSource lee las colecciones normalizadas desde archivos JSON de un directorio.
//
// shops, categories y attributes pueden venir como arreglo o como objeto indexado por id.
// attributes.json, category_attributes.json y products.json son opcionales.
type CatalogSource struct {
	fsys fs.FS
}

// NewCatalogSource construye el adaptador sobre un directorio del disco.
func NewCatalogSource(dir string) *CatalogSource {
	return &CatalogSource{fsys: os.DirFS(dir)}
}

// NewCatalogSourceFS construye el adaptador sobre un fs.FS (embed, fstest).
func NewCatalogSourceFS(fsys fs.FS) *CatalogSource {
	return &CatalogSource{fsys: fsys}
}

// Load lee los archivos; un archivo obligatorio ausente o un JSON inválido devuelve domain.ErrInvalidInput.
func (s *CatalogSource) Load(ctx context.Context) (*catalog.Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := &catalog.Records{
		Shops:              map[string]catalog.ShopRecord{},
		Categories:         map[string]catalog.CategoryRecord{},
		Attributes:         map[string]catalog.AttributeRecord{},
		CategoryAttributes: map[string][]string{},
	}

	shops, err := readKeyed[catalog.ShopRecord](s.fsys, ShopsFile, true, func(r catalog.ShopRecord) string { return r.ID })
	if err != nil {
		return nil, err
	}
	rec.Shops = shops

	catFile := CategoriesFile
	if _, err := fs.Stat(s.fsys, catFile); errors.Is(err, fs.ErrNotExist) {
		catFile = LegacyCategoriesFile
	}
	cats, err := readKeyed[catalog.CategoryRecord](s.fsys, catFile, true, func(r catalog.CategoryRecord) string { return r.ID })
	if err != nil {
		return nil, err
	}
	rec.Categories = cats

	attrs, err := readKeyed[catalog.AttributeRecord](s.fsys, AttributesFile, false, func(r catalog.AttributeRecord) string { return r.ID })
	if err != nil {
		return nil, err
	}
	rec.Attributes = attrs

	if err := readJSON(s.fsys, CategoryAttributesFile, false, &rec.CategoryAttributes); err != nil {
		return nil, err
	}
	if rec.CategoryAttributes == nil {
		rec.CategoryAttributes = map[string][]string{}
	}

	if err := readJSON(s.fsys, ProductsFile, false, &rec.Products); err != nil {
		return nil, err
	}
	return rec, nil
}

// readKeyed decodifica un arreglo o un objeto {id: registro}. En el objeto, un registro sin id toma la clave.
func readKeyed[T any](fsys fs.FS, name string, required bool, idOf func(T) string) (map[string]T, error) {
	var raw json.RawMessage
	if err := readJSON(fsys, name, required, &raw); err != nil {
		return nil, err
	}
	out := map[string]T{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}

	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("jsonfs: %s: %v: %w", name, err, domain.ErrInvalidInput)
		}
		for i, item := range items {
			var it T
			if err := json.Unmarshal(normalizeID(item, ""), &it); err != nil {
				return nil, fmt.Errorf("jsonfs: %s[%d]: %v: %w", name, i, err, domain.ErrInvalidInput)
			}
			id := idOf(it)
			if _, dup := out[id]; dup {
				return nil, fmt.Errorf("jsonfs: %s: id %q duplicado: %w", name, id, domain.ErrInvalidInput)
			}
			out[id] = it
		}
		return out, nil
	}

	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("jsonfs: %s: %v: %w", name, err, domain.ErrInvalidInput)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var it T
		if err := json.Unmarshal(normalizeID(byKey[k], k), &it); err != nil {
			return nil, fmt.Errorf("jsonfs: %s[%s]: %v: %w", name, k, err, domain.ErrInvalidInput)
		}
		out[k] = it
	}
	return out, nil
}

// normalizeID deja "id" como string: un id numérico (categorías legadas) pasa a su forma
// decimal y un objeto sin id toma key, si key no está vacío.
func normalizeID(obj json.RawMessage, key string) json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(obj, &m); err != nil {
		return obj
	}
	id, ok := m["id"]
	id = bytes.TrimSpace(id)
	switch {
	case ok && len(id) > 0 && (id[0] == '-' || (id[0] >= '0' && id[0] <= '9')):
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return obj
		}
		m["id"], _ = json.Marshal(n.String())
	case (!ok || bytes.Equal(id, []byte("null"))) && key != "":
		m["id"], _ = json.Marshal(key)
	default:
		return obj
	}
	out, err := json.Marshal(m)
	if err != nil {
		return obj
	}
	return out
}

func readJSON(fsys fs.FS, name string, required bool, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("jsonfs: %s no existe: %w", name, domain.ErrInvalidInput)
		}
		return fmt.Errorf("jsonfs: leer %s: %w", filepath.Base(name), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("jsonfs: %s: %v: %w", name, err, domain.ErrInvalidInput)
	}
	return nil
}
