package catalog_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

// scenarioRecords catálogo mínimo: tienda s1 con categoría c1; c1 tiene el atributo
// color (red/blue) y dos productos, uno rojo y uno azul.
func scenarioRecords() catalog.Records {
	return catalog.Records{
		Shops: map[string]catalog.ShopRecord{
			"s1": {ID: "s1", Name: "Shop 1", FirstPrompt: "Hola", CategoryIDs: []string{"c1"}},
		},
		Categories: map[string]catalog.CategoryRecord{
			"c1": {ID: "c1", Name: "Tshirt"},
		},
		Attributes: map[string]catalog.AttributeRecord{
			"color": {ID: "color", Name: "Color", Kind: "single_select", Values: []string{"red", "blue"}},
		},
		CategoryAttributes: map[string][]string{"c1": {"color"}},
		Products: []catalog.ProductRecord{
			{ID: "p1", Name: "Red tee", CategoryID: "c1", ShopID: "s1", Price: decimal.NewFromInt(20),
				Attributes: map[string]any{"color": "red"}},
			{ID: "p2", Name: "Blue tee", CategoryID: "c1", ShopID: "s1", Price: decimal.NewFromInt(22),
				Attributes: map[string]any{"color": "blue"}},
		},
	}
}

// richRecords catálogo con referencias colgantes, varios tipos de atributo y varias categorías.
func richRecords() catalog.Records {
	return catalog.Records{
		Shops: map[string]catalog.ShopRecord{
			"s1": {ID: "s1", Name: "Moda", CategoryIDs: []string{"c2", "ghost", "c1"}},
			"s2": {ID: "s2", Name: "Hogar"}, // sin lista: se une por shop_id
		},
		Categories: map[string]catalog.CategoryRecord{
			"c1": {ID: "c1", Name: "Tshirt", ShopID: "s1"},
			"c2": {ID: "c2", Name: "Sarees", ShopID: "s1", AttributeIDs: []string{"fabric", "missing"}},
			"c3": {ID: "c3", Name: "Lamps", ShopID: "s2"},
			"c4": {ID: "c4", Name: "Rugs", ShopID: "s2"},
		},
		Attributes: map[string]catalog.AttributeRecord{
			"color":  {ID: "color", Name: "Color", Kind: "single_select", Values: []string{"red", "blue"}},
			"size":   {ID: "size", Name: "Size", Kind: "multi_select", Values: []string{"S", "M", "L"}},
			"weight": {ID: "weight", Name: "Weight", Kind: "number"},
			"fabric": {ID: "fabric", Name: "Fabric", Kind: "text"},
		},
		CategoryAttributes: map[string][]string{
			"c1": {"color", "nope", "size", "weight"},
		},
		Products: []catalog.ProductRecord{
			{ID: "p1", Name: "A", CategoryID: "c1", Attributes: map[string]any{"color": "red", "size": []any{"S", "M"}, "weight": 120.0}},
			{ID: "p2", Name: "B", CategoryID: "c1", Attributes: map[string]any{"color": "red", "weight": "120"}},
			{ID: "p3", Name: "C", CategoryID: "c1", Attributes: map[string]any{"color": nil}},
			{ID: "p4", Name: "D", CategoryID: "c2", Attributes: map[string]any{"fabric": "silk"}},
			{ID: "p5", Name: "E", CategoryID: "c1", Attributes: map[string]any{"color": "blue", "size": "L"},
				Review: &catalog.ReviewRecord{Rating: 4.5, Count: 12, Average: 4.4}},
		},
	}
}

func mustEngine(t *testing.T, rec catalog.Records) *catalog.Engine {
	t.Helper()
	snap, err := catalog.Build(rec)
	require.NoError(t, err, "Build no debe fallar con registros válidos")
	return catalog.NewEngine(snap)
}

func productIDs(ps []entity.Product) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Build
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_DescartaAtributosColgantes(t *testing.T) {
	eng := mustEngine(t, richRecords())

	c1, err := eng.FindCategory("c1")
	require.NoError(t, err)
	require.Len(t, c1.Attributes, 3, "el atributo 'nope' no existe y debe omitirse")
	assert.Equal(t, "color", c1.Attributes[0].ID)
	assert.Equal(t, "size", c1.Attributes[1].ID)
	assert.Equal(t, "weight", c1.Attributes[2].ID)

	c2, err := eng.FindCategory("c2")
	require.NoError(t, err)
	require.Len(t, c2.Attributes, 1, "sin mapeo se usa attribute_ids del registro y se omite 'missing'")
	assert.Equal(t, entity.AttributeKindText, c2.Attributes[0].Kind)
}

func TestBuild_DescartaCategoriasColgantesYRespetaOrden(t *testing.T) {
	eng := mustEngine(t, richRecords())

	s1, err := eng.FindShop("s1")
	require.NoError(t, err)
	require.Len(t, s1.Categories, 2)
	assert.Equal(t, "c2", s1.Categories[0].ID, "se respeta el orden declarado")
	assert.Equal(t, "c1", s1.Categories[1].ID)
	require.Len(t, s1.Categories[1].Attributes, 3, "la categoría embebida trae sus atributos")
}

func TestBuild_TiendaSinListaUsaShopID(t *testing.T) {
	eng := mustEngine(t, richRecords())

	cats, err := eng.CategoriesOfShop("s2")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "c3", cats[0].ID)
	assert.Equal(t, "c4", cats[1].ID)
}

func TestBuild_ParseaReview(t *testing.T) {
	eng := mustEngine(t, richRecords())

	p, err := eng.FindProduct("p5")
	require.NoError(t, err)
	assert.Equal(t, entity.Review{Rating: 4.5, Count: 12, Average: 4.4}, p.Review)

	p1, err := eng.FindProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, entity.Review{}, p1.Review, "sin review se usa el valor cero")
}

func TestBuild_CamposObligatorios(t *testing.T) {
	cases := map[string]func(r *catalog.Records){
		"tienda sin nombre": func(r *catalog.Records) {
			r.Shops["s1"] = catalog.ShopRecord{ID: "s1"}
		},
		"categoría sin id": func(r *catalog.Records) {
			r.Categories["c9"] = catalog.CategoryRecord{Name: "x"}
		},
		"clave distinta al id": func(r *catalog.Records) {
			r.Categories["c9"] = catalog.CategoryRecord{ID: "c8", Name: "x"}
		},
		"atributo con tipo desconocido": func(r *catalog.Records) {
			r.Attributes["bad"] = catalog.AttributeRecord{ID: "bad", Name: "Bad", Kind: "date"}
		},
		"producto sin categoría": func(r *catalog.Records) {
			r.Products = append(r.Products, catalog.ProductRecord{ID: "p9", Name: "x"})
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec := scenarioRecords()
			mutate(&rec)
			_, err := catalog.Build(rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "debe ser MalformedInput: %v", err)
		})
	}
}

func TestBuild_Idempotente(t *testing.T) {
	rec := richRecords()
	a, err := catalog.Build(rec)
	require.NoError(t, err)
	b, err := catalog.Build(rec)
	require.NoError(t, err)

	assert.Equal(t, a.ShopIDs(), b.ShopIDs())
	assert.Equal(t, a.CategoryIDs(), b.CategoryIDs())
	assert.Equal(t, a.ProductIDs(), b.ProductIDs())
	assert.Equal(t, catalog.NewEngine(a).ListShops(), catalog.NewEngine(b).ListShops(),
		"las relaciones reconstruidas deben ser idénticas")
}

func TestBuild_SnapshotNoCompartePunterosConRegistros(t *testing.T) {
	rec := scenarioRecords()
	eng := mustEngine(t, rec)

	rec.Products[0].Attributes["color"] = "green"

	got := eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "color", Value: "red"}})
	assert.Equal(t, []string{"p1"}, productIDs(got), "modificar la entrada no altera el snapshot")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookups
// ──────────────────────────────────────────────────────────────────────────────

func TestFind_NoEncontrado(t *testing.T) {
	eng := mustEngine(t, scenarioRecords())

	_, err := eng.FindShop("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = eng.FindCategory("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = eng.FindProduct("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = eng.CategoriesOfShop("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListShops_OrdenPorID(t *testing.T) {
	eng := mustEngine(t, richRecords())
	shops := eng.ListShops()
	require.Len(t, shops, 2)
	assert.Equal(t, "s1", shops[0].ID)
	assert.Equal(t, "s2", shops[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// QueryProducts
// ──────────────────────────────────────────────────────────────────────────────

// Escenario extremo a extremo: filtrar c1 por color=red devuelve exactamente el primer producto.
func TestQueryProducts_EscenarioColor(t *testing.T) {
	eng := mustEngine(t, scenarioRecords())

	got := eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "color", Value: "red"}})
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestQueryProducts_SinFiltrosDevuelveCategoriaEnOrden(t *testing.T) {
	eng := mustEngine(t, richRecords())

	got := eng.QueryProducts("c1", nil)
	assert.Equal(t, []string{"p1", "p2", "p3", "p5"}, productIDs(got))
}

func TestQueryProducts_FiltrosConjuntivos(t *testing.T) {
	eng := mustEngine(t, richRecords())

	got := eng.QueryProducts("c1", []catalog.Filter{
		{AttributeID: "color", Value: "red"},
		{AttributeID: "weight", Value: "120"},
	})
	assert.Equal(t, []string{"p1", "p2"}, productIDs(got),
		"weight es number: 120.0 y \"120\" tienen la misma forma canónica")

	got = eng.QueryProducts("c1", []catalog.Filter{
		{AttributeID: "color", Value: "red"},
		{AttributeID: "size", Value: "S,M"},
	})
	assert.Equal(t, []string{"p1"}, productIDs(got))
}

func TestQueryProducts_AusenciaNuncaCumple(t *testing.T) {
	eng := mustEngine(t, richRecords())

	// p3 tiene color=nil y p2 no tiene size: ambos quedan fuera aunque nada más coincida.
	got := eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "size", Value: ""}})
	assert.Empty(t, got)

	got = eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "color", Value: ""}})
	assert.Empty(t, got)
}

func TestQueryProducts_IgualdadExacta(t *testing.T) {
	eng := mustEngine(t, richRecords())

	assert.Empty(t, eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "color", Value: "Red"}}))
	assert.Empty(t, eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "color", Value: "re"}}))
	// multi_select no usa pertenencia: "S" no coincide con ["S","M"].
	assert.Empty(t, eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "size", Value: "S"}}))
	assert.Equal(t, []string{"p5"}, productIDs(
		eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "size", Value: "L"}})))
}

func TestQueryProducts_NumeroSeComparaEnFormaCanonica(t *testing.T) {
	eng := mustEngine(t, richRecords())

	// p1 guarda 120.0 (número) y p2 "120" (texto numérico): ambos se canonizan a "120".
	assert.Equal(t, []string{"p1", "p2"}, productIDs(
		eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "weight", Value: "120"}})))
	// El valor del filtro no se interpreta: "120.0" no es la forma canónica.
	assert.Empty(t, eng.QueryProducts("c1", []catalog.Filter{{AttributeID: "weight", Value: "120.0"}}))
}

func TestQueryProducts_CategoriaDesconocidaVacio(t *testing.T) {
	eng := mustEngine(t, richRecords())

	got := eng.QueryProducts("ghost", []catalog.Filter{{AttributeID: "color", Value: "red"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// Propiedad: todo producto devuelto pertenece a la categoría y cumple cada filtro.
func TestQueryProducts_PropiedadResultados(t *testing.T) {
	eng := mustEngine(t, richRecords())
	filterSets := [][]catalog.Filter{
		nil,
		{{AttributeID: "color", Value: "red"}},
		{{AttributeID: "color", Value: "blue"}},
		{{AttributeID: "fabric", Value: "silk"}},
		{{AttributeID: "color", Value: "red"}, {AttributeID: "weight", Value: "120"}},
	}
	for _, cat := range []string{"c1", "c2", "c3"} {
		for _, fs := range filterSets {
			for _, p := range eng.QueryProducts(cat, fs) {
				assert.Equal(t, cat, p.CategoryID)
				for _, f := range fs {
					_, present := p.Attributes[f.AttributeID]
					assert.True(t, present, "producto %s sin atributo %s", p.ID, f.AttributeID)
				}
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Valores de atributo
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveAttribute_SegunTipo(t *testing.T) {
	number := &entity.Attribute{ID: "w", Kind: entity.AttributeKindNumber}
	multi := &entity.Attribute{ID: "s", Kind: entity.AttributeKindMultiSelect}

	v, ok := catalog.ResolveAttribute(number, 12.5)
	require.True(t, ok)
	assert.Equal(t, "12.5", v.String())

	_, ok = catalog.ResolveAttribute(number, "doce")
	assert.False(t, ok, "texto no numérico en atributo number equivale a ausente")

	v, ok = catalog.ResolveAttribute(multi, []any{"S", "M"})
	require.True(t, ok)
	assert.Equal(t, []string{"S", "M"}, v.Options)

	_, ok = catalog.ResolveAttribute(multi, []any{"S", 3})
	assert.False(t, ok)

	_, ok = catalog.ResolveAttribute(nil, 3)
	assert.False(t, ok, "sin definición solo se acepta texto")

	v, ok = catalog.ResolveAttribute(nil, "x")
	require.True(t, ok)
	assert.Equal(t, "x", v.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiquetas
// ──────────────────────────────────────────────────────────────────────────────

func TestMatchCategory_Normaliza(t *testing.T) {
	cats := []entity.Category{
		{ID: "c1", Name: "Tshirt"},
		{ID: "c2", Name: "Camisetas Básicas"},
	}

	c, ok := catalog.MatchCategory(cats, "  **T-Shirts** ")
	require.True(t, ok)
	assert.Equal(t, "c1", c.ID)

	c, ok = catalog.MatchCategory(cats, "camisetas basicas")
	require.True(t, ok)
	assert.Equal(t, "c2", c.ID)

	_, ok = catalog.MatchCategory(cats, entity.CategoryNotDetermined)
	assert.False(t, ok)
}
