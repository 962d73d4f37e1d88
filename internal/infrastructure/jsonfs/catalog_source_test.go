package jsonfs_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/jsonfs"
)

func TestLoad_DirectorioCompleto(t *testing.T) {
	rec, err := jsonfs.NewCatalogSource("testdata/catalog").Load(context.Background())
	require.NoError(t, err)

	require.Contains(t, rec.Shops, "s1")
	assert.Equal(t, []string{"c1"}, rec.Shops["s1"].CategoryIDs)
	assert.Equal(t, "Hi! What are you shopping for today?", rec.Shops["s1"].FirstPrompt)

	require.Contains(t, rec.Categories, "c1")
	assert.Equal(t, "c1", rec.Categories["c1"].ID, "en objetos indexados el id se toma de la clave")
	assert.Len(t, rec.Categories["c1"].Images, 2)

	assert.Equal(t, []string{"red", "blue"}, rec.Attributes["color"].Values)
	assert.Equal(t, []string{"color"}, rec.CategoryAttributes["c1"])

	require.Len(t, rec.Products, 2)
	assert.True(t, decimal.RequireFromString("19.99").Equal(rec.Products[0].Price))
	assert.True(t, decimal.RequireFromString("22.5").Equal(rec.Products[1].Price), "precio como string")
	require.NotNil(t, rec.Products[0].Review)
	assert.Nil(t, rec.Products[1].Review)
}

// El directorio de prueba produce el escenario de extremo a extremo: filtrar color=red
// devuelve exactamente el primer producto.
func TestLoad_EscenarioDeExtremoAExtremo(t *testing.T) {
	rec, err := jsonfs.NewCatalogSource("testdata/catalog").Load(context.Background())
	require.NoError(t, err)

	snap, err := catalog.Build(*rec)
	require.NoError(t, err)
	engine := catalog.NewEngine(snap)

	got := engine.QueryProducts("c1", []catalog.Filter{{AttributeID: "color", Value: "red"}})
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestLoad_ArchivosOpcionalesAusentes(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json":      {Data: []byte(`{"s1":{"name":"Shop"}}`)},
		"categories.json": {Data: []byte(`[{"id":"c1","name":"Tshirt","shop_id":"s1"}]`)},
	}
	rec, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, rec.Attributes)
	assert.Empty(t, rec.CategoryAttributes)
	assert.Empty(t, rec.Products)
	assert.Equal(t, "s1", rec.Shops["s1"].ID)
}

func TestLoad_ArchivoLegadoDeCategorias(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json":             {Data: []byte(`[{"id":"s1","name":"Shop","first_prompt":"Hola"}]`)},
		"category_metadata.json": {Data: []byte(`{"c9":{"id":"c9","name":"Sarees","images":[],"shop_id":"s1"}}`)},
	}
	rec, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, rec.Categories, "c9")
}

func TestLoad_ArchivoLegadoConIDsNumericos(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json":             {Data: []byte(`{"s1":{"id":"s1","name":"Shop","first_prompt":"Hola"}}`)},
		"category_metadata.json": {Data: []byte(`{
			"1":{"id":1,"name":"Sarees","images":["a.png"],"shop_id":"s1"},
			"2":{"id":2,"name":"Tshirt","images":[],"shop_id":"s1"}
		}`)},
	}
	rec, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	require.NoError(t, err)

	require.Contains(t, rec.Categories, "1")
	assert.Equal(t, "1", rec.Categories["1"].ID)
	assert.Equal(t, "Sarees", rec.Categories["1"].Name)
	assert.Equal(t, "2", rec.Categories["2"].ID)

	snap, err := catalog.Build(*rec)
	require.NoError(t, err)
	cats, err := catalog.NewEngine(snap).CategoriesOfShop("s1")
	require.NoError(t, err)
	assert.Len(t, cats, 2, "las categorías legadas se enlazan por shop_id")
}

func TestLoad_IDNumericoEnArreglo(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json":      {Data: []byte(`[{"id":"s1","name":"Shop"}]`)},
		"categories.json": {Data: []byte(`[{"id":7,"name":"Rugs","shop_id":"s1"}]`)},
	}
	rec, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", rec.Categories["7"].ID)
}

func TestLoad_ObligatorioAusente(t *testing.T) {
	fsys := fstest.MapFS{
		"categories.json": {Data: []byte(`[]`)},
	}
	_, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_JSONInvalido(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json":      {Data: []byte(`[{"id":"s1","name":"Shop"}]`)},
		"categories.json": {Data: []byte(`[]`)},
		"products.json":   {Data: []byte(`{"no": "es un arreglo"}`)},
	}
	_, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_IDDuplicado(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json":      {Data: []byte(`[{"id":"s1","name":"A"},{"id":"s1","name":"B"}]`)},
		"categories.json": {Data: []byte(`[]`)},
	}
	_, err := jsonfs.NewCatalogSourceFS(fsys).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := jsonfs.NewCatalogSource("testdata/catalog").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
