package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1999.5":  "1.999,50",
		"1000000": "1.000.000",
		"12.345":  "12,35",
		"-1500":   "-1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPrice(decimal.RequireFromString(in)), "precio %s", in)
	}
}

func TestAttributeSummary_OrdenDelEsquemaYExtras(t *testing.T) {
	category := entity.Category{
		ID: "c1",
		Attributes: []entity.Attribute{
			{ID: "size", Name: "Size", Kind: entity.AttributeKindMultiSelect, Values: []string{"S", "M"}},
			{ID: "color", Name: "Color", Kind: entity.AttributeKindSingleSelect, Values: []string{"red"}},
		},
	}
	p := entity.Product{Attributes: map[string]any{
		"color":    "red",
		"size":     []any{"S", "M"},
		"material": "cotton",
	}}

	assert.Equal(t, "Size: S,M · Color: red · material: cotton", attributeSummary(category, p))
	assert.Equal(t, "—", attributeSummary(category, entity.Product{}))
}

func TestGenerateCategoryPDF_GeneraDocumento(t *testing.T) {
	g := NewMarotoCatalogGenerator()
	shop := &entity.Shop{ID: "s1", Name: "Moda", Description: "Ropa casual"}
	category := entity.Category{
		ID: "c1", Name: "Tshirt", Image: "https://img.example.com/c1.png",
		Attributes: []entity.Attribute{
			{ID: "color", Name: "Color", Kind: entity.AttributeKindSingleSelect, Values: []string{"red", "blue"}},
		},
	}
	products := []entity.Product{
		{ID: "p1", Name: "Red tee", Price: decimal.NewFromInt(20000), CategoryID: "c1",
			Attributes: map[string]any{"color": "red"}, Review: entity.Review{Rating: 4.5, Count: 3}},
	}

	out, err := g.GenerateCategoryPDF(context.Background(), shop, category, products)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")

	empty, err := g.GenerateCategoryPDF(context.Background(), nil, entity.Category{ID: "c9", Name: "Vacía"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
