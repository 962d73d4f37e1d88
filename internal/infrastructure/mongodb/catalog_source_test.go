package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func rawValue(t *testing.T, v any) bson.RawValue {
	t.Helper()
	doc, err := bson.Marshal(bson.D{{Key: "v", Value: v}})
	require.NoError(t, err)
	return bson.Raw(doc).Lookup("v")
}

func TestDecodePrice_TiposAdmitidos(t *testing.T) {
	d128, err := primitive.ParseDecimal128("19.99")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"double", 19.5, "19.5"},
		{"int32", int32(20), "20"},
		{"int64", int64(20000), "20000"},
		{"decimal128", d128, "19.99"},
		{"string", "22.50", "22.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodePrice(rawValue(t, tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestDecodePrice_AusenteEsCero(t *testing.T) {
	got, err := decodePrice(bson.RawValue{})
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestDecodePrice_TipoNoSoportado(t *testing.T) {
	_, err := decodePrice(rawValue(t, true))
	assert.Error(t, err)
}

func TestNormalizeMap_TiposDelDriver(t *testing.T) {
	in := bson.M{
		"color":  "red",
		"size":   primitive.A{"S", "M"},
		"weight": int32(120),
		"dims":   primitive.D{{Key: "w", Value: int64(3)}, {Key: "tags", Value: primitive.A{"x"}}},
		"extra":  primitive.M{"k": "v"},
	}
	got := normalizeMap(in)

	assert.Equal(t, "red", got["color"])
	assert.Equal(t, []any{"S", "M"}, got["size"])
	assert.Equal(t, 120.0, got["weight"])
	assert.Equal(t, map[string]any{"w": 3.0, "tags": []any{"x"}}, got["dims"])
	assert.Equal(t, map[string]any{"k": "v"}, got["extra"])
	assert.Nil(t, normalizeMap(nil))
}

func TestToProductRecord(t *testing.T) {
	p, err := toProductRecord(productDoc{
		ID: "p1", Name: "Red tee", CategoryID: "c1",
		Price:      rawValue(t, 19.99),
		Review:     &reviewDoc{Rating: 4.5, Count: 3, Average: 4.2},
		Attributes: bson.M{"color": "red"},
	})
	require.NoError(t, err)
	assert.Equal(t, "19.99", p.Price.String())
	require.NotNil(t, p.Review)
	assert.Equal(t, 3, p.Review.Count)
	assert.Equal(t, map[string]any{"color": "red"}, p.Attributes)
	assert.Nil(t, p.Metadata)
}
