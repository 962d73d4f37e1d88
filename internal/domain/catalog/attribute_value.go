package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// AttributeValue valor de atributo ya interpretado según el tipo declarado en la categoría.
// Solo uno de Text, Number u Options es significativo, según Kind.
type AttributeValue struct {
	Kind    entity.AttributeKind
	Text    string          // text y single_select
	Number  decimal.Decimal // number
	Options []string        // multi_select, en el orden almacenado
}

// String devuelve la forma canónica usada para comparar contra filtros.
// multi_select se une con "," respetando el orden almacenado; number usa la forma decimal
// mínima (120.0 y "120" dan "120"). El valor del filtro se compara tal cual, sin interpretarlo.
func (v AttributeValue) String() string {
	switch v.Kind {
	case entity.AttributeKindNumber:
		return v.Number.String()
	case entity.AttributeKindMultiSelect:
		return strings.Join(v.Options, ",")
	default:
		return v.Text
	}
}

// ResolveAttribute interpreta el valor crudo de un producto contra la definición del atributo.
// Devuelve ok=false si el valor no existe o su forma no corresponde al tipo declarado
// (para filtros, un valor ilegible equivale a ausente).
// Sin definición (atributo no aplicable a la categoría) solo se acepta texto.
func ResolveAttribute(def *entity.Attribute, raw any) (AttributeValue, bool) {
	if raw == nil {
		return AttributeValue{}, false
	}
	kind := entity.AttributeKindText
	if def != nil {
		kind = def.Kind
	}

	switch kind {
	case entity.AttributeKindText, entity.AttributeKindSingleSelect:
		s, ok := raw.(string)
		if !ok {
			return AttributeValue{}, false
		}
		return AttributeValue{Kind: kind, Text: s}, true

	case entity.AttributeKindNumber:
		n, ok := toDecimal(raw)
		if !ok {
			return AttributeValue{}, false
		}
		return AttributeValue{Kind: kind, Number: n}, true

	case entity.AttributeKindMultiSelect:
		opts, ok := toStrings(raw)
		if !ok {
			return AttributeValue{}, false
		}
		return AttributeValue{Kind: kind, Options: opts}, true
	}
	return AttributeValue{}, false
}

func toDecimal(raw any) (decimal.Decimal, bool) {
	switch n := raw.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func toStrings(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case string:
		// un único valor guardado como texto
		return []string{v}, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Filter condición (atributo, valor) de QueryProducts. Se compara por igualdad exacta de texto.
type Filter struct {
	AttributeID string
	Value       string
}

func (f Filter) String() string {
	return fmt.Sprintf("%s=%s", f.AttributeID, f.Value)
}
