package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// NormalizeLabel reduce una etiqueta libre a una clave comparable: sin tildes, sin mayúsculas
// y solo letras y dígitos ("T-Shirts" → "tshirts", "Camisetas Básicas" → "camisetasbasicas").
func NormalizeLabel(s string) string {
	// transform.Chain y cases.Caser guardan estado: se crean por llamada.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)

	var b strings.Builder
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchCategory busca entre categories la que corresponde a la etiqueta elegida por el asistente.
// Compara nombre e ID normalizados; si no hay coincidencia exacta tolera un plural en "s".
func MatchCategory(categories []entity.Category, label string) (entity.Category, bool) {
	key := NormalizeLabel(label)
	if key == "" {
		return entity.Category{}, false
	}
	for _, c := range categories {
		if NormalizeLabel(c.Name) == key || NormalizeLabel(c.ID) == key {
			return c, true
		}
	}
	singular := strings.TrimSuffix(key, "s")
	for _, c := range categories {
		if strings.TrimSuffix(NormalizeLabel(c.Name), "s") == singular {
			return c, true
		}
	}
	return entity.Category{}, false
}
