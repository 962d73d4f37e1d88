// Package recommendation descompone las respuestas libres del asistente de compras
// en un mensaje de chat, la categoría elegida y el porcentaje de confianza.
//
// El formato esperado de una recomendación final es:
//
//	<diálogo>
//
//	1. Text Dialogue: ...
//	2. Selected Category: Tshirt
//	3. Confidence: 85%
//
// Parse nunca falla: si algo no se puede extraer, el campo conserva su valor centinela.
package recommendation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

const (
	categoryMarker   = "Selected Category"
	confidenceMarker = "Confidence"
)

var (
	// sectionRe separa las secciones numeradas ("1. ", "2. ", ...).
	sectionRe    = regexp.MustCompile(`\d+\.\s+`)
	categoryRe   = regexp.MustCompile(`(?i)Selected Category[:\s]*([^\n]+)`)
	confidenceRe = regexp.MustCompile(`(?i)Confidence[:\s]*(\d+)%`)
)

// IsFinal indica si el texto contiene una recomendación final (categoría y confianza).
func IsFinal(text string) bool {
	return strings.Contains(text, categoryMarker) && strings.Contains(text, confidenceMarker)
}

// Parse clasifica y descompone un bloque de texto del asistente.
func Parse(text string) entity.Recommendation {
	rec := entity.Recommendation{
		ChatMessage:      text,
		SelectedCategory: entity.CategoryNotDetermined,
		FullResponse:     text,
	}
	if !IsFinal(text) {
		return rec
	}
	rec.IsFinalRecommendation = true

	sections := sectionRe.Split(text, -1)
	if len(sections) < 2 {
		// Sin secciones numeradas: todo el texto es el mensaje y se extrae de ahí.
		extractCategory(&rec, text)
		extractConfidence(&rec, text)
		return rec
	}

	rec.ChatMessage = strings.TrimSpace(sections[0])
	for _, section := range sections[1:] {
		if strings.Contains(section, categoryMarker) {
			extractCategory(&rec, section)
		}
		if strings.Contains(section, confidenceMarker) {
			extractConfidence(&rec, section)
		}
	}
	return rec
}

// ChatMessageOnly devuelve solo la parte de diálogo que se muestra en la ventana de chat.
func ChatMessageOnly(text string) string {
	return Parse(text).ChatMessage
}

func extractCategory(rec *entity.Recommendation, segment string) {
	m := categoryRe.FindStringSubmatch(segment)
	if m == nil {
		return
	}
	rec.SelectedCategory = strings.TrimSpace(m[1])
	rec.CategoryExtracted = true
}

func extractConfidence(rec *entity.Recommendation, segment string) {
	m := confidenceRe.FindStringSubmatch(segment)
	if m == nil {
		return
	}
	// m[1] son solo dígitos: el único error posible de Atoi es desbordamiento.
	n, err := strconv.Atoi(m[1])
	if err != nil || n > 100 {
		n = 100
	}
	rec.ConfidencePercent = n
	rec.ConfidenceExtracted = true
}
