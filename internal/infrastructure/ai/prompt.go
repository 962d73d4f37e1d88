package ai

import (
	"encoding/json"
	"strings"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
)

// shopkeeperSystemPrompt instruye al modelo para que sus respuestas finales sigan el formato
// de tres secciones que entiende el parser de recomendaciones.
const shopkeeperSystemPrompt = `You are a friendly shopkeeper helping a customer choose a product category.
Ask short follow-up questions until you are confident about what the customer needs.
When you are ready to recommend, answer with a short message followed by exactly these sections:

1. Text Dialogue:
<a short dialogue between Customer and Shopkeeper summarising the need>

2. Selected Category: <one category name>

3. Confidence: <integer 0-100>%

Never include "Selected Category" or "Confidence" in a reply that is not a final recommendation.`

// maxProductContext bytes de productos serializados que se añaden al prompt de sistema.
const maxProductContext = 16 * 1024

// systemPrompt prompt de sistema con el contexto de productos, recortado a maxProductContext.
func systemPrompt(products []json.RawMessage) string {
	if len(products) == 0 {
		return shopkeeperSystemPrompt
	}
	var b strings.Builder
	b.WriteString(shopkeeperSystemPrompt)
	b.WriteString("\n\nProducts currently shown to the customer (JSON, one per line):\n")
	used := 0
	for _, p := range products {
		if used+len(p) > maxProductContext {
			b.WriteString("...\n")
			break
		}
		b.Write(p)
		b.WriteByte('\n')
		used += len(p) + 1
	}
	return b.String()
}

// chatTurns filtra el historial a turnos user/assistant no vacíos.
func chatTurns(history []ports.ChatTurn) []ports.ChatTurn {
	out := make([]ports.ChatTurn, 0, len(history))
	for _, t := range history {
		if (t.Role == ports.RoleUser || t.Role == ports.RoleAssistant) && strings.TrimSpace(t.Content) != "" {
			out = append(out, t)
		}
	}
	return out
}
