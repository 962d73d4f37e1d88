package ports

import (
	"context"
	"encoding/json"
)

// Roles admitidos en el historial.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn un turno de la conversación enviada al agente.
type ChatTurn struct {
	Role    string // RoleUser o RoleAssistant
	Content string
}

// AgentRequest historial de la conversación más los productos que el cliente ya tiene en pantalla.
// Products viaja opaco: el agente lo devuelve completo o filtrado.
type AgentRequest struct {
	History  []ChatTurn
	Products []json.RawMessage
}

// AgentReply respuesta cruda del agente.
type AgentReply struct {
	Text     string
	Products []json.RawMessage
}

// AgentService define el puerto de salida hacia el agente conversacional.
// Cualquier adaptador (webhook n8n, Perplexity, Anthropic, mock) debe implementar esta interfaz.
// Los errores se clasifican con domain.ErrUpstreamTimeout, ErrUpstreamUnavailable o ErrUpstreamBadStatus.
type AgentService interface {
	Ask(ctx context.Context, req AgentRequest) (*AgentReply, error)
}
