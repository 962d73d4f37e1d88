package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que WebhookAgent implementa AgentService.
var _ ports.AgentService = (*WebhookAgent)(nil)

const webhookService = "agente webhook"

// WebhookAgent adaptador hacia un flujo de agente expuesto como webhook HTTP (n8n).
// El flujo recibe el historial y los productos, y devuelve el texto del asistente junto
// con los productos que considera relevantes.
type WebhookAgent struct {
	url        string
	httpClient *http.Client
}

// NewWebhookAgent construye el adaptador. timeout <= 0 usa 90 s.
func NewWebhookAgent(url string, timeout time.Duration) *WebhookAgent {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &WebhookAgent{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type webhookTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type webhookRequest struct {
	History  []webhookTurn     `json:"history"`
	Products []json.RawMessage `json:"products"`
}

type webhookResponse struct {
	AIResponse string            `json:"ai_response"`
	Products   []json.RawMessage `json:"products"`
}

// Ask envía el historial al webhook y devuelve su respuesta.
func (a *WebhookAgent) Ask(ctx context.Context, in ports.AgentRequest) (*ports.AgentReply, error) {
	if a.url == "" {
		return nil, fmt.Errorf("%s: AGENT_WEBHOOK_URL no configurado: %w", webhookService, domain.ErrUpstreamUnavailable)
	}

	payload := webhookRequest{
		History:  make([]webhookTurn, 0, len(in.History)),
		Products: in.Products,
	}
	for _, t := range in.History {
		payload.History = append(payload.History, webhookTurn{Role: t.Role, Content: t.Content})
	}
	if payload.Products == nil {
		payload.Products = []json.RawMessage{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: serializar request: %w", webhookService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", webhookService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, httpclient.Classify(ctx, webhookService, err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(webhookService, resp); err != nil {
		return nil, err
	}

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, httpclient.Classify(ctx, webhookService, err)
	}

	var out webhookResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("%s: deserializar respuesta: %w: %w", webhookService, domain.ErrUpstreamBadStatus, err)
	}
	if out.Products == nil {
		out.Products = []json.RawMessage{}
	}
	return &ports.AgentReply{Text: out.AIResponse, Products: out.Products}, nil
}
