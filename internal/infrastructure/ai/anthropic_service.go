package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que AnthropicService implementa AgentService.
var _ ports.AgentService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicService     = "agente anthropic"
)

// AnthropicConfig parámetros del adaptador. URL vacío usa la API pública.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	URL     string
	Timeout time.Duration
}

// AnthropicService adaptador que implementa AgentService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// Si APIKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(cfg AnthropicConfig) *AnthropicService {
	if cfg.URL == "" {
		cfg.URL = anthropicMessagesURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &AnthropicService{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Ask envía el historial a Claude. Los productos viajan en el prompt de sistema y se
// devuelven sin cambios.
func (s *AnthropicService) Ask(ctx context.Context, in ports.AgentRequest) (*ports.AgentReply, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%s: ANTHROPIC_API_KEY no configurado: %w", anthropicService, domain.ErrUpstreamUnavailable)
	}
	turns := chatTurns(in.History)
	if len(turns) == 0 {
		return nil, fmt.Errorf("%s: historial vacío: %w", anthropicService, domain.ErrInvalidInput)
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    systemPrompt(in.Products),
		Messages:  mergeTurns(turns),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: serializar request: %w", anthropicService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", anthropicService, err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, httpclient.Classify(ctx, anthropicService, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, httpclient.Classify(ctx, anthropicService, err)
	}

	// Manejar errores HTTP de la API de Anthropic
	if resp.StatusCode != http.StatusOK {
		se := &httpclient.StatusError{Service: anthropicService, Status: resp.StatusCode}
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			se.Body = errResp.Error.Type + ": " + errResp.Error.Message
		}
		return nil, se
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return nil, fmt.Errorf("%s: deserializar respuesta: %w: %w", anthropicService, domain.ErrUpstreamBadStatus, err)
	}

	var text strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("%s: Claude devolvió respuesta vacía: %w", anthropicService, domain.ErrUpstreamBadStatus)
	}

	return &ports.AgentReply{Text: text.String(), Products: in.Products}, nil
}

// mergeTurns une turnos consecutivos del mismo rol: la API exige alternancia user/assistant
// y que el primer mensaje sea del usuario.
func mergeTurns(turns []ports.ChatTurn) []anthropicMessage {
	out := make([]anthropicMessage, 0, len(turns))
	for _, t := range turns {
		if len(out) == 0 && t.Role != ports.RoleUser {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == t.Role {
			out[n-1].Content += "\n\n" + t.Content
			continue
		}
		out = append(out, anthropicMessage{Role: t.Role, Content: t.Content})
	}
	return out
}
