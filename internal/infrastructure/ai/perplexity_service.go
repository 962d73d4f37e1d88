package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que PerplexityService implementa AgentService.
var _ ports.AgentService = (*PerplexityService)(nil)

const (
	perplexityBaseURL      = "https://api.perplexity.ai"
	perplexityDefaultModel = "sonar-pro"
	perplexityService      = "agente perplexity"
)

// PerplexityConfig parámetros del adaptador. BaseURL vacío usa la API pública.
type PerplexityConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
}

// PerplexityService adaptador que implementa AgentService sobre la API de chat de Perplexity,
// compatible con OpenAI, usando el cliente go-openai.
type PerplexityService struct {
	client    *openai.Client
	apiKey    string
	model     string
	maxTokens int
}

// NewPerplexityService construye el adaptador.
// Si APIKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewPerplexityService(cfg PerplexityConfig) *PerplexityService {
	if cfg.Model == "" {
		cfg.Model = perplexityDefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = perplexityBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &PerplexityService{
		client:    openai.NewClientWithConfig(oc),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Ask envía el historial como chat completion. Los productos viajan en el prompt de sistema
// y se devuelven sin cambios.
func (s *PerplexityService) Ask(ctx context.Context, in ports.AgentRequest) (*ports.AgentReply, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%s: PERPLEXITY_API_KEY no configurado: %w", perplexityService, domain.ErrUpstreamUnavailable)
	}
	turns := chatTurns(in.History)
	if len(turns) == 0 {
		return nil, fmt.Errorf("%s: historial vacío: %w", perplexityService, domain.ErrInvalidInput)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt(in.Products),
	})
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Role == ports.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return nil, classifyOpenAIError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: respuesta sin choices: %w", perplexityService, domain.ErrUpstreamBadStatus)
	}

	return &ports.AgentReply{
		Text:     resp.Choices[0].Message.Content,
		Products: in.Products,
	}, nil
}

// classifyOpenAIError separa los errores de estado HTTP (APIError/RequestError) de los de transporte.
func classifyOpenAIError(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: HTTP %d: %w: %s", perplexityService, apiErr.HTTPStatusCode, domain.ErrUpstreamBadStatus, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%s: HTTP %d: %w", perplexityService, reqErr.HTTPStatusCode, domain.ErrUpstreamBadStatus)
	}
	return httpclient.Classify(ctx, perplexityService, err)
}
