package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que GeminiService implementa AgentService.
var _ ports.AgentService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiService = "agente gemini"
	geminiRoleBot = "model"
)

// GeminiConfig parámetros del adaptador. BaseURL vacío usa la API pública.
type GeminiConfig struct {
	APIKey  string
	Model   string // ej. "gemini-1.5-flash"
	BaseURL string
	Timeout time.Duration
}

// GeminiService adaptador que implementa AgentService llamando a la API REST de Google Gemini.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador.
func NewGeminiService(cfg GeminiConfig) *GeminiService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &GeminiService{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Ask envía el historial a Gemini. Los productos viajan en la instrucción de sistema y se
// devuelven sin cambios.
func (s *GeminiService) Ask(ctx context.Context, in ports.AgentRequest) (*ports.AgentReply, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%s: GEMINI_API_KEY no configurado: %w", geminiService, domain.ErrUpstreamUnavailable)
	}
	turns := chatTurns(in.History)
	if len(turns) == 0 {
		return nil, fmt.Errorf("%s: historial vacío: %w", geminiService, domain.ErrInvalidInput)
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt(in.Products)}},
		},
		Contents: geminiContents(turns),
		GenerationConfig: genConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: serializar request: %w", geminiService, err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", s.baseURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", geminiService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// *url.Error incluye la URL con la key; solo se conserva la causa.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, httpclient.Classify(ctx, geminiService, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, httpclient.Classify(ctx, geminiService, err)
	}

	if resp.StatusCode != http.StatusOK {
		se := &httpclient.StatusError{Service: geminiService, Status: resp.StatusCode}
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			se.Body = errResp.Error.Status + ": " + errResp.Error.Message
		}
		return nil, se
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("%s: deserializar respuesta: %w: %w", geminiService, domain.ErrUpstreamBadStatus, err)
	}

	var text strings.Builder
	if len(gemResp.Candidates) > 0 {
		for _, p := range gemResp.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("%s: Gemini devolvió respuesta vacía: %w", geminiService, domain.ErrUpstreamBadStatus)
	}

	return &ports.AgentReply{Text: text.String(), Products: in.Products}, nil
}

// geminiContents traduce el historial a contents: el rol assistant se llama "model" y
// los turnos consecutivos del mismo rol se unen, empezando siempre por el usuario.
func geminiContents(turns []ports.ChatTurn) []geminiContent {
	out := make([]geminiContent, 0, len(turns))
	for _, m := range mergeTurns(turns) {
		role := m.Role
		if role == ports.RoleAssistant {
			role = geminiRoleBot
		}
		out = append(out, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	return out
}
