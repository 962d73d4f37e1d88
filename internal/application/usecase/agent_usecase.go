package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/recommendation"
)

// DefaultAgentTimeout tiempo máximo de una conversación con el agente.
const DefaultAgentTimeout = 90 * time.Second

// AgentOptions parámetros del caso de uso del asistente.
type AgentOptions struct {
	Timeout time.Duration
	// MemoMaxEntries acota el memo de respuestas: 0 sin límite, < 0 desactivado.
	MemoMaxEntries int
	Logger         zerolog.Logger
}

// AgentUseCase reenvía el historial del usuario al agente conversacional y descompone su
// respuesta en una recomendación estructurada.
type AgentUseCase struct {
	agent   ports.AgentService
	engine  *catalog.Engine
	timeout time.Duration
	memo    *replyMemo
	log     zerolog.Logger
}

// NewAgentUseCase construye el caso de uso inyectando el puerto AgentService.
// engine puede ser nil: en ese caso no se resuelve la categoría recomendada.
func NewAgentUseCase(agent ports.AgentService, engine *catalog.Engine, opts AgentOptions) *AgentUseCase {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultAgentTimeout
	}
	return &AgentUseCase{
		agent:   agent,
		engine:  engine,
		timeout: opts.Timeout,
		memo:    newReplyMemo(opts.MemoMaxEntries),
		log:     opts.Logger.With().Str("component", "agent").Logger(),
	}
}

// Ask envía los prompts y productos al agente y devuelve su respuesta con la recomendación.
// Con shop_id, la categoría elegida se resuelve contra las categorías de esa tienda.
func (uc *AgentUseCase) Ask(ctx context.Context, in dto.AgentRequest) (*dto.AgentResponse, error) {
	if len(in.Prompts) == 0 {
		return nil, fmt.Errorf("prompts es obligatorio: %w", domain.ErrInvalidInput)
	}

	var categories []entity.Category
	if in.ShopID != "" && uc.engine != nil {
		cs, err := uc.engine.CategoriesOfShop(in.ShopID)
		if err != nil {
			return nil, err
		}
		categories = cs
	}

	products := in.Products
	if products == nil {
		products = []json.RawMessage{}
	}
	key := memoKey(in.ShopID, in.Prompts, products)
	reply, hit := uc.memo.get(key)
	if !hit {
		history := make([]ports.ChatTurn, 0, len(in.Prompts))
		for _, p := range in.Prompts {
			history = append(history, ports.ChatTurn{Role: ports.RoleUser, Content: p})
		}

		ctx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()

		r, err := uc.agent.Ask(ctx, ports.AgentRequest{History: history, Products: products})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrUpstreamTimeout) {
				err = fmt.Errorf("%w: %w", domain.ErrUpstreamTimeout, err)
			}
			uc.log.Warn().Err(err).Int("prompts", len(in.Prompts)).Msg("agente: llamada fallida")
			return nil, fmt.Errorf("agente: %w", err)
		}
		reply = *r
		uc.memo.put(key, reply)
	}

	out := &dto.AgentResponse{
		AIResponse:     reply.Text,
		Products:       reply.Products,
		Recommendation: toRecommendationResponse(recommendation.Parse(reply.Text)),
	}
	if out.Products == nil {
		out.Products = []json.RawMessage{}
	}
	if out.Recommendation.IsFinalRecommendation && out.Recommendation.CategoryExtracted && len(categories) > 0 {
		if c, ok := catalog.MatchCategory(categories, out.Recommendation.SelectedCategory); ok {
			cr := toCategoryResponse(c)
			out.Category = &cr
		}
	}
	uc.log.Debug().
		Bool("memo_hit", hit).
		Bool("final", out.Recommendation.IsFinalRecommendation).
		Int("products", len(out.Products)).
		Msg("agente: respuesta procesada")
	return out, nil
}

// ParseRecommendation descompone un texto libre del asistente.
func (uc *AgentUseCase) ParseRecommendation(in dto.ParseRecommendationRequest) dto.RecommendationResponse {
	return toRecommendationResponse(recommendation.Parse(in.Text))
}

func toRecommendationResponse(r entity.Recommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		ChatMessage:           r.ChatMessage,
		SelectedCategory:      r.SelectedCategory,
		ConfidencePercent:     r.ConfidencePercent,
		ConfidenceLevel:       r.ConfidenceLevel(),
		IsFinalRecommendation: r.IsFinalRecommendation,
		CategoryExtracted:     r.CategoryExtracted,
		ConfidenceExtracted:   r.ConfidenceExtracted,
		FullResponse:          r.FullResponse,
	}
}
