package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/application/usecase"
)

// AgentHandler maneja la conversación con el asistente de compras.
type AgentHandler struct {
	uc *usecase.AgentUseCase
}

// NewAgentHandler construye el handler.
func NewAgentHandler(uc *usecase.AgentUseCase) *AgentHandler {
	return &AgentHandler{uc: uc}
}

// Ask godoc
// @Summary      Conversar con el asistente
// @Description  Reenvía el historial de prompts y los productos en pantalla al agente y devuelve su respuesta
// @Description  junto con la recomendación estructurada. Con shop_id se resuelve la categoría elegida.
// @Tags         agent
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AgentRequest  true  "prompts, products y shop_id opcional"
// @Success      200   {object}  dto.AgentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/agent [post]
func (h *AgentHandler) Ask(c *fiber.Ctx) error {
	var in dto.AgentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Ask(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ParseRecommendation godoc
// @Summary      Descomponer una respuesta del asistente
// @Tags         agent
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ParseRecommendationRequest  true  "texto"
// @Success      200   {object}  dto.RecommendationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recommendations/parse [post]
func (h *AgentHandler) ParseRecommendation(c *fiber.Ctx) error {
	var in dto.ParseRecommendationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.ParseRecommendation(in))
}
