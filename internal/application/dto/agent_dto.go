package dto

import "encoding/json"

// AgentRequest entrada del asistente: historial de prompts del usuario y productos en contexto.
type AgentRequest struct {
	Prompts  []string          `json:"prompts" validate:"required,min=1,dive,required"`
	Products []json.RawMessage `json:"products"`
	ShopID   string            `json:"shop_id,omitempty"`
}

// AgentResponse respuesta del asistente con la recomendación ya descompuesta.
// Category solo se informa cuando se envió shop_id y la categoría elegida existe en la tienda.
type AgentResponse struct {
	AIResponse     string                 `json:"ai_response"`
	Products       []json.RawMessage      `json:"products"`
	Recommendation RecommendationResponse `json:"recommendation"`
	Category       *CategoryResponse      `json:"category,omitempty"`
}

// ParseRecommendationRequest texto libre de un asistente.
type ParseRecommendationRequest struct {
	Text string `json:"text" validate:"required"`
}

// RecommendationResponse salida del parser de recomendaciones.
type RecommendationResponse struct {
	ChatMessage           string `json:"chat_message"`
	SelectedCategory      string `json:"selected_category"`
	ConfidencePercent     int    `json:"confidence_percent"`
	ConfidenceLevel       string `json:"confidence_level"`
	IsFinalRecommendation bool   `json:"is_final_recommendation"`
	CategoryExtracted     bool   `json:"category_extracted"`
	ConfidenceExtracted   bool   `json:"confidence_extracted"`
	FullResponse          string `json:"full_response"`
}
