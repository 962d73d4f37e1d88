package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/application/tryon"
)

// TryOnService lo que el handler necesita del orquestador.
type TryOnService interface {
	TryOn(ctx context.Context, req tryon.Request) (*tryon.Result, error)
}

// TryOnHandler maneja el probador virtual.
type TryOnHandler struct {
	svc TryOnService
}

// NewTryOnHandler construye el handler. svc nil deja el endpoint en 503.
func NewTryOnHandler(svc TryOnService) *TryOnHandler {
	return &TryOnHandler{svc: svc}
}

// TryOn godoc
// @Summary      Probar una prenda sobre la foto del usuario
// @Description  Compone la imagen del producto sobre la del usuario (rotando credenciales y reintentando)
// @Description  y devuelve la URL pública del resultado.
// @Tags         try-on
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TryOnRequest  true  "product_img_url y user_img_url"
// @Success      200   {object}  dto.TryOnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/try-on [post]
func (h *TryOnHandler) TryOn(c *fiber.Ctx) error {
	if h.svc == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "TRYON_DISABLED", Message: "el probador virtual no está configurado",
		})
	}
	var in dto.TryOnRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	res, err := h.svc.TryOn(c.UserContext(), tryon.Request{
		ProductImageURL: in.ProductImgURL,
		UserImageURL:    in.UserImgURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TryOnResponse{ImgURL: res.ImageURL, Attempts: res.Attempts})
}
