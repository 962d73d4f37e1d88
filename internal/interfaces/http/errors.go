package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errInvalidBody el cuerpo no es JSON decodificable.
var errInvalidBody = errors.New("cuerpo de la petición inválido")

// parseBody decodifica el JSON del cuerpo y valida las etiquetas `validate` del DTO.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w", validationMessage(err), domain.ErrInvalidInput)
	}
	return nil
}

// validationMessage resume los errores del validador como "campo: regla".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Namespace())
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		parts = append(parts, field+": "+fe.Tag())
	}
	return "validación: " + strings.Join(parts, ", ")
}

// writeError traduce un error de dominio a su código HTTP.
// Para los fallos de servicios externos solo se expone la categoría de la causa.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, "INVALID_BODY", errInvalidBody.Error()
	case errors.Is(err, domain.ErrRetriesExhausted):
		msg := domain.ErrRetriesExhausted.Error()
		if cause := upstreamCause(err); cause != nil {
			msg += ": " + cause.Error()
		}
		return fiber.StatusBadGateway, "TRYON_FAILED", msg
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return fiber.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", domain.ErrUpstreamTimeout.Error()
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", domain.ErrUpstreamUnavailable.Error()
	case errors.Is(err, domain.ErrUpstreamBadStatus):
		return fiber.StatusBadGateway, "UPSTREAM_BAD_STATUS", domain.ErrUpstreamBadStatus.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}

func upstreamCause(err error) error {
	for _, s := range []error{domain.ErrUpstreamTimeout, domain.ErrUpstreamUnavailable, domain.ErrUpstreamBadStatus} {
		if errors.Is(err, s) {
			return s
		}
	}
	return nil
}

// ErrorHandler respuesta uniforme para errores de Fiber (ruta inexistente, método no permitido, panics).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
