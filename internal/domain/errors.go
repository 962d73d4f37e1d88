package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// Fallos de servicios externos (agente, transformación de imagen, hosting de imágenes).
	// Solo se expone la categoría de la causa, nunca detalles del transporte.
	ErrUpstreamTimeout     = errors.New("el servicio externo no respondió a tiempo")
	ErrUpstreamUnavailable = errors.New("no fue posible conectar con el servicio externo")
	ErrUpstreamBadStatus   = errors.New("el servicio externo respondió con error")

	// ErrRetriesExhausted el paso de transformación falló en todos los intentos.
	ErrRetriesExhausted = errors.New("intentos agotados")
)
