// Package httpclient agrupa utilidades comunes de los adaptadores HTTP salientes:
// clasificación de fallos de transporte y de estado en los errores de dominio.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
)

// maxSnippet bytes del cuerpo de error que se conservan para logs.
const maxSnippet = 512

// StatusError respuesta HTTP fuera del rango 2xx. Envuelve domain.ErrUpstreamBadStatus.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstreamBadStatus }

// CheckStatus devuelve *StatusError si resp no es 2xx; lee como mucho maxSnippet bytes del cuerpo.
func CheckStatus(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnippet))
	return &StatusError{Service: service, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
}

// Classify traduce un error de transporte (http.Client.Do) a domain.ErrUpstreamTimeout o
// domain.ErrUpstreamUnavailable, conservando la causa original.
func Classify(ctx context.Context, service string, err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(ctx, err) {
		return fmt.Errorf("%s: %w: %w", service, domain.ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", service, domain.ErrUpstreamUnavailable, err)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
