package tryon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
)

// DefaultMaxRetries reintentos después del primer intento (4 intentos en total).
const DefaultMaxRetries = 3

// Options parámetros ajustables del orquestador.
type Options struct {
	MaxRetries  int           // reintentos tras el primer intento; < 0 se trata como 0
	Backoff     time.Duration // espera entre intentos; 0 = sin espera
	CallTimeout time.Duration // timeout por llamada externa; 0 = solo el del contexto
	Logger      zerolog.Logger
}

// Request entrada del try-on.
type Request struct {
	ProductImageURL string
	UserImageURL    string
}

// Result URL pública de la imagen compuesta.
type Result struct {
	ImageURL        string
	Attempts        int
	CredentialIndex int // credencial que produjo la imagen
}

// Orchestrator ejecuta el pipeline de dos etapas:
//
//	transformación (con rotación de credenciales y reintento acotado) → subida pública (un solo intento)
type Orchestrator struct {
	transformer ports.ImageTransformer
	uploader    ports.ImageUploader
	pool        *CredentialPool
	opts        Options
	log         zerolog.Logger
}

// NewOrchestrator construye el orquestador inyectando los puertos y el pool de credenciales.
func NewOrchestrator(transformer ports.ImageTransformer, uploader ports.ImageUploader, pool *CredentialPool, opts Options) *Orchestrator {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Orchestrator{
		transformer: transformer,
		uploader:    uploader,
		pool:        pool,
		opts:        opts,
		log:         opts.Logger.With().Str("component", "tryon").Logger(),
	}
}

// TryOn compone la prenda sobre la foto del usuario y devuelve la URL pública del resultado.
//
// Cada intento usa la siguiente credencial del pool. Si todos los intentos fallan se devuelve
// un error que envuelve domain.ErrRetriesExhausted y la última causa, sin llamar al uploader.
// Si el contexto termina antes se devuelve su error, sin ErrRetriesExhausted.
func (o *Orchestrator) TryOn(ctx context.Context, req Request) (*Result, error) {
	if req.ProductImageURL == "" || req.UserImageURL == "" {
		return nil, fmt.Errorf("try-on: product_img_url y user_img_url son obligatorios: %w", domain.ErrInvalidInput)
	}
	requestID := uuid.NewString()
	log := o.log.With().Str("request_id", requestID).Logger()

	maxAttempts := 1 + o.opts.MaxRetries
	var (
		img      *ports.TransformedImage
		keyIdx   int
		lastErr  error
		attempts int
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 && o.opts.Backoff > 0 {
			if err := sleepCtx(ctx, o.opts.Backoff); err != nil {
				lastErr = err
				break
			}
		}
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}

		var key string
		keyIdx, key = o.pool.Next()
		attempts++
		img, lastErr = o.transform(ctx, key, req)
		if lastErr == nil {
			break
		}
		log.Warn().Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Int("credential", keyIdx).
			Msg("try-on: transformación fallida")
	}

	if lastErr != nil {
		lastErr = classifyContextErr(lastErr)
		if attempts < maxAttempts {
			// El contexto cortó el ciclo antes de agotar los intentos.
			log.Warn().Err(lastErr).Int("attempts", attempts).Msg("try-on: interrumpido")
			return nil, fmt.Errorf("try-on: transformación interrumpida: %w", lastErr)
		}
		log.Error().Err(lastErr).Int("attempts", attempts).Msg("try-on: intentos agotados")
		return nil, fmt.Errorf("try-on: transformación: %w: %w", domain.ErrRetriesExhausted, lastErr)
	}

	url, err := o.upload(ctx, img, requestID)
	if err != nil {
		log.Error().Err(err).Msg("try-on: subida fallida")
		return nil, fmt.Errorf("try-on: subida: %w", err)
	}

	log.Info().Int("attempts", attempts).Int("credential", keyIdx).Str("url", url).Msg("try-on completado")
	return &Result{ImageURL: url, Attempts: attempts, CredentialIndex: keyIdx}, nil
}

func (o *Orchestrator) transform(ctx context.Context, key string, req Request) (*ports.TransformedImage, error) {
	if o.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.CallTimeout)
		defer cancel()
	}
	img, err := o.transformer.Transform(ctx, key, ports.TransformRequest{
		HumanImageURL:   req.UserImageURL,
		GarmentImageURL: req.ProductImageURL,
	})
	if err != nil {
		return nil, err
	}
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("imagen vacía: %w", domain.ErrUpstreamBadStatus)
	}
	return img, nil
}

func (o *Orchestrator) upload(ctx context.Context, img *ports.TransformedImage, name string) (string, error) {
	if o.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.CallTimeout)
		defer cancel()
	}
	return o.uploader.Upload(ctx, img, name)
}

// classifyContextErr marca un vencimiento de plazo como ErrUpstreamTimeout. Una cancelación
// (cliente desconectado) se devuelve tal cual.
func classifyContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrUpstreamTimeout) {
		return fmt.Errorf("%w: %w", domain.ErrUpstreamTimeout, err)
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
