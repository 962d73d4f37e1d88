package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	apptryon "github.com/jhoicas/ShopAssistant-api/internal/application/tryon"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	infraai "github.com/jhoicas/ShopAssistant-api/internal/infrastructure/ai"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/jsonfs"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/postgres"
	infratryon "github.com/jhoicas/ShopAssistant-api/internal/infrastructure/tryon"
	"github.com/jhoicas/ShopAssistant-api/pkg/config"
	"github.com/jhoicas/ShopAssistant-api/pkg/logger"
)

// loadCatalog lee los registros de la fuente configurada. El cierre devuelto libera la conexión;
// se llama justo después de cargar porque el catálogo no se vuelve a leer.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Records, func(), error) {
	noop := func() {}
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		rec, err := postgres.NewCatalogSource(pool).Load(ctx)
		return rec, pool.Close, err
	case config.CatalogSourceMongo:
		client, err := mongodb.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, noop, err
		}
		disconnect := func() { _ = client.Disconnect(context.Background()) }
		rec, err := mongodb.NewCatalogSource(client, cfg.Mongo.Database).Load(ctx)
		return rec, disconnect, err
	default:
		rec, err := jsonfs.NewCatalogSource(cfg.Catalog.Dir).Load(ctx)
		return rec, noop, err
	}
}

// newAgent elige el adaptador del agente según AGENT_PROVIDER.
func newAgent(cfg *config.Config) ports.AgentService {
	switch cfg.Agent.Provider {
	case config.AgentProviderPerplexity:
		return infraai.NewPerplexityService(infraai.PerplexityConfig{
			APIKey:  cfg.Agent.PerplexityAPIKey,
			Model:   cfg.Agent.PerplexityModel,
			Timeout: cfg.Agent.Timeout,
		})
	case config.AgentProviderAnthropic:
		return infraai.NewAnthropicService(infraai.AnthropicConfig{
			APIKey:  cfg.Agent.AnthropicAPIKey,
			Model:   cfg.Agent.AnthropicModel,
			Timeout: cfg.Agent.Timeout,
		})
	case config.AgentProviderGemini:
		return infraai.NewGeminiService(infraai.GeminiConfig{
			APIKey:  cfg.Agent.GeminiAPIKey,
			Model:   cfg.Agent.GeminiModel,
			Timeout: cfg.Agent.Timeout,
		})
	default:
		return infraai.NewWebhookAgent(cfg.Agent.WebhookURL, cfg.Agent.Timeout)
	}
}

// newTryOn arma el orquestador del probador virtual. Sin TRYON_API_KEYS devuelve nil
// y el endpoint responde 503.
func newTryOn(ctx context.Context, cfg *config.Config, log *logger.Logger) (*apptryon.Orchestrator, func(), error) {
	noop := func() {}
	if len(cfg.TryOn.APIKeys) == 0 {
		log.Warn().Msg("try-on deshabilitado: TRYON_API_KEYS vacío")
		return nil, noop, nil
	}
	pool, err := apptryon.NewCredentialPool(cfg.TryOn.APIKeys)
	if err != nil {
		return nil, noop, err
	}

	var (
		uploader ports.ImageUploader
		closeFn  = noop
	)
	switch cfg.Upload.Provider {
	case config.UploaderGCS:
		client, err := infratryon.NewGCSClient(ctx, cfg.Upload.GCSCredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		closeFn = func() { _ = client.Close() }
		gcs, err := infratryon.NewGCSUploader(client, infratryon.GCSConfig{
			Bucket:          cfg.Upload.GCSBucket,
			Prefix:          cfg.Upload.GCSPrefix,
			PublicRead:      cfg.Upload.GCSPublicRead,
			CredentialsFile: cfg.Upload.GCSCredentialsFile,
		})
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		uploader = gcs
	default:
		uploader = infratryon.NewImgbbUploader(infratryon.ImgbbConfig{
			APIKey:     cfg.Upload.ImgbbAPIKey,
			Expiration: cfg.Upload.ImgbbExpiration,
			Timeout:    cfg.TryOn.Timeout,
		})
	}

	transformer := infratryon.NewSegmindClient(infratryon.SegmindConfig{
		URL:                cfg.TryOn.SegmindURL,
		Timeout:            cfg.TryOn.Timeout,
		Category:           cfg.TryOn.Category,
		GarmentDescription: cfg.TryOn.GarmentDescription,
	})

	log.Info().
		Int("credentials", pool.Size()).
		Int("max_retries", cfg.TryOn.MaxRetries).
		Str("uploader", cfg.Upload.Provider).
		Msg("try-on habilitado")
	return apptryon.NewOrchestrator(transformer, uploader, pool, apptryon.Options{
		MaxRetries:  cfg.TryOn.MaxRetries,
		Backoff:     cfg.TryOn.RetryBackoff,
		CallTimeout: cfg.TryOn.Timeout,
		Logger:      log.Component("tryon"),
	}), closeFn, nil
}
