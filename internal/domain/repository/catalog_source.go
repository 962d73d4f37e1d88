package repository

import (
	"context"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
)

// CatalogSource define el puerto de lectura de las colecciones normalizadas del catálogo (DIP).
// Se invoca una sola vez al arranque; el resultado se materializa con catalog.Build.
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.Records, error)
}
