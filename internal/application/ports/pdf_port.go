package ports

import (
	"context"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// CatalogPDFGenerator genera el folleto PDF de una categoría con sus productos.
type CatalogPDFGenerator interface {
	GenerateCategoryPDF(ctx context.Context, shop *entity.Shop, category entity.Category, products []entity.Product) ([]byte, error)
}
