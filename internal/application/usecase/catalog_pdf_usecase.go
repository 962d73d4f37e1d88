package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// CatalogPDFUseCase genera el folleto PDF de una categoría con los productos filtrados.
type CatalogPDFUseCase struct {
	engine    *catalog.Engine
	generator ports.CatalogPDFGenerator
}

// NewCatalogPDFUseCase construye el caso de uso inyectando el generador de PDF.
func NewCatalogPDFUseCase(engine *catalog.Engine, generator ports.CatalogPDFGenerator) *CatalogPDFUseCase {
	return &CatalogPDFUseCase{engine: engine, generator: generator}
}

// DownloadCategoryPDF genera el folleto de la categoría.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la categoría no existe.
func (uc *CatalogPDFUseCase) DownloadCategoryPDF(
	ctx context.Context,
	categoryID string,
	filters []dto.FilterRequest,
) (pdfBytes []byte, filename string, err error) {
	category, err := uc.engine.FindCategory(categoryID)
	if err != nil {
		return nil, "", err
	}

	// La tienda es opcional: categorías sin shop_id se imprimen sin cabecera de tienda.
	var shop *entity.Shop
	if category.ShopID != "" {
		if s, err := uc.engine.FindShop(category.ShopID); err == nil {
			shop = &s
		}
	}

	products := uc.engine.QueryProducts(category.ID, toFilters(filters))
	pdfBytes, err = uc.generator.GenerateCategoryPDF(ctx, shop, category, products)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar catálogo: %w", err)
	}
	return pdfBytes, fmt.Sprintf("catalogo_%s.pdf", category.ID), nil
}
