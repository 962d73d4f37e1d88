package usecase

import (
	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// CatalogUseCase consultas de solo lectura sobre el catálogo cargado al arranque.
type CatalogUseCase struct {
	engine *catalog.Engine
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(engine *catalog.Engine) *CatalogUseCase {
	return &CatalogUseCase{engine: engine}
}

// Stats número de tiendas y productos cargados.
func (uc *CatalogUseCase) Stats() (shops, products int) {
	snap := uc.engine.Snapshot()
	return snap.ShopCount(), snap.ProductCount()
}

// ListShops lista todas las tiendas con sus categorías.
func (uc *CatalogUseCase) ListShops() *dto.ShopListResponse {
	shops := uc.engine.ListShops()
	items := make([]dto.ShopResponse, 0, len(shops))
	for _, s := range shops {
		items = append(items, toShopResponse(s))
	}
	return &dto.ShopListResponse{Items: items, Total: len(items)}
}

// GetShop obtiene una tienda por ID.
func (uc *CatalogUseCase) GetShop(id string) (*dto.ShopResponse, error) {
	s, err := uc.engine.FindShop(id)
	if err != nil {
		return nil, err
	}
	out := toShopResponse(s)
	return &out, nil
}

// Categories devuelve el saludo inicial de la tienda y sus categorías.
func (uc *CatalogUseCase) Categories(in dto.CategoriesRequest) (*dto.CategoriesResponse, error) {
	s, err := uc.engine.FindShop(in.ShopID)
	if err != nil {
		return nil, err
	}
	return &dto.CategoriesResponse{
		FirstPrompt: s.FirstPrompt,
		Categories:  toCategoryResponses(s.Categories),
	}, nil
}

// GetCategory obtiene una categoría por ID con su esquema de atributos.
func (uc *CatalogUseCase) GetCategory(id string) (*dto.CategoryResponse, error) {
	c, err := uc.engine.FindCategory(id)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// QueryProducts busca productos de una categoría que cumplan todos los filtros.
// A diferencia del motor, una categoría inexistente es domain.ErrNotFound.
func (uc *CatalogUseCase) QueryProducts(in dto.ProductQueryRequest) (*dto.ProductListResponse, error) {
	if _, err := uc.engine.FindCategory(in.CategoryID); err != nil {
		return nil, err
	}
	products := uc.engine.QueryProducts(in.CategoryID, toFilters(in.Filters))
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	p, err := uc.engine.FindProduct(id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

func toFilters(in []dto.FilterRequest) []catalog.Filter {
	if len(in) == 0 {
		return nil
	}
	out := make([]catalog.Filter, 0, len(in))
	for _, f := range in {
		out = append(out, catalog.Filter{AttributeID: f.AttributeID, Value: f.Value})
	}
	return out
}

func toShopResponse(s entity.Shop) dto.ShopResponse {
	return dto.ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Image:       s.Image,
		FirstPrompt: s.FirstPrompt,
		Categories:  toCategoryResponses(s.Categories),
	}
}

func toCategoryResponses(cs []entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

func toCategoryResponse(c entity.Category) dto.CategoryResponse {
	attrs := make([]dto.AttributeResponse, 0, len(c.Attributes))
	for _, a := range c.Attributes {
		attrs = append(attrs, dto.AttributeResponse{
			ID:     a.ID,
			Name:   a.Name,
			Kind:   string(a.Kind),
			Values: a.Values,
		})
	}
	images := c.Images
	if images == nil {
		images = []string{}
	}
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Images:      images,
		ShopID:      c.ShopID,
		Attributes:  attrs,
	}
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		ShopID:      p.ShopID,
		Review: dto.ReviewResponse{
			Rating:  p.Review.Rating,
			Count:   p.Review.Count,
			Average: p.Review.Average,
		},
		Attributes: attrs,
		Metadata:   p.Metadata,
	}
}
