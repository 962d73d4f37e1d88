package http

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ShopAssistant-api/internal/application/dto"
	"github.com/jhoicas/ShopAssistant-api/internal/application/usecase"
)

// attrQueryPrefix prefijo de los filtros en query string: ?attr.color=red
const attrQueryPrefix = "attr."

// CatalogHandler maneja las consultas de tiendas, categorías y productos.
type CatalogHandler struct {
	uc    *usecase.CatalogUseCase
	pdfUC *usecase.CatalogPDFUseCase
}

// NewCatalogHandler construye el handler. pdfUC puede ser nil (folleto deshabilitado).
func NewCatalogHandler(uc *usecase.CatalogUseCase, pdfUC *usecase.CatalogPDFUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc, pdfUC: pdfUC}
}

// ListShops godoc
// @Summary      Listar tiendas
// @Description  Todas las tiendas con sus categorías y esquemas de atributos.
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.ShopListResponse
// @Router       /api/shops [get]
func (h *CatalogHandler) ListShops(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListShops())
}

// GetShop godoc
// @Summary      Obtener tienda por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *CatalogHandler) GetShop(c *fiber.Ctx) error {
	out, err := h.uc.GetShop(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de una tienda
// @Description  Devuelve el saludo inicial (first_prompt) y las categorías de la tienda.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoriesRequest  true  "shop_id"
// @Success      200   {object}  dto.CategoriesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	var in dto.CategoriesRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Categories(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.uc.GetCategory(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CategoryPDF godoc
// @Summary      Folleto PDF de una categoría
// @Description  Genera el catálogo imprimible con los productos que cumplen los filtros attr.<id>=<valor>.
// @Tags         catalog
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/catalog.pdf [get]
func (h *CatalogHandler) CategoryPDF(c *fiber.Ctx) error {
	if h.pdfUC == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "PDF_DISABLED", Message: "la generación de PDF no está configurada",
		})
	}
	data, filename, err := h.pdfUC.DownloadCategoryPDF(c.UserContext(), c.Params("id"), queryFilters(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// QueryProducts godoc
// @Summary      Buscar productos de una categoría
// @Description  Todos los filtros deben cumplirse (AND). Un atributo ausente nunca cumple.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductQueryRequest  true  "category_id y filtros"
// @Success      200   {object}  dto.ProductListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/query [post]
func (h *CatalogHandler) QueryProducts(c *fiber.Ctx) error {
	var in dto.ProductQueryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.QueryProducts(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// queryFilters extrae los filtros attr.<id>=<valor> en orden de id.
func queryFilters(c *fiber.Ctx) []dto.FilterRequest {
	var out []dto.FilterRequest
	for k, v := range c.Queries() {
		if id, ok := strings.CutPrefix(k, attrQueryPrefix); ok && id != "" {
			out = append(out, dto.FilterRequest{AttributeID: id, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttributeID < out[j].AttributeID })
	return out
}
