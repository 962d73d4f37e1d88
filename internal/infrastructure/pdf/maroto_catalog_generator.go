// Package pdf genera el folleto PDF de una categoría del catálogo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + descripción  │  Categoría + N° productos   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ATRIBUTOS: nombre: valores admitidos                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Atributos | Reseñas | Precio              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de la imagen de la categoría + leyenda           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCatalogGenerator implementa ports.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct{}

var _ ports.CatalogPDFGenerator = (*MarotoCatalogGenerator)(nil)

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// GenerateCategoryPDF genera el PDF y devuelve sus bytes. shop puede ser nil.
func (g *MarotoCatalogGenerator) GenerateCategoryPDF(
	_ context.Context,
	shop *entity.Shop,
	category entity.Category,
	products []entity.Product,
) ([]byte, error) {
	author := "Catálogo"
	if shop != nil {
		author = shop.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo "+category.Name, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shop, category, len(products)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if len(category.Attributes) > 0 {
		m.AddRows(attributeRows(category.Attributes)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	if len(products) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No hay productos que cumplan los filtros.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(productRows(category, products)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(category)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda (izq) y categoría + cantidad de productos (der).
func headerRow(shop *entity.Shop, category entity.Category, count int) core.Row {
	shopName, shopDesc := "Catálogo", ""
	if shop != nil {
		shopName, shopDesc = shop.Name, shop.Description
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(shopDesc, " "), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CATÁLOGO DE PRODUCTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(category.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("%d productos", count), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// attributeRows: esquema de atributos de la categoría.
func attributeRows(attrs []entity.Attribute) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ATRIBUTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, a := range attrs {
		values := "libre"
		if len(a.Values) > 0 {
			values = strings.Join(a.Values, ", ")
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s (%s): %s", a.Name, a.Kind, values), props.Text{
				Size: 8, Color: colorGray, Left: 2,
			}),
		)))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Atributos", 4, align.Left),
		h("Reseñas", 2, align.Center),
		h("Precio", 2, align.Right),
	)
}

// productRows: una fila por producto.
func productRows(category entity.Category, products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(9).Add(
			col.New(4).Add(text.New(
				p.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				attributeSummary(category, p),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				reviewSummary(p.Review),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatPrice(p.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: QR hacia la imagen de la categoría y leyenda.
func footerRows(category entity.Category) []core.Row {
	var rows []core.Row
	target := category.Image
	if target == "" && len(category.Images) > 0 {
		target = category.Images[0]
	}
	if target != "" {
		rows = append(rows, row.New(40).Add(
			col.New(3).Add(code.NewQr(target, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Escanea el código QR para ver\nla galería de la categoría.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Precios y disponibilidad sujetos a cambio sin previo aviso.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// attributeSummary "Color: red · Size: S,M" en el orden del esquema; los atributos fuera
// del esquema se listan al final por ID.
func attributeSummary(category entity.Category, p entity.Product) string {
	var parts []string
	seen := make(map[string]bool, len(category.Attributes))
	for i := range category.Attributes {
		def := &category.Attributes[i]
		seen[def.ID] = true
		raw, ok := p.Attributes[def.ID]
		if !ok {
			continue
		}
		if v, ok := catalog.ResolveAttribute(def, raw); ok {
			parts = append(parts, def.Name+": "+v.String())
		}
	}
	extra := make([]string, 0)
	for id := range p.Attributes {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		if v, ok := catalog.ResolveAttribute(nil, p.Attributes[id]); ok {
			parts = append(parts, id+": "+v.String())
		}
	}
	return nonEmpty(strings.Join(parts, " · "), "—")
}

func reviewSummary(r entity.Review) string {
	if r.Count == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f (%d)", r.Rating, r.Count)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatPrice separa miles con punto y usa coma decimal solo si hay centavos.
// Ej: 25000 → "25.000", 1999.5 → "1.999,50"
func formatPrice(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign, d = "-", d.Abs()
	}
	whole := d.Truncate(0)
	out := sign + formatMoney(whole.StringFixed(0))
	if cents := d.Sub(whole); !cents.IsZero() {
		out += "," + strings.TrimPrefix(cents.StringFixed(2), "0.")
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
