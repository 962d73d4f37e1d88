package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/ShopAssistant-api/internal/domain/catalog"
	"github.com/jhoicas/ShopAssistant-api/internal/domain/repository"
	"github.com/jhoicas/ShopAssistant-api/pkg/config"
)

const (
	shopsCollection              = "shops"
	categoriesCollection         = "categories"
	attributesCollection         = "attributes"
	categoryAttributesCollection = "category_attributes"
	productsCollection           = "products"
)

// NewClient abre la conexión y verifica con un ping.
func NewClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client, nil
}

var _ repository.CatalogSource = (*CatalogSource)(nil)

// CatalogSource lee una colección por tabla del catálogo. El _id de cada documento es el id del registro.
type CatalogSource struct {
	db *mongo.Database
}

// NewCatalogSource construye el adaptador sobre la base indicada.
func NewCatalogSource(client *mongo.Client, database string) *CatalogSource {
	return &CatalogSource{db: client.Database(database)}
}

type shopDoc struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Description string   `bson:"description"`
	Image       string   `bson:"image"`
	FirstPrompt string   `bson:"first_prompt"`
	CategoryIDs []string `bson:"category_ids"`
}

type categoryDoc struct {
	ID           string   `bson:"_id"`
	Name         string   `bson:"name"`
	Description  string   `bson:"description"`
	Image        string   `bson:"image"`
	Images       []string `bson:"images"`
	ShopID       string   `bson:"shop_id"`
	AttributeIDs []string `bson:"attribute_ids"`
}

type attributeDoc struct {
	ID     string   `bson:"_id"`
	Name   string   `bson:"name"`
	Kind   string   `bson:"kind"`
	Values []string `bson:"values"`
}

type categoryAttributesDoc struct {
	CategoryID   string   `bson:"_id"`
	AttributeIDs []string `bson:"attribute_ids"`
}

type reviewDoc struct {
	Rating  float64 `bson:"rating"`
	Count   int     `bson:"count"`
	Average float64 `bson:"average"`
}

type productDoc struct {
	ID          string        `bson:"_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Price       bson.RawValue `bson:"price"`
	Image       string        `bson:"image"`
	CategoryID  string        `bson:"category_id"`
	ShopID      string        `bson:"shop_id"`
	Position    int           `bson:"position"`
	Review      *reviewDoc    `bson:"review"`
	Attributes  bson.M        `bson:"attributes"`
	Metadata    bson.M        `bson:"metadata"`
}

// Load lee las cinco colecciones; las ausentes se leen como vacías.
func (s *CatalogSource) Load(ctx context.Context) (*catalog.Records, error) {
	rec := &catalog.Records{
		Shops:              map[string]catalog.ShopRecord{},
		Categories:         map[string]catalog.CategoryRecord{},
		Attributes:         map[string]catalog.AttributeRecord{},
		CategoryAttributes: map[string][]string{},
	}

	var shops []shopDoc
	if err := s.findAll(ctx, shopsCollection, nil, &shops); err != nil {
		return nil, err
	}
	for _, d := range shops {
		rec.Shops[d.ID] = catalog.ShopRecord{
			ID: d.ID, Name: d.Name, Description: d.Description, Image: d.Image,
			FirstPrompt: d.FirstPrompt, CategoryIDs: d.CategoryIDs,
		}
	}

	var cats []categoryDoc
	if err := s.findAll(ctx, categoriesCollection, nil, &cats); err != nil {
		return nil, err
	}
	for _, d := range cats {
		rec.Categories[d.ID] = catalog.CategoryRecord{
			ID: d.ID, Name: d.Name, Description: d.Description, Image: d.Image,
			Images: d.Images, ShopID: d.ShopID, AttributeIDs: d.AttributeIDs,
		}
	}

	var attrs []attributeDoc
	if err := s.findAll(ctx, attributesCollection, nil, &attrs); err != nil {
		return nil, err
	}
	for _, d := range attrs {
		rec.Attributes[d.ID] = catalog.AttributeRecord{ID: d.ID, Name: d.Name, Kind: d.Kind, Values: d.Values}
	}

	var links []categoryAttributesDoc
	if err := s.findAll(ctx, categoryAttributesCollection, nil, &links); err != nil {
		return nil, err
	}
	for _, d := range links {
		rec.CategoryAttributes[d.CategoryID] = d.AttributeIDs
	}

	var products []productDoc
	sort := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	if err := s.findAll(ctx, productsCollection, sort, &products); err != nil {
		return nil, err
	}
	rec.Products = make([]catalog.ProductRecord, 0, len(products))
	for _, d := range products {
		p, err := toProductRecord(d)
		if err != nil {
			return nil, err
		}
		rec.Products = append(rec.Products, p)
	}
	return rec, nil
}

func (s *CatalogSource) findAll(ctx context.Context, name string, opts *options.FindOptions, dst any) error {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := s.db.Collection(name).Find(ctx, bson.D{}, findOpts...)
	if err != nil {
		return fmt.Errorf("mongodb find %s: %w", name, err)
	}
	if err := cur.All(ctx, dst); err != nil {
		return fmt.Errorf("mongodb decode %s: %w", name, err)
	}
	return nil
}

func toProductRecord(d productDoc) (catalog.ProductRecord, error) {
	price, err := decodePrice(d.Price)
	if err != nil {
		return catalog.ProductRecord{}, fmt.Errorf("mongodb: producto %s: %w", d.ID, err)
	}
	p := catalog.ProductRecord{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Image:       d.Image,
		CategoryID:  d.CategoryID,
		ShopID:      d.ShopID,
		Attributes:  normalizeMap(d.Attributes),
		Metadata:    normalizeMap(d.Metadata),
	}
	if d.Review != nil {
		p.Review = &catalog.ReviewRecord{Rating: d.Review.Rating, Count: d.Review.Count, Average: d.Review.Average}
	}
	return p, nil
}

// decodePrice acepta double, int32, int64, decimal128 o string; ausente es cero.
func decodePrice(v bson.RawValue) (decimal.Decimal, error) {
	switch v.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return decimal.Zero, nil
	case bsontype.Double:
		return decimal.NewFromFloat(v.Double()), nil
	case bsontype.Int32:
		return decimal.NewFromInt32(v.Int32()), nil
	case bsontype.Int64:
		return decimal.NewFromInt(v.Int64()), nil
	case bsontype.Decimal128:
		return decimal.NewFromString(v.Decimal128().String())
	case bsontype.String:
		return decimal.NewFromString(v.StringValue())
	default:
		return decimal.Zero, fmt.Errorf("precio de tipo %s no soportado", v.Type)
	}
}

// normalizeMap convierte los tipos del driver (primitive.A, primitive.D, primitive.M)
// en []any y map[string]any para que el motor del catálogo los trate como JSON.
func normalizeMap(m bson.M) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case primitive.M:
		return normalizeMap(bson.M(t))
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}
