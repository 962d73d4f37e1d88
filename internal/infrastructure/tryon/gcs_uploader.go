package tryon

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que GCSUploader implementa ImageUploader.
var _ ports.ImageUploader = (*GCSUploader)(nil)

const gcsService = "gcs"

// GCSConfig destino de las imágenes en Cloud Storage.
type GCSConfig struct {
	Bucket          string
	Prefix          string
	PublicRead      bool   // aplica el ACL predefinido publicRead al objeto
	CredentialsFile string // vacío = Application Default Credentials
	PublicBaseURL   string // vacío = https://storage.googleapis.com
}

// GCSUploader publica imágenes como objetos de un bucket de Cloud Storage.
type GCSUploader struct {
	client *storage.Client
	cfg    GCSConfig
}

// NewGCSClient crea el cliente de Cloud Storage. El llamador es dueño del Close.
func NewGCSClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: crear cliente: %w", gcsService, err)
	}
	return c, nil
}

// NewGCSUploader construye el uploader sobre un cliente existente.
func NewGCSUploader(client *storage.Client, cfg GCSConfig) (*GCSUploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%s: GCS_BUCKET es obligatorio: %w", gcsService, domain.ErrInvalidInput)
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "https://storage.googleapis.com"
	}
	return &GCSUploader{client: client, cfg: cfg}, nil
}

// Upload escribe el objeto <prefix>/<name><ext> y devuelve su URL pública.
func (u *GCSUploader) Upload(ctx context.Context, img *ports.TransformedImage, name string) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("%s: imagen vacía: %w", gcsService, domain.ErrInvalidInput)
	}
	object := ObjectName(u.cfg.Prefix, name, img.ContentType)

	w := u.client.Bucket(u.cfg.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = img.ContentType
	w.CacheControl = "public, max-age=600"
	if u.cfg.PublicRead {
		w.PredefinedACL = "publicRead"
	}
	if _, err := w.Write(img.Data); err != nil {
		_ = w.Close()
		return "", httpclient.Classify(ctx, gcsService, err)
	}
	if err := w.Close(); err != nil {
		return "", httpclient.Classify(ctx, gcsService, err)
	}
	return PublicURL(u.cfg.PublicBaseURL, u.cfg.Bucket, object), nil
}

// ObjectName ruta del objeto dentro del bucket.
func ObjectName(prefix, name, contentType string) string {
	return path.Join(strings.Trim(prefix, "/"), name+extensionFor(contentType))
}

// PublicURL URL pública de un objeto, con cada segmento escapado.
func PublicURL(baseURL, bucket, object string) string {
	segs := strings.Split(object, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(baseURL, "/") + "/" + bucket + "/" + strings.Join(segs, "/")
}
