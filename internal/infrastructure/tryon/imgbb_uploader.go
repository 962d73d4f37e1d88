package tryon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que ImgbbUploader implementa ImageUploader.
var _ ports.ImageUploader = (*ImgbbUploader)(nil)

const (
	imgbbURL     = "https://api.imgbb.com/1/upload"
	imgbbService = "imgbb"
)

// ImgbbConfig parámetros del uploader. Expiration en segundos; 0 = sin caducidad.
type ImgbbConfig struct {
	APIKey     string
	Expiration int
	URL        string
	Timeout    time.Duration
}

// ImgbbUploader publica imágenes en imgbb y devuelve la URL directa.
type ImgbbUploader struct {
	cfg        ImgbbConfig
	httpClient *http.Client
}

// NewImgbbUploader construye el uploader.
func NewImgbbUploader(cfg ImgbbConfig) *ImgbbUploader {
	if cfg.URL == "" {
		cfg.URL = imgbbURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &ImgbbUploader{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

type imgbbResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload sube la imagen como campo multipart "image".
func (u *ImgbbUploader) Upload(ctx context.Context, img *ports.TransformedImage, name string) (string, error) {
	if u.cfg.APIKey == "" {
		return "", fmt.Errorf("%s: IMGBB_API_KEY no configurado: %w", imgbbService, domain.ErrUpstreamUnavailable)
	}
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("%s: imagen vacía: %w", imgbbService, domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", name+extensionFor(img.ContentType))
	if err != nil {
		return "", fmt.Errorf("%s: crear multipart: %w", imgbbService, err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", fmt.Errorf("%s: escribir multipart: %w", imgbbService, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: cerrar multipart: %w", imgbbService, err)
	}

	q := url.Values{}
	q.Set("key", u.cfg.APIKey)
	if u.cfg.Expiration > 0 {
		q.Set("expiration", strconv.Itoa(u.cfg.Expiration))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.URL+"?"+q.Encode(), &buf)
	if err != nil {
		return "", fmt.Errorf("%s: crear HTTP request: %w", imgbbService, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", httpclient.Classify(ctx, imgbbService, err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(imgbbService, resp); err != nil {
		return "", err
	}

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", httpclient.Classify(ctx, imgbbService, err)
	}
	var out imgbbResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", fmt.Errorf("%s: deserializar respuesta: %w: %w", imgbbService, domain.ErrUpstreamBadStatus, err)
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("%s: respuesta sin data.url: %w", imgbbService, domain.ErrUpstreamBadStatus)
	}
	return out.Data.URL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
