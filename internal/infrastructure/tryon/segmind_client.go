// Package tryon implementa los adaptadores del probador virtual: el servicio de transformación
// de imágenes (Segmind IDM-VTON) y los destinos de publicación del resultado (imgbb, GCS).
package tryon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/httpclient"
)

// Verificar en tiempo de compilación que SegmindClient implementa ImageTransformer.
var _ ports.ImageTransformer = (*SegmindClient)(nil)

const (
	segmindURL     = "https://api.segmind.com/v1/idm-vton"
	segmindService = "segmind"

	// maxImageBytes tamaño máximo aceptado de la imagen generada.
	maxImageBytes = 20 << 20
)

// SegmindConfig parámetros del cliente. URL vacío usa la API pública.
// Category y GarmentDescription son opcionales y se omiten del cuerpo si están vacíos.
type SegmindConfig struct {
	URL                string
	Timeout            time.Duration
	Category           string // upper_body | lower_body | dresses
	GarmentDescription string
}

// SegmindClient llama al modelo IDM-VTON con parámetros de generación fijos.
type SegmindClient struct {
	url        string
	cfg        SegmindConfig
	httpClient *http.Client
}

// NewSegmindClient construye el cliente. Timeout <= 0 usa 120 s.
func NewSegmindClient(cfg SegmindConfig) *SegmindClient {
	if cfg.URL == "" {
		cfg.URL = segmindURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &SegmindClient{
		url:        cfg.URL,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type segmindRequest struct {
	Crop       bool   `json:"crop"`
	Seed       int    `json:"seed"`
	Steps      int    `json:"steps"`
	Category   string `json:"category,omitempty"`
	ForceDC    bool   `json:"force_dc"`
	HumanImg   string `json:"human_img"`
	GarmImg    string `json:"garm_img"`
	MaskOnly   bool   `json:"mask_only"`
	GarmentDes string `json:"garment_des,omitempty"`
}

// Transform compone la prenda sobre la foto. La respuesta exitosa es la imagen binaria.
func (c *SegmindClient) Transform(ctx context.Context, apiKey string, in ports.TransformRequest) (*ports.TransformedImage, error) {
	body, err := json.Marshal(segmindRequest{
		Crop:       false,
		Seed:       42,
		Steps:      30,
		Category:   c.cfg.Category,
		ForceDC:    false,
		HumanImg:   in.HumanImageURL,
		GarmImg:    in.GarmentImageURL,
		MaskOnly:   false,
		GarmentDes: c.cfg.GarmentDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: serializar request: %w", segmindService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", segmindService, err)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, httpclient.Classify(ctx, segmindService, err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(segmindService, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, httpclient.Classify(ctx, segmindService, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: imagen vacía: %w", segmindService, domain.ErrUpstreamBadStatus)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%s: imagen supera %d bytes: %w", segmindService, maxImageBytes, domain.ErrUpstreamBadStatus)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return &ports.TransformedImage{Data: data, ContentType: ct}, nil
}
