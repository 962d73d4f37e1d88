package tryon_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
	"github.com/jhoicas/ShopAssistant-api/internal/domain"
	"github.com/jhoicas/ShopAssistant-api/internal/infrastructure/tryon"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

// ──────────────────────────────────────────────────────────────────────────────
// SegmindClient
// ──────────────────────────────────────────────────────────────────────────────

func TestSegmind_EnviaParametrosFijos(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SG_key1", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	c := tryon.NewSegmindClient(tryon.SegmindConfig{URL: srv.URL, Timeout: time.Second})
	img, err := c.Transform(context.Background(), "SG_key1", ports.TransformRequest{
		HumanImageURL: "https://u/me.png", GarmentImageURL: "https://u/tee.png",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("jpeg-bytes"), img.Data)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, map[string]any{
		"crop": false, "seed": 42.0, "steps": 30.0, "force_dc": false,
		"human_img": "https://u/me.png", "garm_img": "https://u/tee.png", "mask_only": false,
	}, got, "sin category ni garment_des cuando no se configuran")
}

func TestSegmind_DetectaTipoSinCabecera(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	img, err := tryon.NewSegmindClient(tryon.SegmindConfig{URL: srv.URL}).
		Transform(context.Background(), "k", ports.TransformRequest{HumanImageURL: "a", GarmentImageURL: "b"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestSegmind_ClasificaErrores(t *testing.T) {
	t.Run("estado", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "insufficient credits", http.StatusPaymentRequired)
		}))
		defer srv.Close()

		_, err := tryon.NewSegmindClient(tryon.SegmindConfig{URL: srv.URL}).
			Transform(context.Background(), "k", ports.TransformRequest{})
		assert.ErrorIs(t, err, domain.ErrUpstreamBadStatus)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		_, err := tryon.NewSegmindClient(tryon.SegmindConfig{URL: srv.URL, Timeout: 20 * time.Millisecond}).
			Transform(context.Background(), "k", ports.TransformRequest{})
		assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
	})

	t.Run("cuerpo vacío", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		_, err := tryon.NewSegmindClient(tryon.SegmindConfig{URL: srv.URL}).
			Transform(context.Background(), "k", ports.TransformRequest{})
		assert.ErrorIs(t, err, domain.ErrUpstreamBadStatus)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// ImgbbUploader
// ──────────────────────────────────────────────────────────────────────────────

func TestImgbb_SubeMultipartYDevuelveURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KEY", r.URL.Query().Get("key"))
		assert.Equal(t, "600", r.URL.Query().Get("expiration"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, pngHeader, data)
		assert.Equal(t, "req-1.png", hdr.Filename)

		_, _ = w.Write([]byte(`{"data":{"url":"https://i.ibb.co/x/req-1.png"},"success":true,"status":200}`))
	}))
	defer srv.Close()

	u := tryon.NewImgbbUploader(tryon.ImgbbConfig{APIKey: "KEY", Expiration: 600, URL: srv.URL})
	got, err := u.Upload(context.Background(), &ports.TransformedImage{Data: pngHeader, ContentType: "image/png"}, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/x/req-1.png", got)
}

func TestImgbb_Errores(t *testing.T) {
	img := &ports.TransformedImage{Data: []byte("x"), ContentType: "image/jpeg"}

	_, err := tryon.NewImgbbUploader(tryon.ImgbbConfig{}).Upload(context.Background(), img, "n")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable, "sin API key")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{},"success":false}`))
	}))
	defer srv.Close()
	_, err = tryon.NewImgbbUploader(tryon.ImgbbConfig{APIKey: "k", URL: srv.URL}).Upload(context.Background(), img, "n")
	assert.ErrorIs(t, err, domain.ErrUpstreamBadStatus, "respuesta sin data.url")

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusBadRequest)
	}))
	defer bad.Close()
	_, err = tryon.NewImgbbUploader(tryon.ImgbbConfig{APIKey: "k", URL: bad.URL}).Upload(context.Background(), img, "n")
	assert.ErrorIs(t, err, domain.ErrUpstreamBadStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// GCS
// ──────────────────────────────────────────────────────────────────────────────

func TestGCS_NombreYURLPublica(t *testing.T) {
	assert.Equal(t, "tryon/abc.png", tryon.ObjectName("/tryon/", "abc", "image/png"))
	assert.Equal(t, "abc.jpg", tryon.ObjectName("", "abc", "image/jpeg"))
	assert.Equal(t, "https://storage.googleapis.com/bucket/tryon/a%20b.jpg",
		tryon.PublicURL("https://storage.googleapis.com/", "bucket", "tryon/a b.jpg"))
}

func TestGCS_BucketObligatorio(t *testing.T) {
	_, err := tryon.NewGCSUploader(nil, tryon.GCSConfig{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
