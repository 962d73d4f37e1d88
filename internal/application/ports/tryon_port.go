package ports

import "context"

// TransformRequest entradas de la composición: foto del usuario y foto de la prenda.
type TransformRequest struct {
	HumanImageURL   string
	GarmentImageURL string
}

// TransformedImage imagen binaria devuelta por el servicio de transformación.
type TransformedImage struct {
	Data        []byte
	ContentType string
}

// ImageTransformer define el puerto hacia el servicio de try-on virtual.
// apiKey es la credencial elegida por el orquestador para este intento.
type ImageTransformer interface {
	Transform(ctx context.Context, apiKey string, req TransformRequest) (*TransformedImage, error)
}

// ImageUploader define el puerto hacia el hosting público de imágenes.
// Devuelve la URL pública de la imagen subida.
type ImageUploader interface {
	Upload(ctx context.Context, img *TransformedImage, name string) (string, error)
}
