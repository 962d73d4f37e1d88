package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio y tamaño del catálogo cargado.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Shops    int    `json:"shops"`
	Products int    `json:"products"`
}

// APIInfoResponse descripción de la API (endpoint raíz).
type APIInfoResponse struct {
	Success bool        `json:"success"`
	Data    APIInfoData `json:"data"`
}

// APIInfoData mensaje, versión y mapa de endpoints.
type APIInfoData struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
