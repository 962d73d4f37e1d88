package entity

// CategoryNotDetermined valor centinela de SelectedCategory cuando no se extrajo categoría.
const CategoryNotDetermined = "Not determined yet"

// Recommendation resultado de descomponer una respuesta del asistente.
// Es derivado y vive solo durante la petición.
//
// Para saber si hubo recomendación se consulta IsFinalRecommendation, no el contenido de los campos:
// un centinela y un valor extraído igual al centinela se distinguen con CategoryExtracted/ConfidenceExtracted.
type Recommendation struct {
	ChatMessage           string
	SelectedCategory      string
	ConfidencePercent     int // 0–100
	IsFinalRecommendation bool
	CategoryExtracted     bool
	ConfidenceExtracted   bool
	FullResponse          string
}

// ConfidenceLevel clasifica la confianza: high (>=75), medium (>=50) o low.
func (r Recommendation) ConfidenceLevel() string {
	switch {
	case r.ConfidencePercent >= 75:
		return "high"
	case r.ConfidencePercent >= 50:
		return "medium"
	default:
		return "low"
	}
}
