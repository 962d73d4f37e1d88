package tryon

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jhoicas/ShopAssistant-api/internal/domain"
)

// CredentialPool lista ordenada de API keys del servicio de transformación con un cursor
// de rotación compartido entre peticiones. El cursor es atómico: dos peticiones concurrentes
// nunca reservan la misma posición.
type CredentialPool struct {
	keys   []string
	cursor atomic.Uint64
}

// NewCredentialPool construye el pool. Ignora entradas vacías; sin ninguna key devuelve ErrInvalidInput.
func NewCredentialPool(keys []string) (*CredentialPool, error) {
	clean := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			clean = append(clean, k)
		}
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("try-on: se requiere al menos una API key: %w", domain.ErrInvalidInput)
	}
	return &CredentialPool{keys: clean}, nil
}

// Size número de credenciales.
func (p *CredentialPool) Size() int { return len(p.keys) }

// Next devuelve la credencial en la posición actual del cursor y lo avanza una posición
// (módulo el tamaño del pool). La rotación es incondicional: no depende del resultado de la llamada.
func (p *CredentialPool) Next() (index int, key string) {
	n := p.cursor.Add(1) - 1
	index = int(n % uint64(len(p.keys)))
	return index, p.keys[index]
}
