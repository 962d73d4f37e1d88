package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
)

// memoSep separa los prompts en la clave; no aparece en texto escrito por un usuario.
const memoSep = "\x1f"

// replyMemo memo best-effort de respuestas del agente, indexado por tienda, historial y productos.
// maxEntries == 0 no acota; al llenarse descarta la entrada más antigua.
type replyMemo struct {
	mu         sync.RWMutex
	maxEntries int
	entries    map[string]ports.AgentReply
	order      []string
}

func newReplyMemo(maxEntries int) *replyMemo {
	if maxEntries < 0 {
		return nil
	}
	return &replyMemo{maxEntries: maxEntries, entries: make(map[string]ports.AgentReply)}
}

// memoKey identifica una petición: la respuesta incluye productos filtrados por el agente,
// así que la misma conversación con otra lista de productos es otra entrada.
func memoKey(shopID string, prompts []string, products []json.RawMessage) string {
	h := sha256.New()
	for _, p := range products {
		h.Write(p)
		h.Write([]byte(memoSep))
	}
	return shopID + memoSep + hex.EncodeToString(h.Sum(nil)) + memoSep + strings.Join(prompts, memoSep)
}

func (m *replyMemo) get(key string) (ports.AgentReply, bool) {
	if m == nil {
		return ports.AgentReply{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.entries[key]
	return r, ok
}

func (m *replyMemo) put(key string, r ports.AgentReply) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; ok {
		m.entries[key] = r
		return
	}
	if m.maxEntries > 0 && len(m.order) >= m.maxEntries {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = r
	m.order = append(m.order, key)
}

func (m *replyMemo) len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
