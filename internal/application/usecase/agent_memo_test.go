package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ShopAssistant-api/internal/application/ports"
)

func TestReplyMemo_DescartaElMasAntiguo(t *testing.T) {
	m := newReplyMemo(2)
	m.put("a", ports.AgentReply{Text: "A"})
	m.put("b", ports.AgentReply{Text: "B"})
	m.put("c", ports.AgentReply{Text: "C"})

	_, ok := m.get("a")
	assert.False(t, ok, "la primera entrada sale al superar el límite")
	r, ok := m.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", r.Text)
	assert.Equal(t, 2, m.len())
}

func TestReplyMemo_ReescribirNoDuplica(t *testing.T) {
	m := newReplyMemo(2)
	m.put("a", ports.AgentReply{Text: "A1"})
	m.put("a", ports.AgentReply{Text: "A2"})
	m.put("b", ports.AgentReply{Text: "B"})

	r, ok := m.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", r.Text)
	assert.Equal(t, 2, m.len())
}

func TestReplyMemo_SinLimite(t *testing.T) {
	m := newReplyMemo(0)
	for _, k := range []string{"a", "b", "c", "d"} {
		m.put(k, ports.AgentReply{Text: k})
	}
	assert.Equal(t, 4, m.len())
}

func TestReplyMemo_DesactivadoEsNil(t *testing.T) {
	m := newReplyMemo(-1)
	assert.Nil(t, m)
	m.put("a", ports.AgentReply{Text: "A"})
	_, ok := m.get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.len())
}

func TestMemoKey_DistingueFronteras(t *testing.T) {
	assert.NotEqual(t, memoKey("", []string{"ab", "c"}, nil), memoKey("", []string{"a", "bc"}, nil))
	assert.Equal(t, memoKey("s1", []string{"hola"}, nil), memoKey("s1", []string{"hola"}, nil))
}

func TestMemoKey_IncluyeTiendaYProductos(t *testing.T) {
	prompts := []string{"shirt"}
	a := []json.RawMessage{json.RawMessage(`{"id":"shopA-1"}`)}
	b := []json.RawMessage{json.RawMessage(`{"id":"shopB-9"}`)}

	assert.NotEqual(t, memoKey("", prompts, a), memoKey("", prompts, b))
	assert.NotEqual(t, memoKey("s1", prompts, a), memoKey("s2", prompts, a))
	assert.NotEqual(t,
		memoKey("", prompts, []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}),
		memoKey("", prompts, []json.RawMessage{json.RawMessage(`{"a":1}{"b":2}`)}),
		"los límites entre productos cuentan")
	assert.Equal(t, memoKey("s1", prompts, a), memoKey("s1", prompts, a))
}
