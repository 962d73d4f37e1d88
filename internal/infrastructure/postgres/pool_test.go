package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ShopAssistant-api/pkg/config"
)

func TestPoolConfig_DesdeCamposDB(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "shop", Password: "p@ss word", DBName: "catalog", SSLMode: "disable",
	})
	require.NoError(t, err)

	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss word", pc.ConnConfig.Password, "la contraseña viaja escapada en el DSN")
	assert.Equal(t, int32(catalogMaxConns), pc.MaxConns)
	assert.Equal(t, catalogConnTimeout, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.NotNil(t, pc.AfterConnect)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgresql://u:p@remote.example.com:6543/shop?sslmode=disable",
		Host:        "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "remote.example.com", pc.ConnConfig.Host)
	assert.Equal(t, "shop", pc.ConnConfig.Database)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u@host:notaport/db"})
	assert.Error(t, err)
}
