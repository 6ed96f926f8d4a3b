package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-servicios/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "catalogo-servicios", cfg.App.Name)
	assert.Equal(t, 2*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, "include", cfg.Admin.FaultPolicy)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ADMIN_SESSION_TTL", "15m")
	t.Setenv("ADMIN_OPERATION_TIMEOUT", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 15*time.Minute, cfg.Admin.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.Admin.OperationTimeout)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_PoliticaInvalida(t *testing.T) {
	t.Setenv("ADMIN_FILTER_FAULT_POLICY", "ignorar")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{User: "app", Password: "p@ss:w/rd", Host: "db", Port: 5432, DBName: "catalogo", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/catalogo?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
