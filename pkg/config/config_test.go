package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: postgres
  host: db
  port: 5432
  username: u
  password: p
  database: shop
auth:
  secret: s3cret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "order-query", cfg.Server.Name)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "N", cfg.Waybill.CurrencyPrefix)
	assert.Equal(t, []string{"Foods & Infrastructure Ltd.", "Lagos HQ, Nigeria"}, cfg.Waybill.Tagline)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable TimeZone=UTC", cfg.Database.DSN())
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
auth:
  secret: from-file
`)
	t.Setenv("MARKETPLACE_AUTH_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: oracle
auth:
  secret: x
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	c := DatabaseConfig{Driver: "mysql", Host: "h", Port: 3306, Username: "u", Password: "p", Database: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true", c.DSN())
}

func TestSQLiteDSN(t *testing.T) {
	c := DatabaseConfig{Driver: "sqlite", Database: "file::memory:"}
	assert.Equal(t, "file::memory:", c.DSN())
}
