package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
)

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(config.PostgresConfig{
		DSN:             "postgres://portfolio:pw@db.internal:5432/portfolio?sslmode=disable",
		MaxOpen:         8,
		MaxIdle:         20,
		ConnMaxLifetime: 15 * time.Minute,
	}, "portfolio-api")
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(8), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "portfolio-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
}

func TestPoolConfig_RejectsBadDSN(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{DSN: "postgres://%zz"}, "")
	assert.Error(t, err)
}
