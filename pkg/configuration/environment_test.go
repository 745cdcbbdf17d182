package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Load(t *testing.T) {
	t.Setenv("DB_NAME", "awards_test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")

	c := &Configuration{}
	require.NoError(t, c.load(nil))

	assert.Equal(t, "awards_test", c.Database.Name)
	assert.Contains(t, c.Database.Opts, "host=db.internal")
	assert.Contains(t, c.Database.Opts, "dbname=awards_test")
	assert.Equal(t, "debug", c.LogLevel)
	require.NotNil(t, c.Logger())
}

func TestConfiguration_Defaults(t *testing.T) {
	c := &Configuration{}
	require.NoError(t, c.load(nil))

	assert.Equal(t, "localhost:8000", c.Address)
	assert.Equal(t, "/debug/prometheus", c.Prometheus.Path)
	assert.False(t, c.Prometheus.Enabled)
}

func TestLoadEnv_MissingFilesAreSkipped(t *testing.T) {
	n, err := LoadEnv([]string{"does-not-exist.env"})
	require.NoError(t, err)
	assert.Zero(t, n)
}
