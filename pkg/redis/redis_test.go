package redis

import (
	"testing"

	"github.com/leyanessantiago/activate-api/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.DefaultRedisConfig()
	cfg.Addr = mr.Addr()
	client, err := Build(cfg)
	require.NoError(t, err)

	ReplaceGlobal(client)
	assert.Same(t, client, Client())
	require.NoError(t, Close())
	assert.Nil(t, Client())
}

func TestBuildUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.DefaultRedisConfig()
	cfg.Addr = addr
	_, err := Build(cfg)
	assert.Error(t, err)
}
