package util

import (
	"testing"
	"time"

	"github.com/leyanessantiago/activate-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("u1")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserUUID)
}

func TestParseTokenErrors(t *testing.T) {
	orig := jwtCfg
	t.Cleanup(func() { InitJWT(orig) })

	expiredCfg := orig
	expiredCfg.Expire = -time.Minute
	InitJWT(expiredCfg)
	expired, err := GenerateToken("u1")
	require.NoError(t, err)

	otherCfg := orig
	otherCfg.Secret = "another-secret"
	InitJWT(otherCfg)
	foreign, err := GenerateToken("u1")
	require.NoError(t, err)

	InitJWT(orig)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired", expired, ErrTokenExpired},
		{"wrong secret", foreign, ErrTokenInvalid},
		{"garbage", "not-a-token", ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNextIDIncreases(t *testing.T) {
	require.NoError(t, InitSnowflake(config.Default().Server.NodeID))
	a := NextID()
	b := NextID()
	assert.Greater(t, b, a)
}
