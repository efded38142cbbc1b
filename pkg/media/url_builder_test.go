package media

import (
	"context"
	"net/url"
	"testing"

	"github.com/leyanessantiago/activate-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLBuilderPublic(t *testing.T) {
	b, err := NewURLBuilder(config.DefaultMediaConfig())
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"builtin avatar", b.AvatarURL(ctx, "user3"), "user3"},
		{"stored avatar", b.AvatarURL(ctx, "abc.png"), "http://localhost:9000/activate/auth/avatar/abc.png"},
		{"avatar already prefixed", b.AvatarURL(ctx, "auth/avatar/abc.png"), "http://localhost:9000/activate/auth/avatar/abc.png"},
		{"absolute avatar", b.AvatarURL(ctx, "https://cdn.example.com/a.png"), "https://cdn.example.com/a.png"},
		{"empty avatar", b.AvatarURL(ctx, ""), ""},
		{"event image", b.ImageURL(ctx, "e1.jpg"), "http://localhost:9000/activate/events/image/e1.jpg"},
		{"builtin name is not special for images", b.ImageURL(ctx, "user1"), "http://localhost:9000/activate/events/image/user1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestURLBuilderPresign(t *testing.T) {
	cfg := config.DefaultMediaConfig()
	cfg.Endpoint = "localhost:9000"
	cfg.Presign = true
	b, err := NewURLBuilder(cfg)
	require.NoError(t, err)

	raw := b.ImageURL(context.Background(), "e1.jpg")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/activate/events/image/e1.jpg", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	// 内置头像不签名
	assert.Equal(t, "user1", b.AvatarURL(context.Background(), "user1"))
}

func TestNewURLBuilderValidation(t *testing.T) {
	cfg := config.DefaultMediaConfig()
	cfg.BucketName = ""
	_, err := NewURLBuilder(cfg)
	assert.Error(t, err)
}
