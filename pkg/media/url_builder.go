package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leyanessantiago/activate-api/config"
	"github.com/leyanessantiago/activate-api/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// URLBuilder 把数据库中的头像/图片引用解析成客户端可直接访问的 URL
// 只拼 URL，不访问对象存储（预签名为本地计算，Location 已配置时不会查询桶区域）
type URLBuilder struct {
	cfg     config.MediaConfig
	client  *minio.Client
	builtin map[string]struct{}
}

// NewURLBuilder 根据配置创建 URL 构造器
func NewURLBuilder(cfg config.MediaConfig) (*URLBuilder, error) {
	if strings.TrimSpace(cfg.BucketName) == "" {
		return nil, errors.New("media bucketName is empty")
	}

	b := &URLBuilder{
		cfg:     cfg,
		builtin: make(map[string]struct{}, len(cfg.BuiltinAvatars)),
	}
	for _, name := range cfg.BuiltinAvatars {
		b.builtin[name] = struct{}{}
	}

	if cfg.Presign {
		if strings.TrimSpace(cfg.Endpoint) == "" {
			return nil, errors.New("media endpoint is empty")
		}
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Location,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		b.client = client
	}
	return b, nil
}

// AvatarURL 解析头像
// 内置头像名（user1..user4）原样返回，由客户端使用本地资源渲染
func (b *URLBuilder) AvatarURL(ctx context.Context, ref string) string {
	if _, ok := b.builtin[ref]; ok {
		return ref
	}
	return b.resolve(ctx, b.cfg.AvatarPrefix, ref)
}

// ImageURL 解析活动封面图
func (b *URLBuilder) ImageURL(ctx context.Context, ref string) string {
	return b.resolve(ctx, b.cfg.ImagePrefix, ref)
}

func (b *URLBuilder) resolve(ctx context.Context, prefix, ref string) string {
	if ref == "" {
		return ""
	}
	// 第三方登录头像等已经是绝对地址
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	objectName := objectName(prefix, ref)
	if b.client != nil {
		u, err := b.client.PresignedGetObject(ctx, b.cfg.BucketName, objectName, b.cfg.PresignExpire, nil)
		if err == nil {
			return u.String()
		}
		logger.Warn(ctx, "生成预签名 URL 失败，回退为公开地址",
			logger.String("object", objectName),
			logger.ErrorField("error", err),
		)
	}
	return b.publicURL(objectName)
}

// publicURL 生成公开访问 URL
func (b *URLBuilder) publicURL(objectName string) string {
	baseURL := strings.TrimSuffix(b.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", baseURL, b.cfg.BucketName, objectName)
}

func objectName(prefix, ref string) string {
	ref = strings.TrimPrefix(ref, "/")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" || strings.HasPrefix(ref, prefix+"/") {
		return ref
	}
	return prefix + "/" + ref
}
