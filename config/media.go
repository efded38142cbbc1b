package config

import "time"

// MediaConfig 头像/活动图片的访问地址配置
// 文件本身由上传服务写入对象存储，这里只负责拼出可访问的 URL
type MediaConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`               // MinIO 服务地址，如 minio:9000
	AccessKeyID     string `json:"accessKeyId" yaml:"accessKeyId"`         // Access Key（仅预签名模式需要）
	SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"` // Secret Key（仅预签名模式需要）
	UseSSL          bool   `json:"useSSL" yaml:"useSSL"`
	BucketName      string `json:"bucketName" yaml:"bucketName"`
	Location        string `json:"location" yaml:"location"` // Bucket 区域，预签名时避免额外的区域查询

	BaseURL      string `json:"baseUrl" yaml:"baseUrl"`           // 公开访问的基础 URL（CDN 或网关）
	AvatarPrefix string `json:"avatarPrefix" yaml:"avatarPrefix"` // 头像对象前缀
	ImagePrefix  string `json:"imagePrefix" yaml:"imagePrefix"`   // 活动图片对象前缀

	Presign       bool          `json:"presign" yaml:"presign"`             // 私有桶时返回预签名 URL
	PresignExpire time.Duration `json:"presignExpire" yaml:"presignExpire"` // 预签名有效期

	BuiltinAvatars []string `json:"builtinAvatars" yaml:"builtinAvatars"` // 内置头像名，原样返回给客户端渲染
}

// DefaultMediaConfig 返回本地开发的默认配置
func DefaultMediaConfig() MediaConfig {
	return MediaConfig{
		Endpoint:        "minio:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		BucketName:      "activate",
		Location:        "us-east-1",
		BaseURL:         "http://localhost:9000",
		AvatarPrefix:    "auth/avatar",
		ImagePrefix:     "events/image",
		PresignExpire:   time.Hour,
		BuiltinAvatars:  []string{"user1", "user2", "user3", "user4"},
	}
}
