package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀，例如 ACTIVATE_MYSQL_DSN 覆盖 mysql.dsn
const EnvPrefix = "ACTIVATE"

// Config 服务全量配置
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Logger    LoggerConfig    `json:"logger" yaml:"logger"`
	MySQL     MySQLConfig     `json:"mysql" yaml:"mysql"`
	Redis     RedisConfig     `json:"redis" yaml:"redis"`
	Kafka     KafkaConfig     `json:"kafka" yaml:"kafka"`
	Async     AsyncConfig     `json:"async" yaml:"async"`
	Media     MediaConfig     `json:"media" yaml:"media"`
	JWT       JWTConfig       `json:"jwt" yaml:"jwt"`
	RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
	Feed      FeedConfig      `json:"feed" yaml:"feed"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`                       // 监听地址
	Mode            string        `json:"mode" yaml:"mode"`                       // gin 模式: debug/release/test
	RequestTimeout  time.Duration `json:"requestTimeout" yaml:"requestTimeout"`   // 单请求超时
	ReadTimeout     time.Duration `json:"readTimeout" yaml:"readTimeout"`         // 读超时
	WriteTimeout    time.Duration `json:"writeTimeout" yaml:"writeTimeout"`       // 写超时
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅退出等待时间
	NodeID          int64         `json:"nodeId" yaml:"nodeId"`                   // snowflake 节点号（多实例部署时必须不同）
}

// JWTConfig Token 校验配置
type JWTConfig struct {
	Secret string        `json:"secret" yaml:"secret"`
	Issuer string        `json:"issuer" yaml:"issuer"`
	Expire time.Duration `json:"expire" yaml:"expire"` // 仅供 gen_token 工具签发使用
}

// RateLimitConfig 令牌桶限流配置
type RateLimitConfig struct {
	Enabled      bool    `json:"enabled" yaml:"enabled"`
	IPRate       float64 `json:"ipRate" yaml:"ipRate"`             // IP 每秒令牌数
	IPBurst      int     `json:"ipBurst" yaml:"ipBurst"`           // IP 桶容量
	UserRate     float64 `json:"userRate" yaml:"userRate"`         // 用户每秒令牌数（写接口）
	UserBurst    int     `json:"userBurst" yaml:"userBurst"`       // 用户桶容量
	BlacklistKey string  `json:"blacklistKey" yaml:"blacklistKey"` // IP 黑名单 Set
}

// FeedConfig 推荐流配置
type FeedConfig struct {
	MaxCandidates   int `json:"maxCandidates" yaml:"maxCandidates"`     // 主办方活动列表单次最多加载的活动数
	DefaultPageSize int `json:"defaultPageSize" yaml:"defaultPageSize"` // 默认分页大小
	MaxPageSize     int `json:"maxPageSize" yaml:"maxPageSize"`         // 最大分页大小
}

// Default 返回本地开发的默认配置
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			RequestTimeout:  5 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			NodeID:          1,
		},
		Logger: DefaultLoggerConfig(),
		MySQL:  DefaultMySQLConfig(),
		Redis:  DefaultRedisConfig(),
		Kafka:  DefaultKafkaConfig(),
		Async:  DefaultAsyncConfig(),
		Media:  DefaultMediaConfig(),
		JWT: JWTConfig{
			Secret: "activate-dev-secret",
			Issuer: "activate",
			Expire: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Enabled:      true,
			IPRate:       20,
			IPBurst:      40,
			UserRate:     5,
			UserBurst:    10,
			BlacklistKey: "activate:blacklist:ips",
		},
		Feed: FeedConfig{
			MaxCandidates:   500,
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
	}
}

// Load 加载配置
// 优先级：环境变量 > 配置文件 > 默认值
// path 为空时只使用默认值和环境变量
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 1. 注册默认值（同时让 AutomaticEnv 知道有哪些 key）
	defaults, err := toMap(Default())
	if err != nil {
		return Config{}, err
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. 读取配置文件
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// 3. 反序列化
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// toMap 把结构体按 yaml tag 展开成嵌套 map，用于 viper 默认值
func toMap(cfg Config) (map[string]any, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}
	out := make(map[string]any)
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal default config: %w", err)
	}
	return out, nil
}
