package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是全局配置实例，在LoadConfig成功后可供整个应用读取。
var Cfg *Config

// Config 与 config.yaml 的结构一一对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
}

// ServerConfig 定义了HTTP服务相关的配置。
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"` // debug / release
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了跨域相关的配置。
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了主存储和缓存的配置。
type DatabaseConfig struct {
	// Driver 选择主存储驱动: "sqlite" 或 "postgres"。
	// 本地开发默认sqlite，线上部署使用postgres。
	Driver   string       `mapstructure:"driver"`
	Sqlite   SqliteConfig `mapstructure:"sqlite"`
	Postgres PgConfig     `mapstructure:"postgres"`
	Redis    RedisConfig  `mapstructure:"redis"`
}

// SqliteConfig 定义了SQLite的配置。
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PgConfig 定义了PostgreSQL的配置。
type PgConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置。
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GeminiConfig 定义了AI文案生成服务的配置。
// APIKey不写进配置文件，从环境变量GEMINI_API_KEY读取。
type GeminiConfig struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

// JobsConfig 定义了内置定时任务的开关。
// 关闭后结算与清扫只能通过admin接口由外部调度器触发。
type JobsConfig struct {
	EnableScheduler bool `mapstructure:"enableScheduler"`
}

// APIKey 返回Gemini的API密钥，未配置时为空字符串（此时走静态兜底文案）。
func (g GeminiConfig) APIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// Timeout 返回调用AI服务的超时时长。
func (g GeminiConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// LoadConfig 查找、加载并解析配置文件，同时允许环境变量覆盖。
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 允许通过环境变量覆盖，例如 SERVER_ADDRESS=:9090
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 与本地开发环境匹配的默认值
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "questify.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeoutSeconds", 10)
	v.SetDefault("jobs.enableScheduler", true)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时使用默认值启动，其余错误仍然失败
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		fmt.Println("未找到config.yaml，使用默认配置启动。")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	Cfg = &cfg
	return Cfg, nil
}
