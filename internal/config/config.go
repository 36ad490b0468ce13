package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config 全局配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Business BusinessConfig `mapstructure:"business"`
	Static   StaticConfig   `mapstructure:"static"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string         `mapstructure:"brokers"`
	Topic   KafkaTopicConfig `mapstructure:"topic"`
}

type KafkaTopicConfig struct {
	RecordEvent string `mapstructure:"record_event"`
}

type BusinessConfig struct {
	MaxBatchLines        int    `mapstructure:"max_batch_lines"`         // 单次输入最多行数
	MaxRetryCount        int    `mapstructure:"max_retry_count"`         // outbox 消息最大重试次数
	ChannelCacheTTLHours int    `mapstructure:"channel_cache_ttl_hours"` // 频道 ID 缓存过期时间
	AdminUsername        string `mapstructure:"admin_username"`          // CLI 模式使用的身份
}

// StaticConfig 静态词典文件路径
// 指令词典、标签目录、区间别名、本地化文案都在启动时读一次，运行期不变。
type StaticConfig struct {
	Dictionary   string `mapstructure:"dictionary"`
	Tags         string `mapstructure:"tags"`
	Intervals    string `mapstructure:"intervals"`
	Localization string `mapstructure:"localization"`
	Help         string `mapstructure:"help"`
}

var GlobalConfig *Config

// LoadConfig 加载配置文件
func LoadConfig(configPath string) *Config {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("读取配置文件失败: %v", err)
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	if config.Business.MaxBatchLines <= 0 {
		config.Business.MaxBatchLines = 5
	}
	if config.Business.ChannelCacheTTLHours <= 0 {
		config.Business.ChannelCacheTTLHours = 24
	}

	GlobalConfig = config
	return config
}
