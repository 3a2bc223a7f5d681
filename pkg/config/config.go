// Package config 提供 YAML 配置加载与默认值。
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultAPIBaseURL   = "https://hourlypricing.comed.com/api"
	DefaultPollInterval = 60 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultThreshold    = 10.0 // 美分
)

var configPath = "yml/config.yaml"

// SetConfigPath 设置配置文件路径
func SetConfigPath(path string) {
	configPath = path
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	return configPath
}

// DeckConfig 按键面板宿主连接配置（可选，不配置则不连接宿主）
type DeckConfig struct {
	Port          int    `yaml:"port"`           // 宿主 websocket 端口
	PluginUUID    string `yaml:"plugin_uuid"`    // 注册用的插件 UUID
	RegisterEvent string `yaml:"register_event"` // 注册事件名
	Context       string `yaml:"context"`        // 按键上下文 ID
}

// PreviewConfig 预览 HTTP 服务配置（可选）
type PreviewConfig struct {
	Listen string `yaml:"listen"` // 监听地址，例如 "127.0.0.1:8199"
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Config 应用配置
type Config struct {
	APIBaseURL         string         `yaml:"api_base_url"`         // ComEd API 端点
	PollInterval       Duration       `yaml:"poll_interval"`        // 轮询间隔，默认 60s
	FetchTimeout       Duration       `yaml:"fetch_timeout"`        // 单次请求超时，默认 10s
	HighThresholdCents float64        `yaml:"high_threshold_cents"` // 高价阈值（美分），默认 10
	SettingsPath       string         `yaml:"settings_path"`        // settings 快照存储目录，默认 data/settings
	Log                LogConfig      `yaml:"log"`
	Deck               *DeckConfig    `yaml:"deck"`
	Preview            *PreviewConfig `yaml:"preview"`
}

// applyDefaults 填充未设置的字段
func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.PollInterval.Duration <= 0 {
		c.PollInterval.Duration = DefaultPollInterval
	}
	if c.FetchTimeout.Duration <= 0 {
		c.FetchTimeout.Duration = DefaultFetchTimeout
	}
	if c.HighThresholdCents <= 0 {
		c.HighThresholdCents = DefaultThreshold
	}
	if c.SettingsPath == "" {
		c.SettingsPath = "data/settings"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Deck != nil && c.Deck.RegisterEvent == "" {
		c.Deck.RegisterEvent = "registerPlugin"
	}
}

// validate 校验配置
func (c *Config) validate() error {
	if c.Deck != nil {
		if c.Deck.Port <= 0 || c.Deck.Port > 65535 {
			return fmt.Errorf("invalid deck port: %d", c.Deck.Port)
		}
		if c.Deck.PluginUUID == "" {
			return fmt.Errorf("deck plugin_uuid is required when deck is configured")
		}
	}
	return nil
}

// Load 从当前配置路径加载配置；文件不存在时返回全默认配置
func Load() (*Config, error) {
	return LoadFromFile(configPath)
}

// LoadFromFile 从指定文件加载配置
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 没有配置文件也能跑：全部走默认值
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
