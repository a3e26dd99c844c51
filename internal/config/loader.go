// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigDir 默认配置目录
	DefaultConfigDir = "configs"

	// EnvAPIKey 生成服务的 API 凭证
	EnvAPIKey = "ANTHROPIC_API_KEY"
	// EnvDataDir 覆盖数据根目录
	EnvDataDir = "MNEMOSYNE_DATA_DIR"

	defaultDataDirName = ".mnemosyne"
	voicePrintFileName = "voiceprint.json"
)

var envPlaceholder = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load 从默认配置目录加载配置
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigDir)
}

// LoadFrom 加载配置
// 按优先级加载：默认值 -> config.yaml -> config.<env>.yaml -> 环境变量
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 加载基础配置（可选，允许纯环境变量运行）
	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml"), true); err != nil {
		return nil, err
	}

	// 2. 加载环境特定配置
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := loadConfigFile(v, filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env)), true); err != nil {
		return nil, err
	}

	// 3. 绑定环境变量 (直接覆盖)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFile 读取文件，执行环境变量替换，并加载到 viper
func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	reader := strings.NewReader(expandEnv(string(content)))
	if v.ConfigFileUsed() == "" {
		if err := v.ReadConfig(reader); err != nil {
			return fmt.Errorf("failed to read processed config %s: %w", path, err)
		}
		v.SetConfigFile(path)
		return nil
	}
	if err := v.MergeConfig(reader); err != nil {
		return fmt.Errorf("failed to merge processed config %s: %w", path, err)
	}
	return nil
}

// expandEnv 替换字符串中的 ${VAR} / ${VAR:default} 占位符
// 未定义且无默认值的变量保留原样，便于排查
func expandEnv(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envPlaceholder.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(submatch[1]); ok {
			return val
		}
		if submatch[2] != "" {
			return submatch[3]
		}
		return match
	})
}

// bindEnv 绑定不遵循 key 命名规则的环境变量
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"llm.providers.anthropic.api_key": EnvAPIKey,
		"drafting.data_dir":               EnvDataDir,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}
	return nil
}

// normalize 解析数据目录等派生配置
func normalize(cfg *Config) error {
	dataDir, err := expandHome(strings.TrimSpace(cfg.Drafting.DataDir))
	if err != nil {
		return err
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, defaultDataDirName)
	}
	cfg.Drafting.DataDir = dataDir

	voicePath, err := expandHome(strings.TrimSpace(cfg.Drafting.VoicePrintPath))
	if err != nil {
		return err
	}
	if voicePath == "" {
		voicePath = filepath.Join(dataDir, voicePrintFileName)
	}
	cfg.Drafting.VoicePrintPath = voicePath

	if cfg.App.Agent == "" {
		cfg.App.Agent = cfg.App.Name
	}
	return nil
}

// expandHome 展开路径开头的 ~
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	// 应用默认值
	v.SetDefault("app.name", "iris-draft-api")
	v.SetDefault("app.agent", "agent-iris")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// HTTP 服务器默认值（生成调用耗时较长，写超时放宽）
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 8002)
	v.SetDefault("server.http.read_timeout", "30s")
	v.SetDefault("server.http.write_timeout", "300s")
	v.SetDefault("server.http.idle_timeout", "120s")

	// LLM 默认值
	v.SetDefault("llm.default_provider", "anthropic")
	v.SetDefault("llm.providers.anthropic.base_url", "https://api.anthropic.com/v1/")
	v.SetDefault("llm.providers.anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("llm.providers.anthropic.timeout", "0s")

	// 生成参数默认值
	v.SetDefault("drafting.outline.temperature", 0.7)
	v.SetDefault("drafting.outline.max_tokens", 2000)
	v.SetDefault("drafting.draft.temperature", 0.7)
	v.SetDefault("drafting.draft.max_tokens", 3000)

	// Redis 默认值（仅用于限流，默认关闭）
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 10)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")

	// 可观测性默认值
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "text")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	// 安全默认值
	v.SetDefault("security.rate_limit.enabled", false)
	v.SetDefault("security.rate_limit.requests_per_window", 10)
	v.SetDefault("security.rate_limit.window", "1m")
	v.SetDefault("security.rate_limit.key_prefix", "iris:ratelimit")
}
