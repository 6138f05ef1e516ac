package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// Default site contract. The origin does not version its markup or endpoints,
// so every value is overridable from config.yaml or APP_SITE_* variables.
const (
	DefaultBaseURL         = "https://gogoanime.so"
	DefaultAjaxURL         = "https://ajax.gogocdn.net"
	DefaultSearchPath      = "/search.html"
	DefaultCategoryPath    = "/category/"
	DefaultEpisodeListPath = "/ajax/load-list-episode"
	DefaultSourcePath      = "/ajax.php"
)

// Site describes the origin being scraped. One value is shared by every
// pipeline component.
type Site struct {
	BaseURL         string `mapstructure:"base_url"`          // primary origin
	AjaxURL         string `mapstructure:"ajax_url"`          // secondary origin serving episode listings
	SearchPath      string `mapstructure:"search_path"`       // search endpoint, query goes in ?keyword=
	CategoryPath    string `mapstructure:"category_path"`     // series page prefix, also stripped from search hrefs
	EpisodeListPath string `mapstructure:"episode_list_path"` // listing endpoint on AjaxURL
	SourcePath      string `mapstructure:"source_path"`       // replaces the player iframe path for source lookup
}

// WithDefaults returns a copy of s where every empty field is set to its default.
func (s Site) WithDefaults() Site {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.AjaxURL == "" {
		s.AjaxURL = DefaultAjaxURL
	}
	if s.SearchPath == "" {
		s.SearchPath = DefaultSearchPath
	}
	if s.CategoryPath == "" {
		s.CategoryPath = DefaultCategoryPath
	}
	if s.EpisodeListPath == "" {
		s.EpisodeListPath = DefaultEpisodeListPath
	}
	if s.SourcePath == "" {
		s.SourcePath = DefaultSourcePath
	}
	return s
}

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	Site                  Site   `mapstructure:"site"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	LogLevel string `mapstructure:"log_level"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Str("base_url", config.Site.BaseURL).Msg("Configuration loaded")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("client_timeout", "30s")
	v.SetDefault("site.base_url", DefaultBaseURL)
	v.SetDefault("site.ajax_url", DefaultAjaxURL)
	v.SetDefault("site.search_path", DefaultSearchPath)
	v.SetDefault("site.category_path", DefaultCategoryPath)
	v.SetDefault("site.episode_list_path", DefaultEpisodeListPath)
	v.SetDefault("site.source_path", DefaultSourcePath)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	config.Site = config.Site.WithDefaults()

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
