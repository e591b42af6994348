package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL  string
		Path string
	}
	Server struct {
		Port int
	}
	Site struct {
		Name string
	}
	Output struct {
		Path string
	}
	Discovery struct {
		SeedURLs       []string
		AllowedDomains []string
		UserAgent      string
		MaxDepth       int
		Interval       string
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "vidmap.db")
	viper.SetDefault("output.path", "sitemap.xml")
	viper.SetDefault("site.name", "default")
	viper.SetDefault("discovery.useragent", "Vidmap Bot v1.0")
	viper.SetDefault("discovery.maxdepth", 10)
	viper.SetDefault("discovery.interval", "24h")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) GetDiscoveryInterval() time.Duration {
	duration, err := time.ParseDuration(c.Discovery.Interval)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
