package config

import "github.com/spf13/viper"

// CacheConfig controls the optional parse cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DeployConfig holds the S3 target for `folio deploy`. AccessKey and
// SecretKey are normally supplied via FOLIO_DEPLOY_* env vars, not the
// config file.
type DeployConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
}

// Config holds all runtime settings. Values come from folio.yaml,
// FOLIO_* env vars, and CLI flags, in ascending precedence.
type Config struct {
	SiteTitle       string       `mapstructure:"siteTitle"`
	SiteDescription string       `mapstructure:"siteDescription"`
	Author          string       `mapstructure:"author"`
	BaseURL         string       `mapstructure:"baseURL"`
	ContentDir      string       `mapstructure:"contentDir"`
	LayoutsDir      string       `mapstructure:"layoutsDir"`
	StaticDir       string       `mapstructure:"staticDir"`
	OutputDir       string       `mapstructure:"outputDir"`
	Port            int          `mapstructure:"port"`
	Cache           CacheConfig  `mapstructure:"cache"`
	Deploy          DeployConfig `mapstructure:"deploy"`
}

// SetDefaults registers the built-in defaults on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "Portfolio")
	v.SetDefault("siteDescription", "")
	v.SetDefault("author", "")
	v.SetDefault("baseURL", "http://localhost:1414")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("port", 1414)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "")
}
