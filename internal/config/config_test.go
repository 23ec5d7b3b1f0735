package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"SiteTitle", cfg.SiteTitle, "Portfolio"},
		{"ContentDir", cfg.ContentDir, "content"},
		{"LayoutsDir", cfg.LayoutsDir, "layouts"},
		{"StaticDir", cfg.StaticDir, "static"},
		{"OutputDir", cfg.OutputDir, "public"},
		{"Port", cfg.Port, 1414},
		{"CacheEnabled", cfg.Cache.Enabled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("siteTitle", "My Site")
	v.Set("port", 9000)
	v.Set("cache.enabled", true)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.SiteTitle != "My Site" || cfg.Port != 9000 || !cfg.Cache.Enabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
