// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/database"
	"github.com/go-arcade/beacon/pkg/http"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/metrics"
	"github.com/go-arcade/beacon/pkg/trace"
	"github.com/spf13/viper"
)

// SeoConfig drives metadata resolution and the document injector.
type SeoConfig struct {
	TemplatePath      string
	GlobalsTTL        int // seconds
	DiagnosticsTTL    int // seconds
	ProductPathPrefix string
	FaqPath           string
	PublicBaseURL     string `mapstructure:"publicBaseUrl"`
	DefaultLanguage   string
	DefaultSiteName   string
}

func (c *SeoConfig) SetDefaults() {
	if c.TemplatePath == "" {
		c.TemplatePath = "web/index.html"
	}
	if c.GlobalsTTL <= 0 {
		c.GlobalsTTL = 60
	}
	if c.DiagnosticsTTL <= 0 {
		c.DiagnosticsTTL = 30
	}
	if c.ProductPathPrefix == "" {
		c.ProductPathPrefix = "/products/"
	}
	if !strings.HasPrefix(c.ProductPathPrefix, "/") {
		c.ProductPathPrefix = "/" + c.ProductPathPrefix
	}
	if !strings.HasSuffix(c.ProductPathPrefix, "/") {
		c.ProductPathPrefix += "/"
	}
	if c.FaqPath == "" {
		c.FaqPath = "/faq"
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
}

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Cache    cache.Config
	Seo      SeoConfig
	Metrics  metrics.MetricsConfig
	Trace    trace.Conf
}

// Default returns a configuration with every section defaulted.
func Default() AppConfig {
	conf := AppConfig{
		Log:      *log.SetDefaults(),
		Http:     http.SetDefaults(),
		Database: database.SetDefaults(),
		Cache:    cache.SetDefaults(),
		Metrics:  metrics.SetDefaults(),
	}
	conf.Seo.SetDefaults()
	return conf
}

var current atomic.Pointer[AppConfig]

// Current returns the most recently loaded configuration, if any.
func Current() *AppConfig {
	return current.Load()
}

// LoadConfigFile reads a TOML file over Default() and watches it; reloads
// replace Current() and never mutate a previously returned value.
func LoadConfigFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("BEACON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}
	current.Store(conf)

	v.OnConfigChange(func(e fsnotify.Event) {
		next, err := decode(v)
		if err != nil {
			log.Warnw("failed to reload configuration", "path", e.Name, "error", err)
			return
		}
		current.Store(next)
		log.SetLevel(next.Log.Level)
		log.Infow("configuration reloaded", "path", e.Name)
	})
	v.WatchConfig()

	log.Infow("config file loaded", "path", path)
	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := Default()
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	conf.Seo.SetDefaults()
	return &conf, nil
}
