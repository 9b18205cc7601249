// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package config

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/asanchez75/ontodia/internal/store"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// Source types.
const (
	SourceTypeRDF    = "rdf"
	SourceTypeRemote = "remote"
)

// Config is the top-level Ontodia configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Proxy      ProxyConfig      `mapstructure:"proxy"`
	Federation FederationConfig `mapstructure:"federation"`
	Sources    []SourceConfig   `mapstructure:"sources"`
}

// ServerConfig controls the REST listener.
type ServerConfig struct {
	ListenAddr   string        `mapstructure:"listen_addr"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ProxyConfig controls how Linked Data identifiers are fetched. Requests go
// to Prefix followed by the identifier's URL.
type ProxyConfig struct {
	Prefix    string        `mapstructure:"prefix"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// FederationConfig controls how source failures affect a federated call.
type FederationConfig struct {
	PartialResults bool `mapstructure:"partial_results"`
}

// SourceConfig defines one federated data source.
type SourceConfig struct {
	Name      string              `mapstructure:"name"`
	Type      string              `mapstructure:"type"`
	Fetching  bool                `mapstructure:"fetching"`
	Storage   store.StorageConfig `mapstructure:"storage"`
	Documents []DocumentConfig    `mapstructure:"documents"`
	Endpoint  string              `mapstructure:"endpoint"`
	Timeout   time.Duration       `mapstructure:"timeout"`
}

// DocumentConfig is an RDF file loaded into an rdf source at startup. An
// empty Type lets the parser detect the serialization.
type DocumentConfig struct {
	Path  string `mapstructure:"path"`
	Type  string `mapstructure:"type"`
	Graph string `mapstructure:"graph"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", "127.0.0.1:10444")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("proxy.prefix", "http://127.0.0.1:10444/lod-proxy/")
	v.SetDefault("proxy.timeout", 30*time.Second)
	v.SetDefault("proxy.user_agent", "ontodia")
	v.SetDefault("federation.partial_results", false)
	v.SetDefault("sources", []map[string]any{{
		"name":     "local",
		"type":     SourceTypeRDF,
		"fetching": true,
		"storage":  map[string]any{"backend": store.DefaultBackend},
	}})
}

// SetupEnv binds ONTODIA_ environment variables, with dots in keys replaced
// by underscores.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("ONTODIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix ONTODIA_).
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ontoerr.Errorf(ontoerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ontoerr.Errorf(ontoerr.CodeConfigParseInvalidFormat, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ontoerr.Errorf(ontoerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors.
// It returns a slice of all validation errors found, collecting all issues
// rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateProxy()...)
	errs = append(errs, c.validateSources()...)

	return errs
}

func invalid(format string, args ...any) error {
	return ontoerr.Errorf(ontoerr.CodeConfigValidateInvalidValue, "config: "+format, args...)
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.ListenAddr == "" {
		errs = append(errs, invalid("server.listen_addr must not be empty"))
	} else {
		_, portStr, err := net.SplitHostPort(c.Server.ListenAddr)
		if err != nil {
			errs = append(errs, invalid("server.listen_addr must be a valid host:port address, got %q: %w",
				c.Server.ListenAddr, err))
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				errs = append(errs, invalid("server.listen_addr port must be a number, got %q", portStr))
			} else if port < 0 || port > 65535 {
				errs = append(errs, invalid("server.listen_addr port must be between 0 and 65535, got %d", port))
			}
		}
	}

	if c.Server.ReadTimeout < 0 {
		errs = append(errs, invalid("server.read_timeout must not be negative, got %s", c.Server.ReadTimeout))
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, invalid("server.write_timeout must not be negative, got %s", c.Server.WriteTimeout))
	}

	return errs
}

func (c *Config) validateProxy() []error {
	var errs []error

	if c.Proxy.Prefix == "" {
		errs = append(errs, invalid("proxy.prefix must not be empty"))
	} else if !isHTTPURL(c.Proxy.Prefix) {
		errs = append(errs, invalid("proxy.prefix must be an absolute http(s) URL, got %q", c.Proxy.Prefix))
	}

	if c.Proxy.Timeout <= 0 {
		errs = append(errs, invalid("proxy.timeout must be greater than 0, got %s", c.Proxy.Timeout))
	}

	return errs
}

func (c *Config) validateSources() []error {
	var errs []error

	if len(c.Sources) == 0 {
		errs = append(errs, invalid("sources must define at least one source"))
	}

	names := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name != "" {
			if names[s.Name] {
				errs = append(errs, invalid("sources[%d].name %q is used more than once", i, s.Name))
			}
			names[s.Name] = true
		}

		switch s.Type {
		case SourceTypeRDF:
			errs = append(errs, validateRDFSource(i, s)...)
		case SourceTypeRemote:
			if !isHTTPURL(s.Endpoint) {
				errs = append(errs, invalid("sources[%d].endpoint must be an absolute http(s) URL, got %q", i, s.Endpoint))
			}
			if s.Timeout < 0 {
				errs = append(errs, invalid("sources[%d].timeout must not be negative, got %s", i, s.Timeout))
			}
		default:
			errs = append(errs, invalid("sources[%d].type must be one of [%s, %s], got %q",
				i, SourceTypeRDF, SourceTypeRemote, s.Type))
		}
	}

	return errs
}

func validateRDFSource(i int, s SourceConfig) []error {
	var errs []error

	switch s.Storage.Backend {
	case "", "memory":
	case "sqlite":
		if s.Storage.Path == "" {
			errs = append(errs, invalid("sources[%d].storage.path is required for the sqlite backend", i))
		}
	default:
		errs = append(errs, invalid("sources[%d].storage.backend must be one of [memory, sqlite], got %q",
			i, s.Storage.Backend))
	}

	for j, doc := range s.Documents {
		if doc.Path == "" {
			errs = append(errs, invalid("sources[%d].documents[%d].path must not be empty", i, j))
		}
	}

	return errs
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
