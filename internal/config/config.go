// Package config loads farsql configuration from farsql.yaml and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/farsql/pkg/driver"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "farsql.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "farsql.yml"

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nesting levels: FARSQL_TARGET__HOST sets target.host.
const EnvPrefix = "FARSQL_"

// Config is the top-level farsql configuration.
type Config struct {
	// Driver is the registry name of the driver to connect with.
	Driver string `koanf:"driver"`

	// Target holds the connection parameters passed to the driver.
	Target TargetConfig `koanf:"target"`

	// DefaultLimit bounds whole-table query results (0 disables).
	DefaultLimit int64 `koanf:"default_limit"`

	// Retries is the reconnect budget per call (0 uses the client
	// default).
	Retries int `koanf:"retries"`

	// StatePath is the path to the run-history database.
	StatePath string `koanf:"state_path"`
}

// TargetConfig mirrors driver.Params in configuration form. Timeout is
// expressed in seconds.
type TargetConfig struct {
	Host                string `koanf:"host"`
	Port                int    `koanf:"port"`
	Protocol            string `koanf:"protocol"`
	Database            string `koanf:"database"`
	User                string `koanf:"user"`
	Password            string `koanf:"password"`
	Timeout             int    `koanf:"timeout"`
	UseSSL              bool   `koanf:"use_ssl"`
	CACert              string `koanf:"ca_cert"`
	UseLDAP             bool   `koanf:"use_ldap"`
	LDAPUser            string `koanf:"ldap_user"`
	LDAPPassword        string `koanf:"ldap_password"`
	UseKerberos         bool   `koanf:"use_kerberos"`
	KerberosServiceName string `koanf:"kerberos_service_name"`
}

// Params converts the target configuration to driver params.
func (t TargetConfig) Params() driver.Params {
	return driver.Params{
		Host:                t.Host,
		Port:                t.Port,
		Protocol:            t.Protocol,
		Database:            t.Database,
		User:                t.User,
		Password:            t.Password,
		Timeout:             time.Duration(t.Timeout) * time.Second,
		UseSSL:              t.UseSSL,
		CACert:              t.CACert,
		UseLDAP:             t.UseLDAP,
		LDAPUser:            t.LDAPUser,
		LDAPPassword:        t.LDAPPassword,
		UseKerberos:         t.UseKerberos,
		KerberosServiceName: t.KerberosServiceName,
	}
}

func defaults() map[string]any {
	p := driver.DefaultParams()
	return map[string]any{
		"driver":                       "duckdb",
		"target.host":                  p.Host,
		"target.port":                  p.Port,
		"target.protocol":              p.Protocol,
		"target.timeout":               int(p.Timeout.Seconds()),
		"target.kerberos_service_name": p.KerberosServiceName,
		"default_limit":                0,
		"state_path":                   ".farsql/state.db",
	}
}

// Load reads configuration from defaults, then the config file at path
// (skipped when path is empty or absent), then FARSQL_ environment
// variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps FARSQL_TARGET__HOST to target.host.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// FindConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func FindConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}
