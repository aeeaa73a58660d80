package configs

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Configuration of foodgram.
//
// This type is marshalling value and mutable.
// Consider to use immutable version, `Config`.
// You can get `Config` instance with `ConfigMarshall.TrySeal()` .
type ConfigMarshall struct {
	Port         int32                   `yaml:"port,omitempty"`
	SecretKey    string                  `yaml:"secretKey,omitempty"`
	Debug        bool                    `yaml:"debug,omitempty"`
	AllowedHosts []string                `yaml:"allowedHosts,omitempty"`
	Database     *DatabaseConfigMarshall `yaml:"database,omitempty"`
	MediaRoot    string                  `yaml:"mediaRoot,omitempty"`
	StaticRoot   string                  `yaml:"staticRoot,omitempty"`
	SchemaRepo   string                  `yaml:"schemaRepo,omitempty"`
	LogLevel     string                  `yaml:"logLevel,omitempty"`
	TokenTTL     string                  `yaml:"tokenTTL,omitempty"`
}

type DatabaseConfigMarshall struct {
	Host     string `yaml:"host,omitempty"`
	Port     int32  `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

// Default returns a ConfigMarshall filled with default values.
func Default() *ConfigMarshall {
	return &ConfigMarshall{
		Port: 8000,
		Database: &DatabaseConfigMarshall{
			Host: "db",
			Port: 5432,
			User: "postgres",
		},
		MediaRoot:  "./media",
		StaticRoot: "./static",
		SchemaRepo: "./schema",
		LogLevel:   "info",
		TokenTTL:   "720h",
	}
}

// OverlayEnv overwrites fields with environment variables, when they are set.
//
// args:
//   - getenv: usually os.LookupEnv. injectable for testing.
func (m *ConfigMarshall) OverlayEnv(getenv func(string) (string, bool)) {
	if m.Database == nil {
		m.Database = &DatabaseConfigMarshall{}
	}

	if v, ok := getenv("SERVER_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			m.Port = int32(p)
		}
	}
	if v, ok := getenv("SECRET_KEY"); ok {
		m.SecretKey = v
	}
	if v, ok := getenv("DEBUG"); ok {
		m.Debug = parseBool(v)
	}
	if v, ok := getenv("ALLOWED_HOSTS"); ok {
		m.AllowedHosts = splitHosts(v)
	}
	if v, ok := getenv("DB_HOST"); ok {
		m.Database.Host = v
	}
	if v, ok := getenv("DB_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			m.Database.Port = int32(p)
		}
	}
	if v, ok := getenv("POSTGRES_USER"); ok {
		m.Database.User = v
	}
	if v, ok := getenv("POSTGRES_PASSWORD"); ok {
		m.Database.Password = v
	}
	if v, ok := getenv("POSTGRES_DB"); ok {
		m.Database.Name = v
	}
	if v, ok := getenv("MEDIA_ROOT"); ok {
		m.MediaRoot = v
	}
	if v, ok := getenv("STATIC_ROOT"); ok {
		m.StaticRoot = v
	}
	if v, ok := getenv("SCHEMA_REPO"); ok {
		m.SchemaRepo = v
	}
	if v, ok := getenv("LOG_LEVEL"); ok {
		m.LogLevel = v
	}
	if v, ok := getenv("TOKEN_TTL"); ok {
		m.TokenTTL = v
	}
}

// verify configuration value and create "readonly" version of this.
//
// IT WILL PANIC if any misconfiguration is found.
func (m *ConfigMarshall) TrySeal() *Config {
	return m.trySeal("(root)")
}

func (m *ConfigMarshall) trySeal(path string) *Config {
	secretKey := m.SecretKey
	generated := false
	if secretKey == "" {
		if !m.Debug {
			panic(path + ".secretKey is required unless debug is enabled")
		}
		secretKey = devSecretKey()
		generated = true
	}

	allowedHosts := m.AllowedHosts
	if len(allowedHosts) == 0 {
		if !m.Debug {
			panic(path + ".allowedHosts is required unless debug is enabled")
		}
		allowedHosts = []string{"localhost", "127.0.0.1"}
	}

	ttl, err := time.ParseDuration(m.TokenTTL)
	if err != nil || ttl <= 0 {
		panic(fmt.Sprintf("%s.tokenTTL can not be parsed: %s", path, m.TokenTTL))
	}

	return &Config{
		port:               required(m.Port, path+".port"),
		secretKey:          []byte(secretKey),
		secretKeyGenerated: generated,
		debug:              m.Debug,
		allowedHosts:       allowedHosts,
		database:           nonnil(m.Database, path+".database").trySeal(path + ".database"),
		mediaRoot:          required(m.MediaRoot, path+".mediaRoot"),
		staticRoot:         required(m.StaticRoot, path+".staticRoot"),
		schemaRepo:         required(m.SchemaRepo, path+".schemaRepo"),
		logLevel:           required(m.LogLevel, path+".logLevel"),
		tokenTTL:           ttl,
	}
}

func (d *DatabaseConfigMarshall) trySeal(path string) *DatabaseConfig {
	name := d.Name
	if name == "" {
		name = d.User
	}
	return &DatabaseConfig{
		host:     required(d.Host, path+".host"),
		port:     required(d.Port, path+".port"),
		user:     required(d.User, path+".user"),
		password: d.Password,
		name:     required(name, path+".name"),
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func splitHosts(v string) []string {
	hosts := []string{}
	for _, h := range strings.Split(v, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func devSecretKey() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to generate debug secret key: %w", err))
	}
	return base64.StdEncoding.EncodeToString(buf)
}
