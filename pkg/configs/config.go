package configs

import (
	"fmt"
	"net/url"
	"time"
)

// Configuration of the foodgram server and its operator commands.
//
// to get `Config` instance, use `ConfigMarshall.TrySeal()` .
type Config struct {
	port               int32
	secretKey          []byte
	secretKeyGenerated bool
	debug              bool
	allowedHosts       []string
	database           *DatabaseConfig
	mediaRoot          string
	staticRoot         string
	schemaRepo         string
	logLevel           string
	tokenTTL           time.Duration
}

// TCP port the API server listens on.
func (c *Config) Port() int32 {
	return c.port
}

// Key for signing auth tokens.
func (c *Config) SecretKey() []byte {
	return c.secretKey
}

// SecretKeyGenerated reports that no secret key was configured and a
// debug-only key was generated at boot. Tokens signed with it do not
// survive a restart.
func (c *Config) SecretKeyGenerated() bool {
	return c.secretKeyGenerated
}

func (c *Config) Debug() bool {
	return c.debug
}

// Hostnames the server accepts requests for.
//
// Contains "*" when any host is accepted.
func (c *Config) AllowedHosts() []string {
	return c.allowedHosts
}

func (c *Config) Database() *DatabaseConfig {
	return c.database
}

// Directory where uploaded images are stored.
func (c *Config) MediaRoot() string {
	return c.mediaRoot
}

// Directory where collected static assets are stored.
func (c *Config) StaticRoot() string {
	return c.staticRoot
}

// Directory holding database schema versions.
func (c *Config) SchemaRepo() string {
	return c.schemaRepo
}

func (c *Config) LogLevel() string {
	return c.logLevel
}

// How long issued auth tokens stay valid.
func (c *Config) TokenTTL() time.Duration {
	return c.tokenTTL
}

type DatabaseConfig struct {
	host     string
	port     int32
	user     string
	password string
	name     string
}

func (d *DatabaseConfig) Host() string {
	return d.host
}

func (d *DatabaseConfig) Port() int32 {
	return d.port
}

func (d *DatabaseConfig) User() string {
	return d.user
}

func (d *DatabaseConfig) Password() string {
	return d.password
}

func (d *DatabaseConfig) Name() string {
	return d.name
}

// Connection string for database.
func (d *DatabaseConfig) URI() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.user, d.password),
		Host:   fmt.Sprintf("%s:%d", d.host, d.port),
		Path:   d.name,
	}
	return u.String()
}
