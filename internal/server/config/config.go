// Package config handles configuration for the auth server: defaults, an
// optional .env file, environment variables, an optional JSON file and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/courseauth/internal/common"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health service.
//   - DatabaseDSN: store DSN; its scheme picks the backend (mongodb, postgres, redis, memory).
//   - DatabaseName: database name for MongoDB (other backends take it from the DSN).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - BcryptCost: bcrypt cost factor for password hashes.
//   - DefaultRole: role name assigned on registration; must already exist in the store.
//   - LegacyStatusCodes: keep 402/404 for duplicate user and missing role.
//   - S3*: optional object storage used to presign avatar URLs.
type Config struct {
	EndpointAddr        string
	EndpointAddrGRPC    string
	DatabaseDSN         string
	DatabaseName        string
	SecretKey           string
	BcryptCost          int
	DefaultRole         string
	LegacyStatusCodes   bool
	LogLevel            string
	HealthCheckInterval time.Duration
	ShutdownTimeout     time.Duration
	StoreConnectTimeout time.Duration
	S3RootUser          string
	S3RootPassword      string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	AvatarURLValidity   time.Duration
}

// LoadDefaults populates Config with development defaults. SecretKey is left
// empty on purpose: the server refuses to start without one.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "mongodb://localhost:27017"
	c.DatabaseName = "course-selling"
	c.SecretKey = ""
	c.BcryptCost = 10
	c.DefaultRole = common.DefaultRoleName
	c.LegacyStatusCodes = true
	c.LogLevel = "info"
	c.HealthCheckInterval = 10 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.StoreConnectTimeout = 30 * time.Second
	c.S3Region = "us-east-1"
	c.AvatarURLValidity = 15 * time.Minute
}

// Validate reports settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, common.ErrMissingSecret)
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is not configured"))
	}
	if c.EndpointAddr == "" {
		errs = append(errs, errors.New("HTTP address is not configured"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [4, 31]", c.BcryptCost))
	}
	if c.DefaultRole == "" {
		errs = append(errs, errors.New("default role is not configured"))
	}
	return errors.Join(errs...)
}

// S3Enabled tells whether avatar keys should be presigned.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, then .env, environment, JSON
// file and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnvFile(); err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	return cfg, nil
}
