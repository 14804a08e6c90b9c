package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/courseauth/internal/flagx"
	"github.com/dmitrijs2005/courseauth/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// "10s" style strings or integer nanoseconds. Pointer fields distinguish
// "absent" from a zero value.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	DatabaseDSN         string         `json:"database_dsn"`
	DatabaseName        string         `json:"database_name"`
	SecretKey           string         `json:"secret_key"`
	BcryptCost          int            `json:"bcrypt_cost"`
	DefaultRole         string         `json:"default_role"`
	LegacyStatusCodes   *bool          `json:"legacy_status_codes"`
	LogLevel            string         `json:"log_level"`
	HealthCheckInterval timex.Duration `json:"health_check_interval"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout"`
	StoreConnectTimeout timex.Duration `json:"store_connect_timeout"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	AvatarURLValidity   timex.Duration `json:"avatar_url_validity"`
}

// parseJson overlays the JSON file given with -c / -config onto config.
// Fields missing from the file keep their current values.
func parseJson(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.DefaultRole, c.DefaultRole)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.LegacyStatusCodes != nil {
		config.LegacyStatusCodes = *c.LegacyStatusCodes
	}
	if c.HealthCheckInterval.Duration != 0 {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.StoreConnectTimeout.Duration != 0 {
		config.StoreConnectTimeout = c.StoreConnectTimeout.Duration
	}
	if c.AvatarURLValidity.Duration != 0 {
		config.AvatarURLValidity = c.AvatarURLValidity.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
