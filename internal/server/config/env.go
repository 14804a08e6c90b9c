package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/courseauth/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnvFile loads KEY=VALUE pairs from the dotenv file named by -env-file
// (".env" by default) into the process environment. Variables that are
// already set win. A missing file is not an error.
func parseEnvFile() error {
	path := flagx.EnvFileFlag()
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// parseEnv overlays environment variables on config.
//
// Recognized variables:
//
//	PORT                   HTTP port ("8080") or address (":8080")
//	GRPC_ADDRESS           gRPC health bind address
//	MONGODB_URI            store DSN (DATABASE_DSN is accepted too and wins)
//	DATABASE_NAME          MongoDB database name
//	JWT_SECRET             token signing secret
//	BCRYPT_COST            bcrypt cost factor
//	DEFAULT_ROLE           role assigned on registration
//	LEGACY_STATUS_CODES    true/false
//	LOG_LEVEL              debug, info, warn, error
//	HEALTH_CHECK_INTERVAL  Go duration
//	SHUTDOWN_TIMEOUT       Go duration
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) error {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddr = portToAddr(v)
	}

	lookupString("GRPC_ADDRESS", &config.EndpointAddrGRPC)
	lookupString("MONGODB_URI", &config.DatabaseDSN)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("DATABASE_NAME", &config.DatabaseName)
	lookupString("JWT_SECRET", &config.SecretKey)
	lookupString("DEFAULT_ROLE", &config.DefaultRole)
	lookupString("LOG_LEVEL", &config.LogLevel)
	lookupString("S3_ROOT_USER", &config.S3RootUser)
	lookupString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	lookupString("S3_BUCKET", &config.S3Bucket)
	lookupString("S3_REGION", &config.S3Region)
	lookupString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("BCRYPT_COST"); ok && v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		config.BcryptCost = cost
	}

	if v, ok := os.LookupEnv("LEGACY_STATUS_CODES"); ok && v != "" {
		legacy, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEGACY_STATUS_CODES: %w", err)
		}
		config.LegacyStatusCodes = legacy
	}

	if err := lookupDuration("HEALTH_CHECK_INTERVAL", &config.HealthCheckInterval); err != nil {
		return err
	}
	if err := lookupDuration("SHUTDOWN_TIMEOUT", &config.ShutdownTimeout); err != nil {
		return err
	}
	if err := lookupDuration("STORE_CONNECT_TIMEOUT", &config.StoreConnectTimeout); err != nil {
		return err
	}
	if err := lookupDuration("AVATAR_URL_VALIDITY", &config.AvatarURLValidity); err != nil {
		return err
	}

	return nil
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(name string, dst *time.Duration) error {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

// portToAddr turns a bare port into a listen address.
func portToAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
