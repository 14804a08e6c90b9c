package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		expected  *Config
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8081", "-g", ":6001", "-d", "memory://", "-n", "db",
				"-s", "secret", "-k", "12", "-r", "student", "-l", "debug", "-legacy=false",
				"-u", "user", "-p", "password", "-b", "bucket", "-region", "eu-west-1", "-e", "http://minio:9000",
				"-c", "ignored.json",
			},
			expected: &Config{
				EndpointAddr:        "127.0.0.1:8081",
				EndpointAddrGRPC:    ":6001",
				DatabaseDSN:         "memory://",
				DatabaseName:        "db",
				SecretKey:           "secret",
				BcryptCost:          12,
				DefaultRole:         "student",
				LegacyStatusCodes:   false,
				LogLevel:            "debug",
				HealthCheckInterval: 10 * time.Second,
				ShutdownTimeout:     10 * time.Second,
				StoreConnectTimeout: 30 * time.Second,
				S3RootUser:          "user",
				S3RootPassword:      "password",
				S3Bucket:            "bucket",
				S3Region:            "eu-west-1",
				S3BaseEndpoint:      "http://minio:9000",
				AvatarURLValidity:   15 * time.Minute,
			},
		},
		{
			name:      "bad int",
			args:      []string{"-k", "many"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			c := &Config{}
			c.LoadDefaults()
			err := parseFlags(c)

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, c))
		})
	}
}
