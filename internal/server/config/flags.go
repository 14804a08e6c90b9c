package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/courseauth/internal/flagx"
)

var knownFlags = []string{
	"-a", "-g", "-d", "-n", "-s", "-k", "-r", "-l", "-legacy",
	"-u", "-p", "-b", "-region", "-e",
}

// parseFlags populates config from command-line flags.
//
//	-a string     HTTP bind address (":8080")
//	-g string     gRPC health bind address (":50051")
//	-d string     store DSN
//	-n string     MongoDB database name
//	-s string     JWT HMAC secret
//	-k int        bcrypt cost
//	-r string     default role name
//	-l string     log level
//	-legacy bool  legacy status codes (use -legacy=false to turn off)
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket
//	-region       S3 region
//	-e string     S3 base endpoint
//
// Only the flags above are looked at; -c/-config and -env-file are read by
// their own loaders.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "store DSN")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.DefaultRole, "r", config.DefaultRole, "default role")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.LegacyStatusCodes, "legacy", config.LegacyStatusCodes, "legacy status codes")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	return fs.Parse(args)
}
