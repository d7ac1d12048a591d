package source

import (
	"io"
	"os"
	"strconv"

	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Environment variables consulted by defaultConfig.
const (
	EnvS3Endpoint = "MCS_S3_ENDPOINT"
	EnvS3Region   = "MCS_S3_REGION"
	EnvS3Insecure = "MCS_S3_INSECURE"
)

// DefaultS3Endpoint is used when neither an option nor MCS_S3_ENDPOINT sets one.
const DefaultS3Endpoint = "s3.amazonaws.com"

// Config holds the settings used by Open.
type Config struct {
	// Endpoint is the S3 endpoint host[:port]
	Endpoint string

	// Region is the bucket region (optional)
	Region string

	// Secure selects HTTPS for S3 requests
	Secure bool

	// Credentials signs S3 requests
	Credentials *credentials.Credentials

	// Stdin is read for the "-" location
	Stdin io.Reader
}

func defaultConfig() Config {
	cfg := Config{
		Endpoint: DefaultS3Endpoint,
		Region:   os.Getenv(EnvS3Region),
		Secure:   true,
		Credentials: credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.EnvMinio{},
		}),
		Stdin: os.Stdin,
	}
	if ep := os.Getenv(EnvS3Endpoint); ep != "" {
		cfg.Endpoint = ep
	}
	if insecure, err := strconv.ParseBool(os.Getenv(EnvS3Insecure)); err == nil && insecure {
		cfg.Secure = false
	}
	return cfg
}

// Option is a functional option for configuring Open.
type Option func(*Config)

// WithEndpoint sets the S3 endpoint.
//
// Example:
//
//	rc, err := source.Open(ctx, "s3://fw/rom.mcs", source.WithEndpoint("localhost:9000"))
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		if endpoint != "" {
			c.Endpoint = endpoint
		}
	}
}

// WithRegion sets the bucket region.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithInsecure disables TLS for S3 requests.
func WithInsecure(insecure bool) Option {
	return func(c *Config) {
		c.Secure = !insecure
	}
}

// WithStaticCredentials signs S3 requests with a fixed key pair.
//
// Example:
//
//	source.WithStaticCredentials("minioadmin", "minioadmin", "")
func WithStaticCredentials(accessKey, secretKey, sessionToken string) Option {
	return func(c *Config) {
		c.Credentials = credentials.NewStaticV4(accessKey, secretKey, sessionToken)
	}
}

// WithStdin replaces os.Stdin as the stream behind the "-" location.
func WithStdin(r io.Reader) Option {
	return func(c *Config) {
		if r != nil {
			c.Stdin = r
		}
	}
}
