package storage

import "strings"

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service. Storage is disabled when it is empty.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket snapshots are stored in.
	Bucket string `mapstructure:"bucket" default:"shortcut-sync"`
	// Prefix is the object name prefix of every snapshot.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Configured reports whether an endpoint was set.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}
