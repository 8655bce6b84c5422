package model

import "strings"

// This is only for the configuration, not implementing AWS handler logic.

type AwsConfig struct {
	Profile string `yaml:"profile,omitempty"`
	Region  string `yaml:"region,omitempty"`
	// Bucket the feed is uploaded to with --upload.
	Bucket string `yaml:"bucket,omitempty"`
	// Key of the feed object, defaults to the base name of the feed.
	Key          string `yaml:"key,omitempty"`
	StorageClass string `yaml:"storageClass,omitempty"`
}

// Enabled reports whether a bucket has been configured.
func (a *AwsConfig) Enabled() bool {
	return strings.TrimSpace(a.Bucket) != ""
}

// GetStorageClass returns the configured storage class or STANDARD.
func (a *AwsConfig) GetStorageClass() string {
	if strings.TrimSpace(a.StorageClass) == "" {
		return "STANDARD"
	}
	return a.StorageClass
}
