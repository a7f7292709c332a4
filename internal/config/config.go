package config

import (
	"gopkg.in/yaml.v3"
	"io"
)

type Config struct {
	Addr     string   `yaml:"addr"`
	Upstream Upstream `yaml:"upstream"`

	// Structured-data cache tier backend; an in-memory cache is used
	// when no Redis section is present. Note that the in-process rate
	// limiter only protects the upstream when a single replica runs;
	// multi-replica deployments should share the Redis tier and front
	// the upstream with a shared limiter.
	Redis *Redis `yaml:"redis"`

	// Blob cache tier backend; cover art is fetched pass-through
	// when neither section is present
	Disk *Disk `yaml:"disk"`
	S3   *S3   `yaml:"s3"`
}

type Upstream struct {
	MetadataURL       string  `yaml:"metadata-url"`
	CoverArtURL       string  `yaml:"cover-art-url"`
	UserAgent         string  `yaml:"user-agent"`
	RequestsPerSecond float64 `yaml:"requests-per-second"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Disk struct {
	Dir   string `yaml:"dir"`
	Limit string `yaml:"limit"`
}

type S3 struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	Bucket          string `yaml:"bucket"`
}

func Parse(r io.Reader) (*Config, error) {
	var config Config

	if err := yaml.NewDecoder(r).Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
