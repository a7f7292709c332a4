package config_test

import (
	"github.com/naieum/omni/internal/config"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	configFile, err := os.Open(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	actualConfig, err := config.Parse(configFile)
	require.NoError(t, err)
	require.Equal(t, &config.Config{
		Addr: ":8080",
		Upstream: config.Upstream{
			MetadataURL:       "https://musicbrainz.org/ws/2",
			CoverArtURL:       "https://coverartarchive.org",
			UserAgent:         "omni/0.1.0 (https://github.com/naieum/omni)",
			RequestsPerSecond: 1,
		},
		Redis: &config.Redis{
			Addr: "localhost:6379",
			DB:   1,
		},
		Disk: &config.Disk{
			Dir:   "/var/cache/omni",
			Limit: "10GB",
		},
		S3: &config.S3{
			Bucket: "omni-covers",
		},
	}, actualConfig)
}
