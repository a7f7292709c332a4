package serve

import (
	"bytes"
	"fmt"
	"github.com/dustin/go-humanize"
	blobpkg "github.com/naieum/omni/internal/blob"
	diskpkg "github.com/naieum/omni/internal/blob/disk"
	blobnoop "github.com/naieum/omni/internal/blob/noop"
	s3pkg "github.com/naieum/omni/internal/blob/s3"
	"github.com/naieum/omni/internal/cache/memory"
	redispkg "github.com/naieum/omni/internal/cache/redis"
	configpkg "github.com/naieum/omni/internal/config"
	"github.com/naieum/omni/internal/coverart"
	"github.com/naieum/omni/internal/musicbrainz"
	serverpkg "github.com/naieum/omni/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
)

const defaultAddr = ":8080"

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Omni server",
		RunE:  serve,
	}

	cmd.Flags().StringVarP(&configPath, "file", "f", "",
		"configuration file path (e.g. /etc/omni.yml)")

	return cmd
}

//nolint:cyclop // mostly linear configuration wiring
func serve(cmd *cobra.Command, _ []string) error {
	if configPath == "" {
		return fmt.Errorf("configuration file path (-f or --file) needs to be specified")
	}

	// Parse the configuration file
	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read configuration file at path %s: %w", configPath, err)
	}

	config, err := configpkg.Parse(bytes.NewReader(configBytes))
	if err != nil {
		return fmt.Errorf("failed to parse configuration file at path %s: %w", configPath, err)
	}

	opts := []serverpkg.Option{
		serverpkg.WithLogger(zap.S()),
	}

	// Upstream metadata client
	var metadataOpts []musicbrainz.Option

	if config.Upstream.MetadataURL != "" {
		metadataOpts = append(metadataOpts, musicbrainz.WithBaseURL(config.Upstream.MetadataURL))
	}

	if config.Upstream.UserAgent != "" {
		metadataOpts = append(metadataOpts, musicbrainz.WithUserAgent(config.Upstream.UserAgent))
	}

	if config.Upstream.RequestsPerSecond != 0 {
		metadataOpts = append(metadataOpts,
			musicbrainz.WithRequestsPerSecond(config.Upstream.RequestsPerSecond))
	}

	opts = append(opts, serverpkg.WithMetadataClient(musicbrainz.New(metadataOpts...)))

	if config.Upstream.CoverArtURL != "" {
		opts = append(opts, serverpkg.WithCoverArtBaseURL(config.Upstream.CoverArtURL))
	}

	// Structured-data cache tier
	if config.Redis != nil {
		opts = append(opts, serverpkg.WithCache(redispkg.New(&redispkg.Config{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})))
	} else {
		opts = append(opts, serverpkg.WithCache(memory.New()))
	}

	// Blob cache tier
	var blobStore blobpkg.Store = blobnoop.New()

	if config.Disk != nil {
		limitBytes, err := humanize.ParseBytes(config.Disk.Limit)
		if err != nil {
			return fmt.Errorf("failed to parse disk limit value %q: %w", config.Disk.Limit, err)
		}

		blobStore, err = diskpkg.New(config.Disk.Dir, limitBytes)
		if err != nil {
			return err
		}
	}

	if config.S3 != nil {
		if config.S3.Endpoint != "" {
			blobStore, err = s3pkg.NewFromConfig(cmd.Context(), &s3pkg.Config{
				Endpoint:        config.S3.Endpoint,
				Region:          config.S3.Region,
				AccessKeyID:     config.S3.AccessKeyID,
				AccessKeySecret: config.S3.AccessKeySecret,
				Bucket:          config.S3.Bucket,
			})
		} else {
			blobStore, err = s3pkg.New(cmd.Context(), config.S3.Bucket)
		}
		if err != nil {
			return err
		}
	}

	fetcher, err := coverart.New(blobStore, coverart.WithLogger(zap.S()))
	if err != nil {
		return err
	}

	opts = append(opts, serverpkg.WithCoverArt(fetcher))

	addr := config.Addr
	if addr == "" {
		addr = defaultAddr
	}

	server, err := serverpkg.New(addr, opts...)
	if err != nil {
		return err
	}

	return server.Run(cmd.Context())
}
