package server

import (
	cachepkg "github.com/naieum/omni/internal/cache"
	"github.com/naieum/omni/internal/coverart"
	"github.com/naieum/omni/internal/musicbrainz"
	"go.uber.org/zap"
)

type Option func(server *Server)

func WithCache(cache cachepkg.Cache) Option {
	return func(server *Server) {
		server.cache = cache
	}
}

func WithMetadataClient(metadata *musicbrainz.Client) Option {
	return func(server *Server) {
		server.metadata = metadata
	}
}

func WithCoverArt(coverArt *coverart.Fetcher) Option {
	return func(server *Server) {
		server.coverArt = coverArt
	}
}

func WithCoverArtBaseURL(coverArtBaseURL string) Option {
	return func(server *Server) {
		server.coverArtBaseURL = coverArtBaseURL
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(server *Server) {
		server.logger = logger
	}
}
