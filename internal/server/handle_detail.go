package server

import (
	"context"
	"github.com/labstack/echo/v4"
	"github.com/naieum/omni/internal/cachekey"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/naieum/omni/internal/resource"
)

// releaseWithCoverArt is what the proxy caches and serves for releases:
// the upstream record with the cover-art URL injected, so that consumers
// don't need to derive it themselves.
type releaseWithCoverArt struct {
	musicbrainz.Release
	CoverArtURL string `json:"coverArtUrl"`
}

func (server *Server) handleArtist(c echo.Context) error {
	id := c.Param("id")

	key := cachekey.Detail(resource.Artist, id)

	payloadBytes, cached, err := server.fetchJSON(c.Request().Context(), key, detailTTL,
		func(ctx context.Context) (any, error) {
			return server.metadata.Artist(ctx, id)
		})
	if err != nil {
		return upstreamFail(c, err)
	}

	return respondAnnotated(c, payloadBytes, cached)
}

// handleRelease also serves the /album/:id alias
func (server *Server) handleRelease(c echo.Context) error {
	id := c.Param("id")

	key := cachekey.Detail(resource.Release, id)

	payloadBytes, cached, err := server.fetchJSON(c.Request().Context(), key, detailTTL,
		func(ctx context.Context) (any, error) {
			release, err := server.metadata.Release(ctx, id)
			if err != nil {
				return nil, err
			}

			return &releaseWithCoverArt{
				Release: *release,
				CoverArtURL: musicbrainz.CoverArtURL(server.coverArtBaseURL, id,
					musicbrainz.CoverSizeLarge),
			}, nil
		})
	if err != nil {
		return upstreamFail(c, err)
	}

	return respondAnnotated(c, payloadBytes, cached)
}

// handleRecording also serves the /track/:id alias
func (server *Server) handleRecording(c echo.Context) error {
	id := c.Param("id")

	key := cachekey.Detail(resource.Recording, id)

	payloadBytes, cached, err := server.fetchJSON(c.Request().Context(), key, detailTTL,
		func(ctx context.Context) (any, error) {
			return server.metadata.Recording(ctx, id)
		})
	if err != nil {
		return upstreamFail(c, err)
	}

	return respondAnnotated(c, payloadBytes, cached)
}
