package server

import (
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/naieum/omni/internal/cachekey"
	"github.com/naieum/omni/internal/coverart"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/naieum/omni/internal/server/fail"
	"net/http"
)

// Cover art for a given release and size never changes identity, so
// responses are marked cacheable for a year downstream of this tier.
const coverCacheControl = "public, max-age=31536000"

func (server *Server) handleCover(c echo.Context) error {
	releaseID := c.Param("releaseId")

	size, err := musicbrainz.ParseCoverSize(c.QueryParam("size"))
	if err != nil {
		return fail.Fail(c, http.StatusBadRequest, "%v", err)
	}

	key := cachekey.CoverArt(releaseID, size)
	sourceURL := musicbrainz.CoverArtURL(server.coverArtBaseURL, releaseID, size)

	blobBytes, contentType, hit, err := server.coverArt.GetOrFetch(c.Request().Context(), key, sourceURL)
	if err != nil {
		if errors.Is(err, coverart.ErrNotFound) {
			return fail.Fail(c, http.StatusNotFound, "no cover art found for release %q", releaseID)
		}

		return fail.FailErr(c, http.StatusInternalServerError, err,
			"failed to retrieve cover art for release %q", releaseID)
	}

	if hit {
		server.countCacheOperation("hit")
		c.Response().Header().Set("X-Cache", "HIT")
	} else {
		server.countCacheOperation("miss")
		c.Response().Header().Set("X-Cache", "MISS")
	}

	c.Response().Header().Set("Cache-Control", coverCacheControl)

	return c.Blob(http.StatusOK, contentType, blobBytes)
}
