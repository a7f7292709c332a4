package server

import (
	"context"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/naieum/omni/internal/cachekey"
	"github.com/naieum/omni/internal/resource"
	"github.com/naieum/omni/internal/server/fail"
	"net/http"
	"strconv"
)

const (
	defaultSearchLimit = 10

	// maxSearchLimit matches the upstream's per-request ceiling
	maxSearchLimit = 100
)

func (server *Server) handleSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return fail.Fail(c, http.StatusBadRequest, "query parameter %q is required", "q")
	}

	rawKind := c.QueryParam("type")
	if rawKind == "" {
		rawKind = "artist"
	}

	kind, err := resource.Parse(rawKind)
	if err != nil {
		return fail.Fail(c, http.StatusBadRequest, "%v", err)
	}

	limit, err := queryInt(c, "limit", defaultSearchLimit)
	if err != nil {
		return fail.Fail(c, http.StatusBadRequest, "%v", err)
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return fail.Fail(c, http.StatusBadRequest, "%v", err)
	}

	// Clamp rather than reject out-of-range values,
	// they're never passed on negative
	limit = min(max(limit, 1), maxSearchLimit)
	offset = max(offset, 0)

	key := cachekey.Search(kind, query, limit, offset)

	payloadBytes, cached, err := server.fetchJSON(c.Request().Context(), key, searchTTL,
		func(ctx context.Context) (any, error) {
			switch kind {
			case resource.Artist:
				return server.metadata.SearchArtists(ctx, query, limit, offset)
			case resource.Release:
				return server.metadata.SearchReleases(ctx, query, limit, offset)
			case resource.Recording:
				return server.metadata.SearchRecordings(ctx, query, limit, offset)
			default:
				return nil, fmt.Errorf("unsupported resource kind %v", kind)
			}
		})
	if err != nil {
		return upstreamFail(c, err)
	}

	return respondAnnotated(c, payloadBytes, cached)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q must be an integer", name)
	}

	return value, nil
}
