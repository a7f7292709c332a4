package server

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/labstack/echo/v4"
	cachepkg "github.com/naieum/omni/internal/cache"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/naieum/omni/internal/server/fail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"net/http"
	"time"
)

// upstreamFetchTimeout bounds a coalesced upstream fetch, including the
// time potentially spent waiting on the shared rate limiter
const upstreamFetchTimeout = 30 * time.Second

// fetchJSON returns the serialized payload stored under key, falling back
// to fetch on a miss, and reports whether the payload came from the cache.
//
// Concurrent misses for the same key are coalesced into a single upstream
// fetch, so a stampede on a cold key results in one upstream request.
func (server *Server) fetchJSON(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (any, error),
) ([]byte, bool, error) {
	payloadBytes, err := server.cache.Get(ctx, key)
	if err == nil {
		server.countCacheOperation("hit")

		return payloadBytes, true, nil
	}

	if !errors.Is(err, cachepkg.ErrNotFound) {
		// A failing cache tier degrades to "always fetch fresh"
		// rather than failing the request
		server.logger.Warnf("failed to retrieve cache entry for key %q, "+
			"treating as a miss: %v", key, err)
	}

	server.countCacheOperation("miss")

	result, err, _ := server.fetches.Do(key, func() (interface{}, error) {
		// Deliberately not derived from the request's context: other
		// requests may be waiting on this fetch, and an already-dispatched
		// upstream call should complete even if the requester disconnects
		fetchCtx, cancel := context.WithTimeout(context.Background(), upstreamFetchTimeout)
		defer cancel()

		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		payloadBytes, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}

		// Best-effort write-through: a failure to cache must not fail
		// the request, the freshly fetched value is still returned
		if err := server.cache.Put(fetchCtx, key, payloadBytes, ttl); err != nil {
			server.logger.Warnf("failed to store cache entry for key %q: %v", key, err)
		}

		return payloadBytes, nil
	})
	if err != nil {
		return nil, false, err
	}

	//nolint:forcetypeassert // the closure above only ever returns []byte
	return result.([]byte), false, nil
}

// respondAnnotated responds with the payload plus the derived cached
// flag. Both the hit and the miss path produce their response through
// this function, so repeated requests yield identical bodies modulo the
// flag itself.
func respondAnnotated(c echo.Context, payloadBytes []byte, cached bool) error {
	var payload map[string]any

	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return err
	}

	payload["cached"] = cached

	return c.JSON(http.StatusOK, payload)
}

func upstreamFail(c echo.Context, err error) error {
	var upstreamErr *musicbrainz.UpstreamError

	switch {
	case errors.As(err, &upstreamErr):
		return fail.FailErr(c, http.StatusBadGateway, err,
			"upstream metadata service responded with HTTP %d", upstreamErr.StatusCode)
	case errors.Is(err, musicbrainz.ErrUnavailable):
		return fail.FailErr(c, http.StatusBadGateway, err,
			"upstream metadata service is unavailable")
	default:
		return fail.FailErr(c, http.StatusBadGateway, err,
			"failed to query the upstream metadata service")
	}
}

func (server *Server) countCacheOperation(operationType string) {
	//nolint:contextcheck // can't use the request's context here because it might be canceled
	server.cacheOperationCounter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("type", operationType),
	))
}
