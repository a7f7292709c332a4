package server

import (
	"context"
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	blobnoop "github.com/naieum/omni/internal/blob/noop"
	cachepkg "github.com/naieum/omni/internal/cache"
	"github.com/naieum/omni/internal/cache/noop"
	"github.com/naieum/omni/internal/coverart"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/naieum/omni/internal/opentelemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"net"
	"net/http"
	"strings"
	"time"
)

// TTLs by operation: search results drift as the catalog updates but
// volatility is low; detail records change rarely.
const (
	searchTTL = 15 * time.Minute
	detailTTL = time.Hour
)

type Server struct {
	listener   net.Listener
	httpServer *http.Server
	echo       *echo.Echo
	logger     *zap.SugaredLogger

	cache           cachepkg.Cache
	metadata        *musicbrainz.Client
	coverArt        *coverart.Fetcher
	coverArtBaseURL string

	// fetches coalesces concurrent upstream fetches for the same cache
	// key, so a miss stampede results in a single upstream request
	fetches singleflight.Group

	// Metrics
	requestsCounter       metric.Int64Counter
	cacheOperationCounter metric.Int64Counter
}

func New(addr string, opts ...Option) (*Server, error) {
	server := &Server{
		coverArtBaseURL: musicbrainz.DefaultCoverArtBaseURL,
	}

	// Listen on the desired port
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	server.listener = listener

	// Apply options
	for _, opt := range opts {
		opt(server)
	}

	// Apply defaults
	if server.cache == nil {
		server.cache = noop.New()
	}

	if server.metadata == nil {
		server.metadata = musicbrainz.New()
	}

	if server.logger == nil {
		server.logger = zap.NewNop().Sugar()
	}

	if server.coverArt == nil {
		server.coverArt, err = coverart.New(blobnoop.New(), coverart.WithLogger(server.logger))
		if err != nil {
			return nil, err
		}
	}

	// Metrics
	server.requestsCounter, err = opentelemetry.DefaultMeter.Int64Counter("org.naieum.omni.requests.total")
	if err != nil {
		return nil, err
	}

	server.cacheOperationCounter, err = opentelemetry.DefaultMeter.Int64Counter(
		"org.naieum.omni.cache.operation_count",
	)
	if err != nil {
		return nil, err
	}

	// Configure the HTTP server
	server.echo = echo.New()
	server.echo.HideBanner = true
	server.echo.HidePort = true
	server.echo.Use(echozap.ZapLogger(server.logger.Desugar()))
	server.echo.Use(server.countRequests)

	server.echo.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "healthy")
	})

	server.echo.GET("/search", server.handleSearch)

	server.echo.GET("/artist/:id", server.handleArtist)

	// Alias routes are registered against the very same handler funcs,
	// so "album" and "track" requests never leave the process
	server.echo.GET("/release/:id", server.handleRelease)
	server.echo.GET("/album/:id", server.handleRelease)

	server.echo.GET("/recording/:id", server.handleRecording)
	server.echo.GET("/track/:id", server.handleRecording)

	server.echo.GET("/cover/:releaseId", server.handleCover)

	server.httpServer = &http.Server{
		Handler:           server.echo,
		ReadHeaderTimeout: 30 * time.Second,
	}

	return server, nil
}

func (server *Server) Addr() string {
	return strings.ReplaceAll(server.listener.Addr().String(), "[::]", "127.0.0.1")
}

func (server *Server) Run(ctx context.Context) error {
	server.logger.Infof("listening on %s", server.Addr())

	go func() {
		<-ctx.Done()

		_ = server.httpServer.Close()

		// Let in-flight background blob stores finish: they benefit
		// future requests even though no one is waiting for them
		server.coverArt.Wait()
	}()

	return server.httpServer.Serve(server.listener)
}

func (server *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		//nolint:contextcheck // can't use the request's context here because it might be canceled
		server.requestsCounter.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("method", c.Request().Method),
			attribute.Int("status_code", c.Response().Status),
			attribute.String("path", c.Path()),
		))

		return err
	}
}
