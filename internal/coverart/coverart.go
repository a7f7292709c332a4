package coverart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	blobpkg "github.com/naieum/omni/internal/blob"
	"github.com/naieum/omni/internal/opentelemetry"
	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrNotFound is returned when the source has no cover art for the
// requested release.
var ErrNotFound = errors.New("no cover art found at the source")

const (
	defaultFetchTimeout = 30 * time.Second

	// fallbackContentType applies when the source omits the Content-Type header
	fallbackContentType = "image/jpeg"
)

// Fetcher serves cover-art blobs from the blob store, falling back to a
// pass-through fetch from the source on a miss.
//
// The fetch path is store-after-serve: the freshly fetched bytes are
// returned to the caller first and persisted in the background, so the
// first caller doesn't pay for the store's write latency. A failed
// background store is logged and counted, never surfaced.
type Fetcher struct {
	store      blobpkg.Store
	httpClient *http.Client
	logger     *zap.SugaredLogger

	// storing tracks keys with a background store already in flight, so a
	// burst of misses for the same key spawns at most one store
	storing        *xsync.MapOf[string, struct{}]
	storesInFlight sync.WaitGroup

	storeFailuresCounter metric.Int64Counter
}

func New(store blobpkg.Store, opts ...Option) (*Fetcher, error) {
	fetcher := &Fetcher{
		store:   store,
		storing: xsync.NewMapOf[string, struct{}](),
	}

	// Apply options
	for _, opt := range opts {
		opt(fetcher)
	}

	// Apply defaults
	if fetcher.httpClient == nil {
		fetcher.httpClient = &http.Client{
			Timeout: defaultFetchTimeout,
		}
	}

	if fetcher.logger == nil {
		fetcher.logger = zap.NewNop().Sugar()
	}

	// Metrics
	var err error

	fetcher.storeFailuresCounter, err = opentelemetry.DefaultMeter.Int64Counter(
		"org.naieum.omni.coverart.store_failures_total",
	)
	if err != nil {
		return nil, err
	}

	return fetcher, nil
}

// GetOrFetch returns the blob stored under key, or fetches it from
// sourceURL on a miss. The returned boolean reports whether the blob was
// served from the store.
func (fetcher *Fetcher) GetOrFetch(
	ctx context.Context,
	key string,
	sourceURL string,
) ([]byte, string, bool, error) {
	// Cheap existence probe first; a store failure here degrades to a
	// miss instead of failing the request
	exists, err := fetcher.store.Exists(ctx, key)
	if err != nil {
		fetcher.logger.Warnf("failed to probe the blob store for key %q, "+
			"falling back to a source fetch: %v", key, err)
	}

	if exists {
		blobBytes, contentType, err := fetcher.get(ctx, key)
		if err == nil {
			return blobBytes, contentType, true, nil
		}

		fetcher.logger.Warnf("failed to retrieve blob %q, "+
			"falling back to a source fetch: %v", key, err)
	}

	blobBytes, contentType, err := fetcher.fetch(ctx, sourceURL)
	if err != nil {
		return nil, "", false, err
	}

	// Store-after-serve: persist in the background and return immediately
	fetcher.storeInBackground(key, contentType, blobBytes)

	return blobBytes, contentType, false, nil
}

// Wait blocks until all background stores have finished. Used on
// shutdown and in tests; the request path never calls it.
func (fetcher *Fetcher) Wait() {
	fetcher.storesInFlight.Wait()
}

func (fetcher *Fetcher) get(ctx context.Context, key string) ([]byte, string, error) {
	blobReader, contentType, err := fetcher.store.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = blobReader.Close()
	}()

	blobBytes, err := io.ReadAll(blobReader)
	if err != nil {
		return nil, "", err
	}

	return blobBytes, contentType, nil
}

func (fetcher *Fetcher) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", err
	}

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch cover art from the source: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, "", ErrNotFound
	}

	blobBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read cover art from the source: %w", err)
	}

	contentType := response.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackContentType
	}

	return blobBytes, contentType, nil
}

func (fetcher *Fetcher) storeInBackground(key string, contentType string, blobBytes []byte) {
	if _, loaded := fetcher.storing.LoadOrStore(key, struct{}{}); loaded {
		// Another request is already storing this key; its bytes are
		// identical to ours, so there's nothing left to do
		return
	}

	fetcher.storesInFlight.Add(1)

	go func() {
		defer fetcher.storesInFlight.Done()
		defer fetcher.storing.Delete(key)

		// Deliberately not derived from the request's context: the store
		// should complete even if the requester has already disconnected,
		// since it benefits future requests
		ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
		defer cancel()

		if err := fetcher.store.Put(ctx, key, contentType, bytes.NewReader(blobBytes)); err != nil {
			fetcher.logger.Warnf("failed to store blob %q in the background: %v", key, err)

			fetcher.storeFailuresCounter.Add(ctx, 1)
		}
	}()
}
