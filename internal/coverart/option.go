package coverart

import (
	"go.uber.org/zap"
	"net/http"
)

type Option func(fetcher *Fetcher)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(fetcher *Fetcher) {
		fetcher.httpClient = httpClient
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(fetcher *Fetcher) {
		fetcher.logger = logger
	}
}
