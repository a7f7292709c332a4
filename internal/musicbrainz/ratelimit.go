package musicbrainz

import (
	"golang.org/x/time/rate"
	"net/http"
)

// rateLimitedTransport delays outbound requests through a token bucket
// shared across all of the client's calls, since the upstream permits at
// most one request per second per client[1].
//
// [1]: https://musicbrainz.org/doc/MusicBrainz_API/Rate_Limiting
type rateLimitedTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func newRateLimitedTransport(base http.RoundTripper, requestsPerSecond float64) *rateLimitedTransport {
	return &rateLimitedTransport{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		base:    base,
	}
}

func (transport *rateLimitedTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	// Wait errors out if the request cannot be processed within the
	// context's deadline, instead of waiting the entire duration
	if err := transport.limiter.Wait(request.Context()); err != nil {
		return nil, err
	}

	return transport.base.RoundTrip(request)
}
