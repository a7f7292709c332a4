package musicbrainz

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/render"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://musicbrainz.org/ws/2"

	// DefaultUserAgent identifies this service toward the upstream;
	// requests without a meaningful User-Agent are liable to be rejected
	DefaultUserAgent = "omni/0.1.0 (https://github.com/naieum/omni)"

	// DefaultRequestsPerSecond is the upstream's documented ceiling
	DefaultRequestsPerSecond = 1

	DefaultTimeout = 10 * time.Second
)

// ErrUnavailable is returned when the upstream cannot be reached at all,
// e.g. due to a network failure or a timed-out request.
var ErrUnavailable = errors.New("upstream is unavailable")

// UpstreamError is returned when the upstream responds with a non-2xx
// status code.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (err *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with HTTP %d (%s)", err.StatusCode, err.Status)
}

type Client struct {
	baseURL           string
	userAgent         string
	requestsPerSecond float64
	timeout           time.Duration
	httpClient        *http.Client
}

func New(opts ...Option) *Client {
	client := &Client{
		baseURL:           DefaultBaseURL,
		userAgent:         DefaultUserAgent,
		requestsPerSecond: DefaultRequestsPerSecond,
		timeout:           DefaultTimeout,
	}

	// Apply options
	for _, opt := range opts {
		opt(client)
	}

	// Apply defaults
	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Timeout:   client.timeout,
			Transport: newRateLimitedTransport(http.DefaultTransport, client.requestsPerSecond),
		}
	}

	return client
}

func (client *Client) SearchArtists(
	ctx context.Context,
	query string,
	limit int,
	offset int,
) (*ArtistSearchResult, error) {
	var result ArtistSearchResult

	if err := client.get(ctx, "/artist", searchParams(query, limit, offset), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (client *Client) SearchReleases(
	ctx context.Context,
	query string,
	limit int,
	offset int,
) (*ReleaseSearchResult, error) {
	var result ReleaseSearchResult

	if err := client.get(ctx, "/release", searchParams(query, limit, offset), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (client *Client) SearchRecordings(
	ctx context.Context,
	query string,
	limit int,
	offset int,
) (*RecordingSearchResult, error) {
	var result RecordingSearchResult

	if err := client.get(ctx, "/recording", searchParams(query, limit, offset), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (client *Client) Artist(ctx context.Context, id string) (*Artist, error) {
	var artist Artist

	if err := client.get(ctx, "/artist/"+id, url.Values{
		"inc": []string{"tags+ratings+release-groups"},
	}, &artist); err != nil {
		return nil, err
	}

	return &artist, nil
}

func (client *Client) Release(ctx context.Context, id string) (*Release, error) {
	var release Release

	if err := client.get(ctx, "/release/"+id, url.Values{
		"inc": []string{"artists+recordings+release-groups"},
	}, &release); err != nil {
		return nil, err
	}

	return &release, nil
}

func (client *Client) Recording(ctx context.Context, id string) (*Recording, error) {
	var recording Recording

	if err := client.get(ctx, "/recording/"+id, url.Values{
		"inc": []string{"artists+releases"},
	}, &recording); err != nil {
		return nil, err
	}

	return &recording, nil
}

func (client *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestURL, err := url.Parse(client.baseURL + endpoint)
	if err != nil {
		return err
	}

	params.Set("fmt", "json")
	requestURL.RawQuery = params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return err
	}

	// Identify ourselves toward the upstream
	request.Header.Set("User-Agent", client.userAgent)
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return &UpstreamError{
			StatusCode: response.StatusCode,
			Status:     http.StatusText(response.StatusCode),
		}
	}

	if err := render.DecodeJSON(response.Body, out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}

	return nil
}

func searchParams(query string, limit int, offset int) url.Values {
	return url.Values{
		"query":  []string{query},
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}
}
