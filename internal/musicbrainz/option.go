package musicbrainz

import (
	"net/http"
	"time"
)

type Option func(client *Client)

func WithBaseURL(baseURL string) Option {
	return func(client *Client) {
		client.baseURL = baseURL
	}
}

func WithUserAgent(userAgent string) Option {
	return func(client *Client) {
		client.userAgent = userAgent
	}
}

func WithRequestsPerSecond(requestsPerSecond float64) Option {
	return func(client *Client) {
		client.requestsPerSecond = requestsPerSecond
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}
