package musicbrainz_test

import (
	"context"
	"encoding/json"
	"github.com/google/uuid"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchArtists(t *testing.T) {
	ctx := context.Background()

	var receivedUserAgent string

	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedUserAgent = request.Header.Get("User-Agent")

		require.Equal(t, "/artist", request.URL.Path)
		require.Equal(t, "json", request.URL.Query().Get("fmt"))
		require.Equal(t, "radiohead", request.URL.Query().Get("query"))
		require.Equal(t, "5", request.URL.Query().Get("limit"))
		require.Equal(t, "0", request.URL.Query().Get("offset"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(&musicbrainz.ArtistSearchResult{
			Count:  1,
			Offset: 0,
			Artists: []musicbrainz.Artist{
				{
					ID:      "a74b1b7f-71a5-4011-9441-d0b5e4122711",
					Name:    "Radiohead",
					Country: "GB",
				},
			},
		})
	}))
	defer upstream.Close()

	client := musicbrainz.New(musicbrainz.WithBaseURL(upstream.URL))

	result, err := client.SearchArtists(ctx, "radiohead", 5, 0)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	require.Len(t, result.Artists, 1)
	require.Equal(t, "Radiohead", result.Artists[0].Name)

	// Every outbound request carries the identifying User-Agent
	require.Equal(t, musicbrainz.DefaultUserAgent, receivedUserAgent)
}

func TestDetailIncludesSubqueries(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/release/"+id, request.URL.Path)
		require.Equal(t, "artists+recordings+release-groups", request.URL.Query().Get("inc"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(&musicbrainz.Release{
			ID:    id,
			Title: "OK Computer",
			Date:  "1997-05-21",
		})
	}))
	defer upstream.Close()

	client := musicbrainz.New(musicbrainz.WithBaseURL(upstream.URL))

	release, err := client.Release(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "OK Computer", release.Title)
}

func TestUpstreamError(t *testing.T) {
	ctx := context.Background()

	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	client := musicbrainz.New(musicbrainz.WithBaseURL(upstream.URL))

	_, err := client.SearchArtists(ctx, "radiohead", 10, 0)

	var upstreamErr *musicbrainz.UpstreamError

	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusServiceUnavailable, upstreamErr.StatusCode)
}

func TestUpstreamUnavailable(t *testing.T) {
	ctx := context.Background()

	// An upstream that is already gone triggers a network failure
	upstream := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	upstream.Close()

	client := musicbrainz.New(musicbrainz.WithBaseURL(upstream.URL))

	_, err := client.Artist(ctx, uuid.NewString())
	require.ErrorIs(t, err, musicbrainz.ErrUnavailable)
}

func TestRateLimiterHonorsCancellation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte("{}"))
	}))
	defer upstream.Close()

	// With one token per minute the second call has to wait, and a
	// canceled context must abort that wait instead of blocking
	client := musicbrainz.New(
		musicbrainz.WithBaseURL(upstream.URL),
		musicbrainz.WithRequestsPerSecond(1.0/60.0),
	)

	_, err := client.SearchArtists(context.Background(), "radiohead", 10, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.SearchArtists(ctx, "radiohead", 10, 0)
	require.ErrorIs(t, err, musicbrainz.ErrUnavailable)
}
