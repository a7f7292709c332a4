package musicbrainz_test

import (
	"github.com/google/uuid"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseCoverSize(t *testing.T) {
	size, err := musicbrainz.ParseCoverSize("")
	require.NoError(t, err)
	require.Equal(t, musicbrainz.CoverSizeLarge, size)

	size, err = musicbrainz.ParseCoverSize("small")
	require.NoError(t, err)
	require.Equal(t, musicbrainz.CoverSizeSmall, size)

	size, err = musicbrainz.ParseCoverSize("large")
	require.NoError(t, err)
	require.Equal(t, musicbrainz.CoverSizeLarge, size)

	_, err = musicbrainz.ParseCoverSize("medium")
	require.Error(t, err)
}

func TestCoverArtURL(t *testing.T) {
	id := uuid.NewString()

	require.Equal(t, "https://coverartarchive.org/release/"+id+"/front-500",
		musicbrainz.CoverArtURL(musicbrainz.DefaultCoverArtBaseURL, id, musicbrainz.CoverSizeLarge))
	require.Equal(t, "https://coverartarchive.org/release/"+id+"/front-250",
		musicbrainz.CoverArtURL(musicbrainz.DefaultCoverArtBaseURL, id, musicbrainz.CoverSizeSmall))
}
