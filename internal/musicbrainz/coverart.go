package musicbrainz

import "fmt"

const DefaultCoverArtBaseURL = "https://coverartarchive.org"

// CoverSize is the set of size variants the Cover Art Archive serves
// pre-scaled thumbnails for.
type CoverSize string

const (
	CoverSizeSmall CoverSize = "small"
	CoverSizeLarge CoverSize = "large"
)

// ParseCoverSize resolves a size request parameter, defaulting to the
// large variant when empty.
func ParseCoverSize(raw string) (CoverSize, error) {
	switch raw {
	case "":
		return CoverSizeLarge, nil
	case string(CoverSizeSmall):
		return CoverSizeSmall, nil
	case string(CoverSizeLarge):
		return CoverSizeLarge, nil
	default:
		return "", fmt.Errorf("invalid cover size %q, accepted values are: %s, %s",
			raw, CoverSizeSmall, CoverSizeLarge)
	}
}

// CoverArtURL maps a release ID and a size variant to the Cover Art
// Archive source URL for that release's front cover. No network call is
// involved.
func CoverArtURL(baseURL string, releaseID string, size CoverSize) string {
	pixels := 500

	if size == CoverSizeSmall {
		pixels = 250
	}

	return fmt.Sprintf("%s/release/%s/front-%d", baseURL, releaseID, pixels)
}
