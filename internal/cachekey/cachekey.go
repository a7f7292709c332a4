// Package cachekey derives the keys under which the proxy stores entries
// in both cache tiers.
//
// The query text is included verbatim: no case or whitespace normalization
// is performed, so two queries that only differ in casing occupy distinct
// cache entries.
package cachekey

import (
	"fmt"
	"github.com/naieum/omni/internal/musicbrainz"
	"github.com/naieum/omni/internal/resource"
)

const domain = "music"

// Search derives the structured-data cache tier key for a search request.
func Search(kind resource.Kind, text string, limit int, offset int) string {
	return fmt.Sprintf("%s:search:%s:%s:%d:%d", domain, kind, text, limit, offset)
}

// Detail derives the structured-data cache tier key for a detail lookup.
func Detail(kind resource.Kind, id string) string {
	return fmt.Sprintf("%s:%s:%s", domain, kind, id)
}

// CoverArt derives the blob cache tier key for a release's cover art.
//
// The key encodes both the release identity and the size variant, so a
// given key's content never changes once written.
func CoverArt(releaseID string, size musicbrainz.CoverSize) string {
	return fmt.Sprintf("%s/albums/%s/cover-%s.jpg", domain, releaseID, size)
}
