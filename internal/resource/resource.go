// Package resource enumerates the MusicBrainz resource kinds served by the
// proxy and resolves their accepted spellings to a canonical kind.
package resource

import (
	"fmt"
	"github.com/samber/lo"
	"slices"
	"strings"
)

// Kind is a closed enumeration: adding a new resource kind requires
// extending both the constants below and the dispatch sites that switch
// over them.
type Kind int

const (
	Artist Kind = iota
	Release
	Recording
)

// spellings maps every accepted request spelling to its canonical kind,
// so that "album" and "release" (and "track" and "recording") end up in
// the same handler and the same cache entries.
//
//nolint:gochecknoglobals
var spellings = map[string]Kind{
	"artist":    Artist,
	"release":   Release,
	"album":     Release,
	"recording": Recording,
	"track":     Recording,
}

func Parse(raw string) (Kind, error) {
	kind, ok := spellings[raw]
	if !ok {
		return 0, fmt.Errorf("invalid resource kind %q, accepted values are: %s",
			raw, strings.Join(AcceptedSpellings(), ", "))
	}

	return kind, nil
}

func AcceptedSpellings() []string {
	spellings := lo.Keys(spellings)

	slices.Sort(spellings)

	return spellings
}

func (kind Kind) String() string {
	switch kind {
	case Artist:
		return "artist"
	case Release:
		return "release"
	case Recording:
		return "recording"
	default:
		return "unknown"
	}
}
