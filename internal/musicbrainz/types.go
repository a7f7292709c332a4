package musicbrainz

// Record shapes below are read-only projections of what the MusicBrainz
// Web Service returns in JSON mode[1]; field names follow the wire format.
//
// [1]: https://musicbrainz.org/doc/MusicBrainz_API

type LifeSpan struct {
	Begin string `json:"begin,omitempty"`
	End   string `json:"end,omitempty"`
}

type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Artist struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SortName       string    `json:"sort-name,omitempty"`
	Disambiguation string    `json:"disambiguation,omitempty"`
	Country        string    `json:"country,omitempty"`
	LifeSpan       *LifeSpan `json:"life-span,omitempty"`
	Tags           []Tag     `json:"tags,omitempty"`
	Score          int       `json:"score,omitempty"`
}

type ReleaseGroup struct {
	ID          string `json:"id"`
	PrimaryType string `json:"primary-type,omitempty"`
}

type CreditedArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArtistCredit struct {
	Artist CreditedArtist `json:"artist"`
}

type Release struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date,omitempty"`
	Country      string         `json:"country,omitempty"`
	ReleaseGroup *ReleaseGroup  `json:"release-group,omitempty"`
	ArtistCredit []ArtistCredit `json:"artist-credit,omitempty"`
	Score        int            `json:"score,omitempty"`
}

type ReleaseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Length       int            `json:"length,omitempty"` // milliseconds
	ArtistCredit []ArtistCredit `json:"artist-credit,omitempty"`
	Releases     []ReleaseRef   `json:"releases,omitempty"`
	Score        int            `json:"score,omitempty"`
}

// Search response envelopes: the upstream counts the total number of
// matches and echoes back the offset, with the matching records under a
// per-kind field.

type ArtistSearchResult struct {
	Created string   `json:"created,omitempty"`
	Count   int      `json:"count"`
	Offset  int      `json:"offset"`
	Artists []Artist `json:"artists"`
}

type ReleaseSearchResult struct {
	Created  string    `json:"created,omitempty"`
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Releases []Release `json:"releases"`
}

type RecordingSearchResult struct {
	Created    string      `json:"created,omitempty"`
	Count      int         `json:"count"`
	Offset     int         `json:"offset"`
	Recordings []Recording `json:"recordings"`
}
