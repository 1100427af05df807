package entities

// MediaKind tags the media type of a daily picture result.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// PictureOfDay is the raw result of a single picture-of-the-day fetch.
// It is ephemeral: only the Enrichment derived from it is persisted.
type PictureOfDay struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Explanation string    `json:"explanation"`
	Copyright   string    `json:"copyright"`
	MediaKind   MediaKind `json:"media_type"`
}

// Enrichment is the astronomy-image metadata attached to an appointment.
type Enrichment struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Author string `json:"author"`
	Note   string `json:"note"`
}

const (
	notePrefix   = "Fun fact: "
	noteMaxLen   = 200
	noteEllipsis = "..."

	// DefaultAuthor is used when the upstream response carries no copyright.
	DefaultAuthor = "NASA"
)

// NewEnrichment derives the persisted enrichment record from a fetched
// picture. The note is a fixed-prefix excerpt of the explanation, capped
// at 200 characters.
func NewEnrichment(pic *PictureOfDay) *Enrichment {
	author := pic.Copyright
	if author == "" {
		author = DefaultAuthor
	}

	excerpt := pic.Explanation
	if runes := []rune(excerpt); len(runes) > noteMaxLen {
		excerpt = string(runes[:noteMaxLen])
	}

	return &Enrichment{
		URL:    pic.URL,
		Title:  pic.Title,
		Date:   pic.Date,
		Author: author,
		Note:   notePrefix + excerpt + noteEllipsis,
	}
}
