package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type YoutubeVideoID string

// ThumbnailURL follows the public img.youtube.com convention. The image is not
// checked for existence.
func (id YoutubeVideoID) ThumbnailURL() string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
}

type TranscriptSegment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// Transcript is the plain text of a video's captions. Text is never empty for a
// transcript returned without error.
type Transcript struct {
	VideoID YoutubeVideoID
	Text    string
}

type SummaryRequest struct {
	System string
	User   string
}

type Summary struct {
	ID        uuid.UUID
	YoutubeID YoutubeVideoID
	URL       string
	Title     string
	Text      string
	Thumbnail string
	CreatedAt time.Time
}
