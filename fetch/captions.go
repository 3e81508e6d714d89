package fetch

import (
	"context"
	"errors"
	"time"

	"ewintr.nl/tubesum/model"
	ytdl "github.com/kkdai/youtube/v2"
)

// Captions reads transcripts through the same innertube endpoint the YouTube
// web player uses. No API key is needed.
type Captions struct {
	client *ytdl.Client
	lang   string
}

func NewCaptions(client *ytdl.Client, lang string) *Captions {
	if client == nil {
		client = &ytdl.Client{}
	}
	if lang == "" {
		lang = "en"
	}
	return &Captions{
		client: client,
		lang:   lang,
	}
}

func (c *Captions) Segments(ctx context.Context, id model.YoutubeVideoID) ([]model.TranscriptSegment, error) {
	transcript, err := c.client.GetTranscriptCtx(ctx, &ytdl.Video{ID: string(id)}, c.lang)
	if err != nil {
		return nil, err
	}
	if len(transcript) == 0 {
		return nil, errors.New("no transcript segments")
	}

	segments := make([]model.TranscriptSegment, len(transcript))
	for i, s := range transcript {
		segments[i] = model.TranscriptSegment{
			Text:     s.Text,
			Start:    time.Duration(s.StartMs) * time.Millisecond,
			Duration: time.Duration(s.Duration) * time.Millisecond,
		}
	}

	return segments, nil
}
