package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

var (
	ErrNoVideoID       = errors.New("no video id in url")
	ErrEmptyTranscript = errors.New("transcript is empty")
)

type TranscriptSource interface {
	Segments(ctx context.Context, id model.YoutubeVideoID) ([]model.TranscriptSegment, error)
}

type TranscriptCache interface {
	Get(ctx context.Context, url string) (model.Transcript, bool)
	Set(ctx context.Context, url string, transcript model.Transcript)
}

type Fetcher struct {
	source TranscriptSource
	cache  TranscriptCache
	logger *slog.Logger
}

func NewFetcher(source TranscriptSource, cache TranscriptCache, logger *slog.Logger) *Fetcher {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Fetcher{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Fetch returns the space joined transcript of the video the url points to.
// Every failure comes back as a *model.FlowError of kind model.ErrExtraction
// together with an empty transcript. Results are memoized by the raw url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (model.Transcript, error) {
	if t, ok := f.cache.Get(ctx, url); ok {
		f.logger.Debug("transcript cache hit", slog.String("url", url))
		return t, nil
	}

	id, err := VideoID(url)
	if err != nil {
		return model.Transcript{}, model.NewExtractionError(err)
	}

	f.logger.Info("fetching transcript", slog.String("video", string(id)))
	segments, err := f.source.Segments(ctx, id)
	if err != nil {
		f.logger.Warn("failed to fetch transcript", slog.String("video", string(id)), slog.String("error", err.Error()))
		return model.Transcript{}, model.NewExtractionError(fmt.Errorf("fetch segments: %w", err))
	}

	text := JoinSegments(segments)
	if strings.TrimSpace(text) == "" {
		return model.Transcript{}, model.NewExtractionError(ErrEmptyTranscript)
	}

	t := model.Transcript{
		VideoID: id,
		Text:    text,
	}
	f.cache.Set(ctx, url, t)
	f.logger.Info("fetched transcript", slog.String("video", string(id)), slog.Int("segments", len(segments)))

	return t, nil
}

// VideoID takes whatever follows the first "=" up to the next one. This only
// works for watch?v=ID style urls: short links have no "=" and fail, extra
// query parameters end up in the id.
func VideoID(url string) (model.YoutubeVideoID, error) {
	parts := strings.Split(url, "=")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrNoVideoID, url)
	}

	return model.YoutubeVideoID(parts[1]), nil
}

func JoinSegments(segments []model.TranscriptSegment) string {
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}

	return strings.Join(texts, " ")
}
