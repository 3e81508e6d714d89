package process

import (
	"context"
	"strings"
	"time"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"ewintr.nl/tubesum/storage"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const siteMarker = "youtube"

type TranscriptFetcher interface {
	Fetch(ctx context.Context, url string) (model.Transcript, error)
}

type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, session model.Session, transcript string) (string, error)
}

type Pipeline struct {
	fetcher    TranscriptFetcher
	summarizer Summarizer
	metadata   fetch.MetadataFetcher
	relStorage storage.SummaryRelRepository
	vecStorage storage.SummaryVecRepository
	timeout    time.Duration
	logger     *slog.Logger
}

func NewPipeline(fetcher TranscriptFetcher, summarizer Summarizer, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:    fetcher,
		summarizer: summarizer,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

type Option func(*Pipeline)

func WithMetadata(metadata fetch.MetadataFetcher) Option {
	return func(p *Pipeline) { p.metadata = metadata }
}

func WithRelStorage(rel storage.SummaryRelRepository) Option {
	return func(p *Pipeline) { p.relStorage = rel }
}

func WithVecStorage(vec storage.SummaryVecRepository) Option {
	return func(p *Pipeline) { p.vecStorage = vec }
}

// WithTimeout bounds the whole request. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) { p.timeout = timeout }
}

// Validate checks the input before anything leaves the process.
func Validate(session model.Session, url string) *model.FlowError {
	if session.Empty() || strings.TrimSpace(url) == "" {
		return model.NewValidationError(model.MsgMissingInput)
	}
	if !strings.Contains(url, siteMarker) {
		return model.NewValidationError(model.MsgInvalidURL)
	}

	return nil
}

// Process runs one user action from validation to a displayable summary. It
// does not retry, the first failure ends the request.
func (p *Pipeline) Process(ctx context.Context, session model.Session, url string) model.Outcome {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.Debug("processing request", slog.String("stage", string(model.StageValidating)), slog.String("url", url))
	if ferr := Validate(session, url); ferr != nil {
		return p.fail(model.StageValidating, url, ferr)
	}

	p.logger.Debug("processing request", slog.String("stage", string(model.StageFetching)), slog.String("url", url))
	transcript, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return p.fail(model.StageFetching, url, model.AsFlowError(err, model.ErrExtraction))
	}

	p.logger.Debug("processing request", slog.String("stage", string(model.StageSummarizing)), slog.String("video", string(transcript.VideoID)), slog.String("processor", p.summarizer.Name()))
	text, err := p.summarizer.Summarize(ctx, session, transcript.Text)
	if err != nil {
		return p.fail(model.StageSummarizing, url, model.AsFlowError(err, model.ErrSummarization))
	}

	summary := &model.Summary{
		ID:        uuid.New(),
		YoutubeID: transcript.VideoID,
		URL:       url,
		Title:     p.title(ctx, transcript.VideoID),
		Text:      text,
		Thumbnail: transcript.VideoID.ThumbnailURL(),
		CreatedAt: time.Now(),
	}
	p.archive(ctx, summary)

	p.logger.Info("summary ready", slog.String("stage", string(model.StageDisplaying)), slog.String("video", string(summary.YoutubeID)), slog.String("id", summary.ID.String()))
	return model.Outcome{
		Stage:   model.StageDisplaying,
		Summary: summary,
	}
}

func (p *Pipeline) fail(stage model.Stage, url string, ferr *model.FlowError) model.Outcome {
	attrs := []any{slog.String("stage", string(stage)), slog.String("url", url), slog.String("error", ferr.Error())}
	if stage == model.StageValidating {
		p.logger.Info("rejected request", attrs...)
	} else {
		p.logger.Error("failed to process request", attrs...)
	}

	return model.Outcome{
		Stage:    model.StageError,
		FailedAt: stage,
		Err:      ferr,
	}
}

// title is best effort, a missing title never fails the request.
func (p *Pipeline) title(ctx context.Context, id model.YoutubeVideoID) string {
	if p.metadata == nil {
		return ""
	}
	md, err := p.metadata.FetchMetadata(ctx, id)
	if err != nil {
		p.logger.Warn("failed to fetch metadata", slog.String("video", string(id)), slog.String("error", err.Error()))
		return ""
	}

	return md.Title
}

func (p *Pipeline) archive(ctx context.Context, summary *model.Summary) {
	if p.relStorage != nil {
		if err := p.relStorage.Save(ctx, summary); err != nil {
			p.logger.Error("failed to save summary in rel db", slog.String("video", string(summary.YoutubeID)), slog.String("error", err.Error()))
		}
	}
	if p.vecStorage != nil {
		if err := p.vecStorage.Save(ctx, summary); err != nil {
			p.logger.Error("failed to save summary in vec db", slog.String("video", string(summary.YoutubeID)), slog.String("error", err.Error()))
		}
	}
}
