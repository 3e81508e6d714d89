package fetch

import (
	"context"

	"ewintr.nl/tubesum/model"
)

type Metadata struct {
	Title string
}

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, id model.YoutubeVideoID) (Metadata, error)
}
