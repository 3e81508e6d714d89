package fetch

import (
	"context"
	"fmt"

	"ewintr.nl/tubesum/model"
	"google.golang.org/api/youtube/v3"
)

type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

func (y *Youtube) FetchMetadata(ctx context.Context, id model.YoutubeVideoID) (Metadata, error) {
	call := y.Client.Videos.
		List([]string{"snippet"}).
		Id(string(id)).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return Metadata{}, err
	}

	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		return Metadata{Title: item.Snippet.Title}, nil
	}

	return Metadata{}, fmt.Errorf("no metadata for video %s", id)
}
