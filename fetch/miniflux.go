package fetch

import (
	"strings"

	"ewintr.nl/tubesum/model"
	"miniflux.app/client"
)

type MinifluxInfo struct {
	Endpoint string
	ApiKey   string
}

// Miniflux serves unread entries of subscribed YouTube channel feeds as an inbox
// of videos to summarize.
type Miniflux struct {
	client *client.Client
}

func NewMiniflux(mflInfo MinifluxInfo) *Miniflux {
	return &Miniflux{
		client: client.New(mflInfo.Endpoint, mflInfo.ApiKey),
	}
}

func (m *Miniflux) Unread() ([]model.InboxEntry, error) {
	result, err := m.client.Entries(&client.Filter{Status: "unread"})
	if err != nil {
		return nil, err
	}

	entries := make([]model.InboxEntry, 0, len(result.Entries))
	for _, entry := range result.Entries {
		if !strings.Contains(entry.URL, "youtube") {
			continue
		}
		id, err := VideoID(entry.URL)
		if err != nil {
			continue
		}
		entries = append(entries, model.InboxEntry{
			EntryID:   entry.ID,
			FeedID:    entry.FeedID,
			Title:     entry.Title,
			URL:       entry.URL,
			YoutubeID: id,
		})
	}

	return entries, nil
}

func (m *Miniflux) MarkRead(entryID int64) error {
	if err := m.client.UpdateEntries([]int64{entryID}, "read"); err != nil {
		return err
	}

	return nil
}
