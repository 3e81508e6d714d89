package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ewintr.nl/tubesum/fetch"
	"golang.org/x/exp/slog"
)

type InboxAPI struct {
	inbox  fetch.FeedReader
	logger *slog.Logger
}

func NewInboxAPI(inbox fetch.FeedReader, logger *slog.Logger) *InboxAPI {
	return &InboxAPI{
		inbox:  inbox,
		logger: logger,
	}
}

func (i *InboxAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)
	if r.Method != http.MethodGet || subPath != "" {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the inbox api", r.Method, subPath))
		return
	}

	entries, err := i.inbox.Unread()
	if err != nil {
		i.logger.Error("could not fetch unread entries", slog.String("err", err.Error()))
		Error(w, http.StatusBadGateway, "could not fetch unread entries", err)
		return
	}

	type respEntry struct {
		EntryID   int64  `json:"entry_id"`
		Title     string `json:"title"`
		URL       string `json:"url"`
		YoutubeID string `json:"youtube_id"`
	}
	resp := make([]respEntry, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, respEntry{
			EntryID:   e.EntryID,
			Title:     e.Title,
			URL:       e.URL,
			YoutubeID: string(e.YoutubeID),
		})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
