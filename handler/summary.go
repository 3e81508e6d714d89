package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"ewintr.nl/tubesum/storage"
	"golang.org/x/exp/slog"
)

const defaultListLimit = 50

type SummaryAPI struct {
	proc        Processor
	summaryRepo storage.SummaryRelRepository
	inbox       fetch.FeedReader
	logger      *slog.Logger
}

func NewSummaryAPI(proc Processor, summaryRepo storage.SummaryRelRepository, inbox fetch.FeedReader, logger *slog.Logger) *SummaryAPI {
	return &SummaryAPI{
		proc:        proc,
		summaryRepo: summaryRepo,
		inbox:       inbox,
		logger:      logger,
	}
}

func (s *SummaryAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && subPath == "":
		s.List(w, r)
	case r.Method == http.MethodPost && subPath == "":
		s.Create(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the summary api", r.Method, subPath))
	}
}

type summaryRequest struct {
	APIKey  string `json:"api_key"`
	URL     string `json:"url"`
	EntryID int64  `json:"entry_id,omitempty"`
}

type respSummary struct {
	ID        string    `json:"id"`
	YoutubeID string    `json:"youtube_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Summary   string    `json:"summary"`
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"created_at"`
}

func toRespSummary(s *model.Summary) respSummary {
	return respSummary{
		ID:        s.ID.String(),
		YoutubeID: string(s.YoutubeID),
		URL:       s.URL,
		Title:     s.Title,
		Summary:   s.Text,
		Thumbnail: s.Thumbnail,
		CreatedAt: s.CreatedAt,
	}
}

func (s *SummaryAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.returnErr(r.Context(), w, http.StatusBadRequest, "could not parse request body", err)
		return
	}

	outcome := s.proc.Process(r.Context(), model.Session{Credential: req.APIKey}, req.URL)
	if outcome.Failed() {
		Error(w, FlowStatus(outcome.Err), outcome.Err.Message, outcome.Err.Kind, string(outcome.FailedAt))
		return
	}
	markRead(s.inbox, req.EntryID, s.logger)

	body, err := json.Marshal(struct {
		Summary respSummary `json:"summary"`
	}{
		Summary: toRespSummary(outcome.Summary),
	})
	if err != nil {
		s.returnErr(r.Context(), w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *SummaryAPI) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			s.returnErr(r.Context(), w, http.StatusBadRequest, "invalid limit", fmt.Errorf("limit %q is not a positive number", l))
			return
		}
		limit = n
	}

	summaries, err := s.summaryRepo.List(r.Context(), limit)
	if err != nil {
		s.returnErr(r.Context(), w, http.StatusInternalServerError, "could not list summaries", err)
		return
	}

	resp := make([]respSummary, 0, len(summaries))
	for _, sum := range summaries {
		resp = append(resp, toRespSummary(sum))
	}

	jsonBody, err := json.Marshal(resp)
	if err != nil {
		s.returnErr(r.Context(), w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(jsonBody)
}

func (s *SummaryAPI) returnErr(_ context.Context, w http.ResponseWriter, status int, message string, err error, details ...any) {
	s.logger.Error(message, slog.String("err", err.Error()), slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}

// markRead is best effort, the summary is already there.
func markRead(inbox fetch.FeedReader, entryID int64, logger *slog.Logger) {
	if inbox == nil || entryID <= 0 {
		return
	}
	if err := inbox.MarkRead(entryID); err != nil {
		logger.Error("failed to mark entry as read", slog.Int64("entry", entryID), slog.String("error", err.Error()))
	}
}
