package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"ewintr.nl/tubesum/storage"
	"golang.org/x/exp/slog"
)

type Processor interface {
	Process(ctx context.Context, session model.Session, url string) model.Outcome
}

type Server struct {
	page   http.Handler
	apis   map[string]http.Handler
	logger *slog.Logger
}

// NewServer wires the html page and the json apis. inbox may be nil.
func NewServer(proc Processor, summaryRepo storage.SummaryRelRepository, inbox fetch.FeedReader, logger *slog.Logger) *Server {
	apis := map[string]http.Handler{
		"summary": NewSummaryAPI(proc, summaryRepo, inbox, logger),
	}
	if inbox != nil {
		apis["inbox"] = NewInboxAPI(inbox, logger)
	}

	return &Server{
		page:   NewPage(proc, inbox, logger),
		apis:   apis,
		logger: logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	originalPath := r.URL.Path
	rec := httptest.NewRecorder() // records the response to be able to mix writing headers and content

	// route to api
	head, tail := ShiftPath(r.URL.Path)
	if len(head) == 0 {
		s.page.ServeHTTP(rec, r)
		returnResponse(w, rec)
		s.logger.Info("request served", slog.String("path", originalPath), slog.Int("status", rec.Code))
		return
	}

	rec.Header().Set("Content-Type", "application/json")
	api, ok := s.apis[head]
	switch {
	case head == "health":
		Health(rec)
	case !ok:
		Error(rec, http.StatusNotFound, "Not found", fmt.Errorf("%s is not a valid path", r.URL.Path))
	default:
		r.URL.Path = tail
		api.ServeHTTP(rec, r)
	}

	returnResponse(w, rec)
	s.logger.Info("request served", slog.String("path", originalPath), slog.Int("status", rec.Code))
}

func returnResponse(w http.ResponseWriter, rec *httptest.ResponseRecorder) {
	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	w.Write(rec.Body.Bytes())
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	// restore iri prefixes that might be mangled by path.Clean
	for k, v := range map[string]string{
		"http:/":  "http://",
		"https:/": "https://",
	} {
		p = strings.Replace(p, k, v, -1)
	}

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
