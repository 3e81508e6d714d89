package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func TestYoutubeFetchMetadata(t *testing.T) {
	for _, tc := range []struct {
		name     string
		body     string
		expTitle string
		expErr   bool
	}{
		{
			name:     "title",
			body:     `{"items":[{"id":"abc123","snippet":{"title":"A video"}}]}`,
			expTitle: "A video",
		},
		{
			name:   "unknown video",
			body:   `{"items":[]}`,
			expErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var part, id string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				part, id = r.URL.Query().Get("part"), r.URL.Query().Get("id")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			svc, err := youtube.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
			if err != nil {
				t.Fatalf("exp nil, got %v", err)
			}

			act, err := NewYoutube(svc).FetchMetadata(context.Background(), "abc123")
			if tc.expErr != (err != nil) {
				t.Fatalf("exp error %v, got %v", tc.expErr, err)
			}
			if act.Title != tc.expTitle {
				t.Errorf("exp %q, got %q", tc.expTitle, act.Title)
			}
			if part != "snippet" {
				t.Errorf("exp only the snippet part, got %q", part)
			}
			if id != "abc123" {
				t.Errorf("exp id abc123, got %q", id)
			}
		})
	}
}
