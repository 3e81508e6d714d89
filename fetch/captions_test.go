package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"ewintr.nl/tubesum/model"
	ytdl "github.com/kkdai/youtube/v2"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubTranscriptClient(t *testing.T, status int, body string) *ytdl.Client {
	t.Helper()
	return &ytdl.Client{HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/get_transcript") {
			t.Errorf("unexpected path %s", req.URL.Path)
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	})}}
}

const innertubeTranscript = `{"actions":[{"elementsCommand":{"transformEntityCommand":{"arguments":{"transformTranscriptSegmentListArguments":{"overwrite":{"initialSegments":[
{"transcriptSegmentRenderer":{"startMs":"0","endMs":"1500","snippet":{"elementsAttributedString":{"content":"Hello"}},"startTimeText":{"elementsAttributedString":{"content":"0:00"}}}},
{"transcriptSegmentRenderer":{"startMs":"1500","endMs":"4000","snippet":{"elementsAttributedString":{"content":"world"}},"startTimeText":{"elementsAttributedString":{"content":"0:01"}}}}
]}}}}}}]}`

func TestCaptionsSegments(t *testing.T) {
	t.Run("maps segments", func(t *testing.T) {
		c := NewCaptions(stubTranscriptClient(t, http.StatusOK, innertubeTranscript), "")

		act, err := c.Segments(context.Background(), "abc123")
		if err != nil {
			t.Fatalf("exp nil, got %v", err)
		}
		exp := []model.TranscriptSegment{
			{Text: "Hello", Start: 0, Duration: 1500 * time.Millisecond},
			{Text: "world", Start: 1500 * time.Millisecond, Duration: 2500 * time.Millisecond},
		}
		if len(act) != len(exp) {
			t.Fatalf("exp %d segments, got %d", len(exp), len(act))
		}
		for i := range exp {
			if act[i] != exp[i] {
				t.Errorf("exp %v at %d, got %v", exp[i], i, act[i])
			}
		}
		if JoinSegments(act) != "Hello world" {
			t.Errorf("exp joined text, got %q", JoinSegments(act))
		}
	})

	t.Run("no transcript", func(t *testing.T) {
		c := NewCaptions(stubTranscriptClient(t, http.StatusOK, `{"actions":[]}`), "en")

		act, err := c.Segments(context.Background(), "abc123")
		if !errors.Is(err, ytdl.ErrTranscriptDisabled) {
			t.Errorf("exp ErrTranscriptDisabled, got %v", err)
		}
		if act != nil {
			t.Errorf("exp no segments, got %v", act)
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		c := NewCaptions(stubTranscriptClient(t, http.StatusInternalServerError, ""), "en")

		if _, err := c.Segments(context.Background(), "abc123"); err == nil {
			t.Error("exp error, got nil")
		}
	})
}

func TestNewCaptionsDefaults(t *testing.T) {
	c := NewCaptions(nil, "")
	if c.client == nil {
		t.Error("exp default client")
	}
	if c.lang != "en" {
		t.Errorf("exp en, got %q", c.lang)
	}
}
