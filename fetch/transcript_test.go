package fetch

import (
	"context"
	"errors"
	"io"
	"testing"

	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

type memorySource struct {
	segments map[model.YoutubeVideoID][]model.TranscriptSegment
	err      error
	calls    int
}

func (m *memorySource) Segments(_ context.Context, id model.YoutubeVideoID) ([]model.TranscriptSegment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.segments[id], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVideoID(t *testing.T) {
	for _, tc := range []struct {
		name   string
		url    string
		exp    model.YoutubeVideoID
		expErr bool
	}{
		{
			name: "watch url",
			url:  "https://www.youtube.com/watch?v=abc123",
			exp:  "abc123",
		},
		{
			name: "extra parameters stay in the id",
			url:  "https://www.youtube.com/watch?v=abc123&list=PL1",
			exp:  "abc123&list",
		},
		{
			name:   "short link",
			url:    "https://youtu.be/abc123",
			expErr: true,
		},
		{
			name:   "empty id",
			url:    "https://www.youtube.com/watch?v=",
			expErr: true,
		},
		{
			name:   "empty",
			expErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act, err := VideoID(tc.url)
			if tc.expErr {
				if !errors.Is(err, ErrNoVideoID) {
					t.Errorf("exp ErrNoVideoID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("exp nil, got %v", err)
			}
			if act != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, act)
			}
		})
	}
}

func TestFetcherFetch(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=abc123"

	t.Run("joins segments with spaces", func(t *testing.T) {
		source := &memorySource{segments: map[model.YoutubeVideoID][]model.TranscriptSegment{
			"abc123": {{Text: "Hello"}, {Text: "world"}},
		}}
		f := NewFetcher(source, nil, testLogger())

		act, err := f.Fetch(context.Background(), url)
		if err != nil {
			t.Fatalf("exp nil, got %v", err)
		}
		if act.Text != "Hello world" {
			t.Errorf("exp %q, got %q", "Hello world", act.Text)
		}
		if act.VideoID != "abc123" {
			t.Errorf("exp %q, got %q", "abc123", act.VideoID)
		}
	})

	t.Run("memoized by url", func(t *testing.T) {
		source := &memorySource{segments: map[model.YoutubeVideoID][]model.TranscriptSegment{
			"abc123": {{Text: "one"}, {Text: "two"}, {Text: "three"}},
		}}
		f := NewFetcher(source, NewMemoryCache(), testLogger())

		first, err := f.Fetch(context.Background(), url)
		if err != nil {
			t.Fatalf("exp nil, got %v", err)
		}
		second, err := f.Fetch(context.Background(), url)
		if err != nil {
			t.Fatalf("exp nil, got %v", err)
		}
		if first != second {
			t.Errorf("exp %v, got %v", first, second)
		}
		if source.calls != 1 {
			t.Errorf("exp 1 call to source, got %d", source.calls)
		}
	})

	for _, tc := range []struct {
		name      string
		url       string
		source    *memorySource
		expCalled bool
	}{
		{
			name:   "no equals sign",
			url:    "https://youtu.be/abc123",
			source: &memorySource{},
		},
		{
			name:      "source fails",
			url:       url,
			source:    &memorySource{err: errors.New("transcripts disabled")},
			expCalled: true,
		},
		{
			name:      "no segments",
			url:       url,
			source:    &memorySource{},
			expCalled: true,
		},
		{
			name: "only blank segments",
			url:  url,
			source: &memorySource{segments: map[model.YoutubeVideoID][]model.TranscriptSegment{
				"abc123": {{Text: " "}, {Text: ""}},
			}},
			expCalled: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFetcher(tc.source, nil, testLogger())
			act, err := f.Fetch(context.Background(), tc.url)
			if !errors.Is(err, model.ErrExtraction) {
				t.Errorf("exp extraction error, got %v", err)
			}
			if act != (model.Transcript{}) {
				t.Errorf("exp empty transcript, got %v", act)
			}
			if (tc.source.calls > 0) != tc.expCalled {
				t.Errorf("exp source called %v, got %d calls", tc.expCalled, tc.source.calls)
			}
		})
	}

	t.Run("failures are not memoized", func(t *testing.T) {
		source := &memorySource{err: errors.New("network down")}
		f := NewFetcher(source, nil, testLogger())
		f.Fetch(context.Background(), url)
		f.Fetch(context.Background(), url)
		if source.calls != 2 {
			t.Errorf("exp 2 calls, got %d", source.calls)
		}
	})
}

func TestJoinSegments(t *testing.T) {
	for _, tc := range []struct {
		name     string
		segments []model.TranscriptSegment
		exp      string
	}{
		{name: "none"},
		{
			name:     "one",
			segments: []model.TranscriptSegment{{Text: "solo"}},
			exp:      "solo",
		},
		{
			name:     "keeps order",
			segments: []model.TranscriptSegment{{Text: "a"}, {Text: "b"}, {Text: "c"}},
			exp:      "a b c",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if act := JoinSegments(tc.segments); act != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, act)
			}
		})
	}
}
