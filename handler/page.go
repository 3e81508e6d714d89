package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"github.com/yuin/goldmark"
	"golang.org/x/exp/slog"
)

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type Page struct {
	proc   Processor
	inbox  fetch.FeedReader
	logger *slog.Logger
}

func NewPage(proc Processor, inbox fetch.FeedReader, logger *slog.Logger) *Page {
	return &Page{
		proc:   proc,
		inbox:  inbox,
		logger: logger,
	}
}

type pageData struct {
	APIKey  string
	URL     string
	EntryID int64
	Error   string
	Summary *model.Summary
	Body    template.HTML
	Inbox   []model.InboxEntry
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entryID, _ := strconv.ParseInt(r.URL.Query().Get("entry_id"), 10, 64)
		p.render(w, http.StatusOK, pageData{
			URL:     r.URL.Query().Get("url"),
			EntryID: entryID,
		})
	case http.MethodPost:
		p.summarize(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (p *Page) summarize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.render(w, http.StatusBadRequest, pageData{Error: "Could not read the form."})
		return
	}
	entryID, _ := strconv.ParseInt(r.PostForm.Get("entry_id"), 10, 64)
	data := pageData{
		APIKey:  r.PostForm.Get("api_key"),
		URL:     r.PostForm.Get("url"),
		EntryID: entryID,
	}

	outcome := p.proc.Process(r.Context(), model.Session{Credential: data.APIKey}, data.URL)
	if outcome.Failed() {
		data.Error = outcome.Err.Message
		p.render(w, FlowStatus(outcome.Err), data)
		return
	}
	markRead(p.inbox, entryID, p.logger)

	data.Summary = outcome.Summary
	data.Body = renderMarkdown(outcome.Summary.Text, p.logger)
	data.EntryID = 0
	// the key is only echoed back while the user still has to fix something
	data.APIKey = ""
	p.render(w, http.StatusOK, data)
}

func (p *Page) render(w http.ResponseWriter, status int, data pageData) {
	if p.inbox != nil {
		entries, err := p.inbox.Unread()
		if err != nil {
			p.logger.Warn("could not fetch inbox", slog.String("error", err.Error()))
		}
		data.Inbox = entries
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		p.logger.Error("could not render page", slog.String("error", err.Error()))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderMarkdown falls back to escaped plain text. goldmark drops raw html
// from model output by default.
func renderMarkdown(text string, logger *slog.Logger) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		logger.Warn("could not render markdown", slog.String("error", err.Error()))
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>")
	}

	return template.HTML(buf.String())
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>YouTube Video Summarizer</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
label, input, button { display: block; width: 100%; margin-bottom: .5rem; }
button { width: auto; padding: .4rem 1.2rem; }
.error { background: #fde2e2; color: #8a1f1f; padding: .75rem; border-radius: 4px; }
.summary { background: #e3f6e8; padding: .75rem; border-radius: 4px; }
img { max-width: 100%; }
</style>
</head>
<body>
<h1>YouTube Video Summarizer</h1>
<h3>Summarize YouTube videos using Groq LLM</h3>
<form method="post" action="/">
<label for="api_key">Enter your Groq API Key</label>
<input type="password" id="api_key" name="api_key" value="{{.APIKey}}" autocomplete="off">
<label for="url">Enter YouTube Video URL</label>
<input type="text" id="url" name="url" value="{{.URL}}">
{{if .EntryID}}<input type="hidden" name="entry_id" value="{{.EntryID}}">{{end}}
<button type="submit">Summarize</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{with .Summary}}
<h2>Video Thumbnail</h2>
{{if .Title}}<p><strong>{{.Title}}</strong></p>{{end}}
<img src="{{.Thumbnail}}" alt="thumbnail of {{.YoutubeID}}">
<h2>Video Summary</h2>
<div class="summary">{{$.Body}}</div>
{{end}}
{{if .Inbox}}
<h2>Inbox</h2>
<ul>
{{range .Inbox}}<li><a href="/?url={{.URL}}&amp;entry_id={{.EntryID}}">{{.Title}}</a></li>
{{end}}</ul>
{{end}}
</body>
</html>
`
