package storage

import (
	"context"
	"net/http"

	"ewintr.nl/tubesum/model"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	className = "Summary"
)

type WeaviateInfo struct {
	Host         string
	ApiKey       string
	OpenAIApiKey string
}

// Weaviate stores summaries for semantic search. Vectors are computed by the
// text2vec-openai module with its own key, never with a user credential.
type Weaviate struct {
	client *weaviate.Client
}

func NewWeaviate(info WeaviateInfo) (*Weaviate, error) {
	config := weaviate.Config{
		Scheme:     "https",
		Host:       info.Host,
		AuthConfig: auth.ApiKey{Value: info.ApiKey},
		Headers: map[string]string{
			"X-OpenAI-Api-Key": info.OpenAIApiKey,
		},
	}

	c, err := weaviate.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Weaviate{client: c}, nil
}

func (w *Weaviate) ResetSchema(ctx context.Context) error {

	// delete old
	if err := w.client.Schema().ClassDeleter().WithClassName(className).Do(ctx); err != nil {
		// Weaviate will return a 400 if the class does not exist, so this is allowed, only return an error if it's not a 400
		if status, ok := err.(*fault.WeaviateClientError); ok && status.StatusCode != http.StatusBadRequest {
			return err
		}
	}

	// create new
	classObj := &models.Class{
		Class:      className,
		Vectorizer: "text2vec-openai",
		ModuleConfig: map[string]any{
			"text2vec-openai": map[string]any{
				"model":        "ada",
				"modelVersion": "002",
				"type":         "text",
			},
		},
	}

	return w.client.Schema().ClassCreator().WithClass(classObj).Do(ctx)
}

func summaryProperties(summary *model.Summary) map[string]any {
	return map[string]any{
		"youtubeID": string(summary.YoutubeID),
		"url":       summary.URL,
		"title":     summary.Title,
		"summary":   summary.Text,
	}
}

func (w *Weaviate) Save(ctx context.Context, summary *model.Summary) error {
	sID := summary.ID.String()
	// check it already exists
	exists, err := w.client.Data().
		Checker().
		WithID(sID).
		WithClassName(className).
		Do(ctx)
	if err != nil {
		return err
	}

	if exists {
		return w.client.Data().
			Updater().
			WithID(sID).
			WithClassName(className).
			WithProperties(summaryProperties(summary)).
			Do(ctx)
	}

	_, err = w.client.Data().
		Creator().
		WithClassName(className).
		WithID(sID).
		WithProperties(summaryProperties(summary)).
		Do(ctx)

	return err
}
