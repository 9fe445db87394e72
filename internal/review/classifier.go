package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/saulo-duarte/mentora-lambda/internal/config"
)

// Classifier assigns a sentiment and a topical label to free-form
// review text. Implementations are best-effort collaborators; callers
// must tolerate failure.
type Classifier interface {
	Classify(ctx context.Context, text string) (sentiment, label string, err error)
}

type httpClassifier struct {
	url    string
	client *http.Client
}

// NewHTTPClassifier builds a classifier backed by the inference service
// at CLASSIFIER_URL. Returns nil when the variable is unset, which
// disables classification entirely.
func NewHTTPClassifier() Classifier {
	url := config.GetEnv("CLASSIFIER_URL", "")
	if url == "" {
		return nil
	}
	return &httpClassifier{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *httpClassifier) Classify(ctx context.Context, text string) (string, string, error) {
	log := config.WithContext(ctx)

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", "", fmt.Errorf("failed to encode classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Classifier request failed")
		return "", "", fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out struct {
		Sentiment string `json:"sentiment"`
		Label     string `json:"label"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return out.Sentiment, out.Label, nil
}
