package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Intent names produced by the NLU backends.
const (
	IntentSearchProduct      = "search_product"
	IntentAddToCart          = "add_to_cart"
	IntentGoToCheckout       = "go_to_checkout"
	IntentGreet              = "greet"
	IntentNLUUnavailable     = "nlu_unavailable"
	IntentTranscriptionError = "transcription_error"
)

type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// ParseResult is the structured output of an NLU backend.
type ParseResult struct {
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities"`
}

// ProductName returns the extracted product_name entity, or "" when the
// classifier found none.
func (r *ParseResult) ProductName() string {
	for _, e := range r.Entities {
		if e.Entity == "product_name" {
			return e.Value
		}
	}
	return ""
}

// IntentParser classifies a transcript with the language-specific model.
type IntentParser interface {
	Parse(ctx context.Context, text, model string) (*ParseResult, error)
}

// RasaClient talks to a running Rasa NLU server.
type RasaClient struct {
	url        string
	httpClient *http.Client
}

func NewRasaClient(url string) *RasaClient {
	return &RasaClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Parse sends text to the Rasa parsing endpoint. The model name selects which
// NLU model handles the request (e.g. "nlu-en" or "nlu-ar").
func (c *RasaClient) Parse(ctx context.Context, text, model string) (*ParseResult, error) {
	payload, err := json.Marshal(map[string]string{"text": text, "model": model})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/model/parse", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlu server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlu server returned status %d", resp.StatusCode)
	}

	var result ParseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
