package voice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Synthesizer turns response text into audio. Synthesis failure is always
// non-fatal for the caller: the text response stands on its own.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language, speaker string) ([]byte, error)
}

// CoquiClient talks to a Coqui TTS (XTTS) server. The client timeout is kept
// short so a slow synthesis backend cannot stall the voice endpoint.
type CoquiClient struct {
	url        string
	httpClient *http.Client
}

func NewCoquiClient(serverURL string) *CoquiClient {
	return &CoquiClient{
		url:        serverURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Synthesize returns raw WAV bytes for the given text and language.
func (c *CoquiClient) Synthesize(ctx context.Context, text, language, speaker string) ([]byte, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("language_id", language)
	if speaker != "" {
		params.Set("speaker_id", speaker)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts server returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
