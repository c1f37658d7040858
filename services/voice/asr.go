package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcription, error)
}

// Transcription is the speech-to-text result. Language is the engine's own
// detection and may be empty; the dialogue router runs its own detection.
type Transcription struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// WhisperClient talks to a Whisper ASR web service.
type WhisperClient struct {
	url        string
	httpClient *http.Client
}

func NewWhisperClient(url string) *WhisperClient {
	return &WhisperClient{
		url:        url,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Transcribe uploads the audio file and returns the transcript.
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("audio_file", filepath.Base(audioPath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/asr?output=json", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asr server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asr server returned status %d", resp.StatusCode)
	}

	var t Transcription
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
