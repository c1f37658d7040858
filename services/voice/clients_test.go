package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasaClient_Parse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/model/parse", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"intent": {"name": "add_to_cart", "confidence": 0.93},
			"entities": [{"entity": "product_name", "value": "milk"}]
		}`))
	}))
	defer server.Close()

	client := NewRasaClient(server.URL)
	result, err := client.Parse(context.Background(), "add milk", "nlu-en")
	require.NoError(t, err)
	assert.Equal(t, IntentAddToCart, result.Intent.Name)
	assert.InDelta(t, 0.93, result.Intent.Confidence, 0.001)
	assert.Equal(t, "milk", result.ProductName())
}

func TestRasaClient_ParseServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewRasaClient(server.URL)
	_, err := client.Parse(context.Background(), "add milk", "nlu-en")
	assert.Error(t, err)
}

func TestWhisperClient_Transcribe(t *testing.T) {
	audioPath := filepath.Join(t.TempDir(), "sample.wav")
	require.NoError(t, os.WriteFile(audioPath, []byte("RIFF fake wav"), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/asr", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("output"))

		file, _, err := r.FormFile("audio_file")
		require.NoError(t, err)
		file.Close()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "add milk to my cart", "language": "en"}`))
	}))
	defer server.Close()

	client := NewWhisperClient(server.URL)
	result, err := client.Transcribe(context.Background(), audioPath)
	require.NoError(t, err)
	assert.Equal(t, "add milk to my cart", result.Text)
	assert.Equal(t, "en", result.Language)
}

func TestWhisperClient_TranscribeMissingFile(t *testing.T) {
	client := NewWhisperClient("http://localhost:1")
	_, err := client.Transcribe(context.Background(), "/nonexistent/audio.wav")
	assert.Error(t, err)
}

func TestCoquiClient_Synthesize(t *testing.T) {
	wav := []byte("RIFF fake wav bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hello", r.URL.Query().Get("text"))
		assert.Equal(t, "en", r.URL.Query().Get("language_id"))
		assert.Equal(t, "p225", r.URL.Query().Get("speaker_id"))
		w.Header().Set("Content-Type", "audio/wav")
		_, _ = w.Write(wav)
	}))
	defer server.Close()

	client := NewCoquiClient(server.URL)
	got, err := client.Synthesize(context.Background(), "hello", "en", "p225")
	require.NoError(t, err)
	assert.Equal(t, wav, got)
}

func TestCoquiClient_SynthesizeOmitsEmptySpeaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["speaker_id"]
		assert.False(t, present)
		_, _ = w.Write([]byte("wav"))
	}))
	defer server.Close()

	client := NewCoquiClient(server.URL)
	_, err := client.Synthesize(context.Background(), "hello", "en", "")
	require.NoError(t, err)
}
