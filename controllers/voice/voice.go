package voiceControllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/limat-tech/voicebot/middleware"
	"github.com/limat-tech/voicebot/services/voice"
)

type ProcessTextInput struct {
	Transcript string `json:"transcript"`
}

// ProcessVoice accepts an audio upload, transcribes it, runs one dialogue
// turn and synthesizes the reply. Downstream failures degrade the response
// instead of failing the request; only a missing audio part is a client
// error.
// POST /api/voice/process
func ProcessVoice(router *voice.DialogueRouter, asr voice.Transcriber, tts voice.Synthesizer, outputDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		file, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file part in the request"})
			return
		}

		tempFile, err := os.CreateTemp("", "voice-*.wav")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio upload"})
			return
		}
		tempPath := tempFile.Name()
		tempFile.Close()
		defer os.Remove(tempPath)

		if err := c.SaveUploadedFile(file, tempPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store audio upload"})
			return
		}

		transcript := ""
		if t, err := asr.Transcribe(c.Request.Context(), tempPath); err != nil {
			// Degraded: the router answers with the "could not hear" reply.
			log.Printf("transcription failed: %v", err)
		} else {
			transcript = t.Text
			log.Printf("whisper transcript: %q", transcript)
		}

		result := router.Respond(c.Request.Context(), transcript, customerID)
		audioFilename := synthesizeReply(c, tts, outputDir, result)

		c.JSON(http.StatusOK, gin.H{
			"transcript":     result.Transcript,
			"language":       result.Language,
			"intent":         result.Intent,
			"entities":       result.Entities,
			"response_text":  result.ResponseText,
			"audio_filename": audioFilename,
			"order":          result.Order,
		})
	}
}

// ProcessText runs the same dialogue pipeline on a raw transcript, skipping
// speech-to-text.
// POST /api/voice/process-text
func ProcessText(router *voice.DialogueRouter, tts voice.Synthesizer, outputDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input ProcessTextInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON with a transcript field"})
			return
		}

		result := router.Respond(c.Request.Context(), input.Transcript, customerID)
		audioFilename := synthesizeReply(c, tts, outputDir, result)

		c.JSON(http.StatusOK, gin.H{
			"transcript":     result.Transcript,
			"language":       result.Language,
			"intent":         result.Intent,
			"entities":       result.Entities,
			"response_text":  result.ResponseText,
			"audio_filename": audioFilename,
			"order":          result.Order,
		})
	}
}

// GetAudioFile serves a previously synthesized reply. Synthesized files are
// transient; nothing survives a redeploy and that is fine.
// GET /api/voice/audio/:filename
func GetAudioFile(outputDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := filepath.Base(c.Param("filename")) // no traversal
		path := filepath.Join(outputDir, filename)

		if _, err := os.Stat(path); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.File(path)
	}
}

// synthesizeReply converts the response text to audio and stores it under a
// random filename. Returns "" when synthesis fails; the text reply stands.
func synthesizeReply(c *gin.Context, tts voice.Synthesizer, outputDir string, result *voice.Result) string {
	audio, err := tts.Synthesize(c.Request.Context(), result.ResponseText, result.Language, os.Getenv("TTS_SPEAKER_ID"))
	if err != nil {
		log.Printf("tts synthesis failed: %v", err)
		return ""
	}

	filename := uuid.NewString() + ".wav"
	if err := os.WriteFile(filepath.Join(outputDir, filename), audio, 0o644); err != nil {
		log.Printf("failed to store synthesized audio: %v", err)
		return ""
	}
	return filename
}
