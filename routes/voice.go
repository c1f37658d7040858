package routes

import (
	"github.com/gin-gonic/gin"

	voiceControllers "github.com/limat-tech/voicebot/controllers/voice"
	"github.com/limat-tech/voicebot/middleware"
)

// SetupVoiceRoutes registers the voice-assistant pipeline. The pipeline fans
// out to ASR, NLU and TTS backends, so it is rate limited on top of JWT auth.
func SetupVoiceRoutes(r *gin.Engine, deps Deps) {
	voiceGroup := r.Group("/api/voice")
	voiceGroup.Use(middleware.RateLimiter())
	{
		voiceGroup.POST("/process", middleware.RequireAuth,
			voiceControllers.ProcessVoice(deps.Dialogue, deps.ASR, deps.TTS, deps.TTSOutputDir))
		voiceGroup.POST("/process-text", middleware.RequireAuth,
			voiceControllers.ProcessText(deps.Dialogue, deps.TTS, deps.TTSOutputDir))
		voiceGroup.GET("/audio/:filename", voiceControllers.GetAudioFile(deps.TTSOutputDir))
	}
}
