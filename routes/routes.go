package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/events"
	"github.com/limat-tech/voicebot/services/voice"
)

// Deps carries the shared collaborators the route groups hand to their
// handlers: the event publisher and the voice pipeline services.
type Deps struct {
	Publisher    *events.Publisher
	Dialogue     *voice.DialogueRouter
	ASR          voice.Transcriber
	TTS          voice.Synthesizer
	TTSOutputDir string
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Customer-facing API (JWT-protected except product browsing)
	SetupAPIRoutes(r, db, deps)

	// Voice pipeline (JWT + rate limit)
	SetupVoiceRoutes(r, deps)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
