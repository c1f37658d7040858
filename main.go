package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/limat-tech/voicebot/config"
	"github.com/limat-tech/voicebot/events"
	"github.com/limat-tech/voicebot/models"
	"github.com/limat-tech/voicebot/routes"
	"github.com/limat-tech/voicebot/services/voice"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Redis (optional, used for caching and rate limiting)
	config.InitRedis()

	// RabbitMQ publisher (optional, order events)
	var publisher *events.Publisher
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		p, err := events.NewPublisher(amqpURL, "orders")
		if err != nil {
			log.Printf("⚠️ RabbitMQ connection failed, order events disabled: %v", err)
		} else {
			publisher = p
			defer publisher.Close()
			log.Println("✅ Connected to RabbitMQ")
		}
	}

	// Voice pipeline backends
	asr := voice.NewWhisperClient(getEnv("WHISPER_URL", "http://localhost:9000"))
	nlu := voice.NewRasaClient(getEnv("RASA_URL", "http://localhost:5005"))
	tts := voice.NewCoquiClient(getEnv("COQUI_TTS_URL", "http://localhost:5002/api/tts"))
	dialogue := voice.NewDialogueRouter(voice.NewGormStore(db), nlu)

	// Directory for generated TTS audio
	ttsOutputDir := getEnv("TTS_OUTPUT_DIR", "/tmp/voicebot-audio")
	if err := os.MkdirAll(ttsOutputDir, 0755); err != nil {
		log.Fatalf("❌ Failed to create TTS output dir: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// Allow voice uploads up to 32 MB
	r.MaxMultipartMemory = 32 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, routes.Deps{
		Publisher:    publisher,
		Dialogue:     dialogue,
		ASR:          asr,
		TTS:          tts,
		TTSOutputDir: ttsOutputDir,
	})

	// Purge generated audio older than 24h, hourly
	go startAudioCleanup(ttsOutputDir, 24*time.Hour, time.Hour)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// getEnv returns the env value or a default when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// startAudioCleanup removes generated TTS files older than retention
func startAudioCleanup(dir string, retention, interval time.Duration) {
	for {
		time.Sleep(interval)

		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("❌ Failed to read audio directory: %v", err)
			continue
		}

		cutoff := time.Now().Add(-retention)
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err != nil {
					log.Printf("⚠️ Failed to remove stale audio %s: %v", entry.Name(), err)
				}
			}
		}
	}
}
