package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rcalderon/recruitops-api-go/pkg/database"
	"github.com/rcalderon/recruitops-api-go/pkg/handlers"
	"github.com/rcalderon/recruitops-api-go/pkg/sim"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	s := sim.New()
	database.Hydrate(db, s)
	database.Bind(db, s)

	h := &handlers.Handler{DB: db, Sim: s}

	r := gin.Default()
	h.Routes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
