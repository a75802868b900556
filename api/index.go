package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rcalderon/recruitops-api-go/pkg/database"
	"github.com/rcalderon/recruitops-api-go/pkg/handlers"
	"github.com/rcalderon/recruitops-api-go/pkg/sim"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	db := database.InitDB()
	s := sim.New()
	database.Hydrate(db, s)
	database.Bind(db, s)

	h := &handlers.Handler{DB: db, Sim: s}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	h.Routes(r)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
