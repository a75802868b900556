package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rcalderon/recruitops-api-go/pkg/database"
	"github.com/rcalderon/recruitops-api-go/pkg/sim"
)

// Seeds the default source set and planner row into the configured
// database, so a fresh deployment starts with a usable sandbox.
func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	db := database.InitDB()
	s := sim.New()
	database.Hydrate(db, s)
	database.Bind(db, s)

	if len(os.Args) > 1 && os.Args[1] == "--reset" {
		s.Sources.Replace(nil)
		s.Sources.SeedDefaults()
	} else {
		s.Sources.SeedDefaults()
	}

	fmt.Printf("Seeded %d sources:\n", len(s.Sources.All()))
	for _, src := range s.Sources.All() {
		fmt.Printf("  %-24s %-13s active=%v\n", src.Name, src.SpendModel, src.Active)
	}
	fmt.Printf("Max daily spend cap: $%.2f\n", s.Planner.MaxDailySpendCap())
}
