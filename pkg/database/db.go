package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PlannerRecord is the single persisted campaign configuration row.
type PlannerRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StartDate      *string   `json:"start_date"`
	EndType        string    `gorm:"default:date" json:"end_type"`
	EndValue       *float64  `json:"end_value"`
	DailySpend     float64   `json:"daily_spend"`
	ConversionRate float64   `json:"conversion_rate"`
	Role           string    `json:"role"`
	LiveView       bool      `gorm:"default:true" json:"live_view"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SourceRecord is one persisted acquisition source.
type SourceRecord struct {
	ID                   string    `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Active               bool      `json:"active"`
	SpendModel           string    `gorm:"not null" json:"spend_model"`
	Color                string    `json:"color"`
	CPC                  float64   `json:"cpc"`
	CPM                  float64   `json:"cpm"`
	CPABid               float64   `json:"cpa_bid"`
	ReferralBonusPerHire float64   `json:"referral_bonus_per_hire"`
	DailyBudget          float64   `json:"daily_budget"`
	AppsOverride         *float64  `json:"apps_override"`
	DailyCapApps         float64   `json:"daily_cap_apps"`
	AppToInterview       float64   `json:"app_to_interview"`
	InterviewToOffer     float64   `json:"interview_to_offer"`
	OfferToBackground    float64   `json:"offer_to_background"`
	BackgroundToHire     float64   `json:"background_to_hire"`
	QualityPercent       float64   `json:"quality_percent"`
	StartDate            *string   `json:"start_date"`
	EndType              string    `json:"end_type"`
	EndValue             *float64  `json:"end_value"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// OverrideRecord is one persisted slot edit.
type OverrideRecord struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Role   string `gorm:"uniqueIndex:idx_override_slot;not null" json:"role"`
	Week   int    `gorm:"uniqueIndex:idx_override_slot" json:"week"`
	Day    int    `gorm:"uniqueIndex:idx_override_slot" json:"day"`
	Slot   int    `gorm:"uniqueIndex:idx_override_slot" json:"slot"`
	Demand int    `json:"demand"`
	Supply int    `json:"supply"`
}

// ZonesRecord is the single persisted coverage-threshold row.
type ZonesRecord struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	LowRed     float64 `json:"lowRed"`
	LowYellow  float64 `json:"lowYellow"`
	HighYellow float64 `json:"highYellow"`
	HighRed    float64 `json:"highRed"`
}

// DailyUsage tracks per-day request volume for the ops dashboard.
type DailyUsage struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Date              string `gorm:"uniqueIndex;not null" json:"date"`
	RequestCount      int    `gorm:"default:0" json:"request_count"`
	MatricesRequested int    `gorm:"default:0" json:"matrices_requested"`
}

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects postgres; otherwise a local sqlite file is used.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "planner.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&PlannerRecord{}, &SourceRecord{}, &OverrideRecord{}, &ZonesRecord{}, &DailyUsage{})

	return db
}
