package database

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rcalderon/recruitops-api-go/pkg/campaign"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
	"github.com/rcalderon/recruitops-api-go/pkg/sim"
	"github.com/rcalderon/recruitops-api-go/pkg/store"
)

// Hydrate loads persisted state into a fresh simulation, seeding defaults
// where nothing was stored. Corrupted rows take their safe-default path
// through the stores' own clamping instead of failing the boot.
func Hydrate(db *gorm.DB, s *sim.Sim) {
	var srcRows []SourceRecord
	db.Find(&srcRows)
	if len(srcRows) > 0 {
		sources := make([]models.Source, 0, len(srcRows))
		for _, r := range srcRows {
			sources = append(sources, sourceFromRecord(r))
		}
		s.Sources.Replace(sources)
	} else {
		s.Sources.SeedDefaults()
	}

	var plan PlannerRecord
	if err := db.First(&plan).Error; err == nil {
		end := models.EndType(plan.EndType)
		patch := campaign.Patch{
			EndType:        &end,
			DailySpend:     &plan.DailySpend,
			ConversionRate: &plan.ConversionRate,
			LiveView:       &plan.LiveView,
		}
		if plan.Role != "" {
			patch.Role = &plan.Role
		}
		if plan.StartDate != nil {
			patch.StartDate = plan.StartDate
		}
		if plan.EndValue != nil {
			patch.EndValue = plan.EndValue
		} else {
			patch.ClearEndValue = true
		}
		s.Planner.Apply(patch)
	}

	var ovRows []OverrideRecord
	db.Find(&ovRows)
	if len(ovRows) > 0 {
		entries := make(map[store.OverrideKey]store.OverridePair, len(ovRows))
		for _, r := range ovRows {
			entries[store.OverrideKey{Role: r.Role, Week: r.Week, Day: r.Day, Slot: r.Slot}] =
				store.OverridePair{Demand: r.Demand, Supply: r.Supply}
		}
		s.Overrides.Replace(entries)
	}

	var zones ZonesRecord
	if err := db.First(&zones).Error; err == nil {
		s.Zones.Set(models.Zones{
			LowRed:     zones.LowRed,
			LowYellow:  zones.LowYellow,
			HighYellow: zones.HighYellow,
			HighRed:    zones.HighRed,
		})
	}
}

// Bind subscribes write-back listeners so every store change is flushed
// to the database. Persistence is best-effort: a failed write logs and
// moves on, it never breaks the simulation.
func Bind(db *gorm.DB, s *sim.Sim) {
	s.Planner.Subscribe(func() { savePlanner(db, s) })
	s.Sources.Subscribe(func() { saveSources(db, s) })
	s.Overrides.Subscribe(func() { saveOverrides(db, s) })
	s.Zones.Subscribe(func() { saveZones(db, s) })
}

func savePlanner(db *gorm.DB, s *sim.Sim) {
	in := s.Planner.Inputs()
	rec := PlannerRecord{
		ID:             1,
		StartDate:      in.StartDate,
		EndType:        string(in.EndType),
		EndValue:       in.EndValue,
		DailySpend:     in.DailySpend,
		ConversionRate: in.ConversionRate,
		Role:           in.Role,
		LiveView:       s.Planner.LiveView(),
	}
	if err := db.Save(&rec).Error; err != nil {
		log.Printf("persist planner: %v", err)
	}
}

func saveSources(db *gorm.DB, s *sim.Sim) {
	sources := s.Sources.All()
	keep := make([]string, 0, len(sources))
	for _, src := range sources {
		rec := recordFromSource(src)
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
			log.Printf("persist source %s: %v", src.ID, err)
		}
		keep = append(keep, src.ID)
	}
	if len(keep) > 0 {
		db.Where("id NOT IN ?", keep).Delete(&SourceRecord{})
	} else {
		db.Where("1 = 1").Delete(&SourceRecord{})
	}
}

func saveOverrides(db *gorm.DB, s *sim.Sim) {
	db.Where("1 = 1").Delete(&OverrideRecord{})
	for k, v := range s.Overrides.All() {
		rec := OverrideRecord{Role: k.Role, Week: k.Week, Day: k.Day, Slot: k.Slot, Demand: v.Demand, Supply: v.Supply}
		if err := db.Create(&rec).Error; err != nil {
			log.Printf("persist override: %v", err)
		}
	}
}

func saveZones(db *gorm.DB, s *sim.Sim) {
	z := s.Zones.Get()
	rec := ZonesRecord{ID: 1, LowRed: z.LowRed, LowYellow: z.LowYellow, HighYellow: z.HighYellow, HighRed: z.HighRed}
	if err := db.Save(&rec).Error; err != nil {
		log.Printf("persist zones: %v", err)
	}
}

func sourceFromRecord(r SourceRecord) models.Source {
	return models.Source{
		ID:                   r.ID,
		Name:                 r.Name,
		Active:               r.Active,
		SpendModel:           models.SpendModel(r.SpendModel),
		Color:                r.Color,
		CPC:                  r.CPC,
		CPM:                  r.CPM,
		CPABid:               r.CPABid,
		ReferralBonusPerHire: r.ReferralBonusPerHire,
		DailyBudget:          r.DailyBudget,
		AppsOverride:         r.AppsOverride,
		DailyCapApps:         r.DailyCapApps,
		Funnel: models.Funnel{
			AppToInterview:    r.AppToInterview,
			InterviewToOffer:  r.InterviewToOffer,
			OfferToBackground: r.OfferToBackground,
			BackgroundToHire:  r.BackgroundToHire,
		},
		QualityPercent: r.QualityPercent,
		StartDate:      r.StartDate,
		EndType:        models.EndType(r.EndType),
		EndValue:       r.EndValue,
	}
}

func recordFromSource(s models.Source) SourceRecord {
	return SourceRecord{
		ID:                   s.ID,
		Name:                 s.Name,
		Active:               s.Active,
		SpendModel:           string(s.SpendModel),
		Color:                s.Color,
		CPC:                  s.CPC,
		CPM:                  s.CPM,
		CPABid:               s.CPABid,
		ReferralBonusPerHire: s.ReferralBonusPerHire,
		DailyBudget:          s.DailyBudget,
		AppsOverride:         s.AppsOverride,
		DailyCapApps:         s.DailyCapApps,
		AppToInterview:       s.Funnel.AppToInterview,
		InterviewToOffer:     s.Funnel.InterviewToOffer,
		OfferToBackground:    s.Funnel.OfferToBackground,
		BackgroundToHire:     s.Funnel.BackgroundToHire,
		QualityPercent:       s.QualityPercent,
		StartDate:            s.StartDate,
		EndType:              string(s.EndType),
		EndValue:             s.EndValue,
	}
}
