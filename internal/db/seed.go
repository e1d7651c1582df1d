package db

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/types"
)

// DefaultTrades is the built-in trade catalogue. Seeding is idempotent:
// trades already present by name are left untouched.
var DefaultTrades = []types.Trade{
	{Name: "Railway", Abbreviation: "RL"},
	{Name: "Road", Abbreviation: "RD"},
	{Name: "Bridge", Abbreviation: "BR"},
	{Name: "Construction", Abbreviation: "CN"},
	{Name: "Drainage", Abbreviation: "DR"},
	{Name: "Contact System", Abbreviation: "CS"},
	{Name: "Power Engineering", Abbreviation: "PE"},
	{Name: "Telecommunication", Abbreviation: "TL"},
	{Name: "SRK", Abbreviation: "RT"},
	{Name: "Other", Abbreviation: "OT"},
}

func SeedDefaultTrades(gdb *gorm.DB) error {
	for _, trade := range DefaultTrades {
		var count int64
		if err := gdb.Model(&types.Trade{}).Where("name = ?", trade.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		trade.ID = uuid.New()
		if err := gdb.Create(&trade).Error; err != nil {
			return err
		}
	}
	return nil
}
