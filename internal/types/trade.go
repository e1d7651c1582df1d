package types

import (
	"github.com/google/uuid"
)

type Trade struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Abbreviation string    `gorm:"type:varchar(2);uniqueIndex;not null;column:abbreviation" json:"abbreviation"`
	Description  string    `gorm:"type:varchar(256);column:description" json:"description"`
}

func (Trade) TableName() string { return "trade" }
