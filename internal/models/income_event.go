package models

import (
	"time"

	"finsight/internal/engine"
)

// IncomeEvent is a one-off or recurring inflow anchored on Date.
type IncomeEvent struct {
	Base
	UserID    string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    int64            `gorm:"type:bigint;not null" json:"amount"`
	Source    string           `json:"source"`
	Frequency engine.Frequency `gorm:"type:varchar(16);not null" json:"frequency"`
	Date      time.Time        `gorm:"type:date;not null" json:"date"`
}

// ToEngine converts the row into the engine's income record.
func (e IncomeEvent) ToEngine() engine.IncomeEvent {
	return engine.IncomeEvent{
		ID:        e.ID,
		Amount:    e.Amount,
		Source:    e.Source,
		Frequency: e.Frequency,
		Date:      e.Date,
	}
}
