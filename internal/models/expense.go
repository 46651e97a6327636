package models

import (
	"time"

	"finsight/internal/engine"
)

// FixedExpense is a recurring monthly obligation due on DueDay.
type FixedExpense struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string          `gorm:"not null" json:"name"`
	Amount   int64           `gorm:"type:bigint;not null" json:"amount"`
	Category engine.Category `gorm:"type:varchar(32);not null" json:"category"`
	DueDay   int             `gorm:"not null" json:"due_day"`
	IsActive bool            `gorm:"default:true" json:"is_active"`
}

// ToEngine converts the row into the engine's fixed expense record.
func (e FixedExpense) ToEngine() engine.FixedExpense {
	return engine.FixedExpense{
		ID:       e.ID,
		Name:     e.Name,
		Amount:   e.Amount,
		Category: e.Category,
		DueDay:   e.DueDay,
		IsActive: e.IsActive,
	}
}

// VariableExpense is a single recorded spending transaction. Rows are
// immutable once written; corrections are a delete and a new entry.
type VariableExpense struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_variable_user_date" json:"user_id"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Category    engine.Category `gorm:"type:varchar(32);not null" json:"category"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_variable_user_date" json:"date"`
	Description string          `json:"description"`
}

// ToEngine converts the row into the engine's variable expense record.
func (e VariableExpense) ToEngine() engine.VariableExpense {
	return engine.VariableExpense{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Description: e.Description,
	}
}
