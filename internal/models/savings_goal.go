package models

import (
	"time"

	"finsight/internal/engine"
)

// GoalStatus tracks the lifecycle of a savings goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// SavingsGoal is a target amount the user saves towards. Only active goals
// take part in forecasts.
type SavingsGoal struct {
	Base
	UserID              string              `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                string              `gorm:"not null" json:"name"`
	TargetAmount        int64               `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount       int64               `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	MonthlyContribution int64               `gorm:"type:bigint;not null;default:0" json:"monthly_contribution"`
	TargetDate          time.Time           `gorm:"type:date;not null" json:"target_date"`
	Priority            engine.GoalPriority `gorm:"type:varchar(16);not null;default:'medium'" json:"priority"`
	Status              GoalStatus          `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CompletedAt         *time.Time          `json:"completed_at,omitempty"`
}

// IsClosed reports whether the goal no longer accepts contributions.
func (g SavingsGoal) IsClosed() bool {
	return g.Status != GoalStatusActive
}

// ToEngine converts the row into the engine's goal record.
func (g SavingsGoal) ToEngine() engine.SavingsGoal {
	return engine.SavingsGoal{
		ID:                  g.ID,
		Name:                g.Name,
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		MonthlyContribution: g.MonthlyContribution,
		TargetDate:          g.TargetDate,
		Priority:            g.Priority,
		CreatedAt:           g.CreatedAt,
	}
}
