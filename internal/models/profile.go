package models

import "finsight/internal/engine"

// FinancialProfile holds a user's balance and safety thresholds. There is at
// most one profile per user.
type FinancialProfile struct {
	Base
	UserID                  string               `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CurrentBalance          int64                `gorm:"type:bigint;not null;default:0" json:"current_balance"`
	MonthlyIncome           int64                `gorm:"type:bigint;not null;default:0" json:"monthly_income"`
	Currency                string               `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	EmergencyBufferTarget   int64                `gorm:"type:bigint;not null;default:0" json:"emergency_buffer_target"`
	MinimumBalanceThreshold int64                `gorm:"type:bigint;not null;default:0" json:"minimum_balance_threshold"`
	MonthlySavingsFloor     int64                `gorm:"type:bigint;not null;default:0" json:"monthly_savings_floor"`
	RiskTolerance           engine.RiskTolerance `gorm:"type:varchar(16);not null;default:'medium'" json:"risk_tolerance"`
}

// ToEngine converts the row into the engine's profile record.
func (p FinancialProfile) ToEngine() engine.FinancialProfile {
	return engine.FinancialProfile{
		CurrentBalance:          p.CurrentBalance,
		MonthlyIncome:           p.MonthlyIncome,
		Currency:                p.Currency,
		EmergencyBufferTarget:   p.EmergencyBufferTarget,
		MinimumBalanceThreshold: p.MinimumBalanceThreshold,
		MonthlySavingsFloor:     p.MonthlySavingsFloor,
		RiskTolerance:           p.RiskTolerance,
	}
}
