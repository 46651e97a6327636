// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finsight/internal/engine"
	"finsight/internal/uuid"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("risk_tolerance", validateRiskTolerance)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("uuid_id", validateUUID)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return engine.IsCurrency(strings.TrimSpace(fl.Field().String()))
}

// validateFrequency accepts the same spellings the normalizer does.
func validateFrequency(fl validator.FieldLevel) bool {
	return engine.ParseFrequency(fl.Field().String()).Valid()
}

func validateRiskTolerance(fl validator.FieldLevel) bool {
	return engine.RiskTolerance(normalizeEnum(fl.Field().String())).Valid()
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	return engine.GoalPriority(normalizeEnum(fl.Field().String())).Valid()
}

func validateUUID(fl validator.FieldLevel) bool {
	return uuid.IsValid(fl.Field().String())
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
