package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/peakform/peakform/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("sort_field", func(fl validator.FieldLevel) bool {
			switch entity.SortField(fl.Field().String()) {
			case entity.SortFieldCurrentStreak,
				entity.SortFieldTotalWorkouts,
				entity.SortFieldWeeklyWorkouts,
				entity.SortFieldMonthlyCompletionRate:
				return true
			}
			return false
		})
	})
}
