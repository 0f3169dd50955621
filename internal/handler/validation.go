package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
)

// RegisterValidators installs the enum validations used by the request
// binding tags. Must run before any request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return model.Gender(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}

	return v.RegisterValidation("expensecategory", func(fl validator.FieldLevel) bool {
		return model.ExpenseCategory(fl.Field().String()).Valid()
	})
}
