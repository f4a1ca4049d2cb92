package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"linkstash/model"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("itemtype", ValidateItemTypeRule)
	v.RegisterValidation("category", ValidateCategoryRule)
}

// ValidateItemTypeRule accepts only the fixed item type enumeration.
func ValidateItemTypeRule(fl validator.FieldLevel) bool {
	return model.ValidItemType(model.ItemType(fl.Field().String()))
}

// ValidateCategoryRule accepts only the fixed category enumeration.
// Empty is allowed; the store derives the category from the type.
func ValidateCategoryRule(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, category := range model.AllCategories {
		if model.Category(value) == category {
			return true
		}
	}
	return false
}
