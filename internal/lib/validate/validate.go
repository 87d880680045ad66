package validate

import (
	"wslider/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

// CustomValidator plugs go-playground/validator into echo.
type CustomValidator struct {
	validator *validator.Validate
}

func New() *CustomValidator {
	v := validator.New()
	// colorname: имя цвета из мета-бокса, тот же набор символов что и в модели
	_ = v.RegisterValidation("colorname", func(fl validator.FieldLevel) bool {
		return models.ValidateColorName(fl.Field().String()) == nil
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
