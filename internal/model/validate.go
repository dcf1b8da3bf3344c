package model

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 檢查從 markup 建立的紀錄是否包含必要屬性
func Validate(record interface{}) error {
	return validate.Struct(record)
}
