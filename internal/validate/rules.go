package validate

import (
	"time"

	"foodhub/internal/entity/dto"

	"github.com/go-playground/validator/v10"
)

const earliestEstablishedYear = 1800

// validSKU 校验 SKU 标识符格式：字母、数字、中划线、下划线，最长 64。
func validSKU(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || len(value) > 64 {
		return false
	}
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
		default:
			return false
		}
	}
	return true
}

// validCurrencyCode 校验三字母货币代码。
func validCurrencyCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		ch := value[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return true
}

// validEstablishedYear 校验成立年份不超过当前年份。
func validEstablishedYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= earliestEstablishedYear && year <= int64(time.Now().Year())
}

// foodShelfLifeValidation 是 FoodProductForm 的跨字段规则：
// 起止日期都设置时，起始必须早于结束。
func foodShelfLifeValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(dto.FoodProductForm)
	start, end := form.ShelfLife.Start, form.ShelfLife.End
	if start != nil && end != nil && !start.Before(*end) {
		sl.ReportError(form.ShelfLife.End, "shelf_life.end", "End", "shelf_life_window", "")
	}
}
