package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/unijournal/internal/app/models"
)

// Tag names of the journal specific rules
const (
	TagGradeType  = "gradetype"
	TagGradeValue = "gradevalue"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the journal rules registered.
// Field names in errors use the json tag.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(jsonFieldName)
		Register(instance)
	})
	return instance
}

// Register adds the journal rules to v. Gin's binding validator calls it too.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation(TagGradeType, validateGradeType)
	_ = v.RegisterValidation(TagGradeValue, validateGradeValue)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateGradeType(fl validator.FieldLevel) bool {
	return models.GradeType(fl.Field().String()).Valid()
}

func validateGradeValue(fl validator.FieldLevel) bool {
	var v float64
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		v = fl.Field().Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = float64(fl.Field().Int())
	default:
		return false
	}
	return ValidGradeValue(v)
}

// ValidGradeValue reports whether v is a finite value within the grade scale
func ValidGradeValue(v float64) bool {
	return v >= models.MinGradeValue && v <= models.MaxGradeValue
}

// FieldErrors flattens validator errors into field -> rule pairs
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
