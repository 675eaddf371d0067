package auth

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator"
)

// FieldErrors — ошибки формы: имя поля в JSON → сообщение.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// AsFieldErrors извлекает FieldErrors из цепочки ошибок.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// NewValidator создаёт валидатор, который называет поля по json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate проверяет структуру и возвращает ошибки по полям или nil.
func Validate(v *validator.Validate, s any) FieldErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		if _, ok := fe[e.Field()]; ok {
			continue
		}
		fe[e.Field()] = message(e)
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Field() {
	case "name":
		if e.Tag() == "min" {
			return "Name must be at least " + e.Param() + " characters"
		}
	case "email":
		if e.Tag() == "email" {
			return "Invalid email"
		}
	case "phone":
		return "Phone number must be 10 digits"
	case "password":
		if e.Tag() == "min" {
			return "Password must be at least " + e.Param() + " characters"
		}
	case "confirm_password":
		return "Passwords do not match"
	case "role":
		if e.Tag() == "oneof" {
			return "Unknown role"
		}
	}

	if e.Tag() == "required" {
		return "Field " + e.Field() + " is required"
	}
	return "Field " + e.Field() + " is not valid"
}
