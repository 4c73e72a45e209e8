package config

import (
	"reflect"
	"strings"
)

// GetBoolValue resolves a dot-separated field path (e.g. "Logger.JSONFormat")
// inside cfg and returns the boolean it holds. Nil pointers, unknown fields and
// non-bool values fall back to defaultValue.
func GetBoolValue(cfg interface{}, fieldPath string, defaultValue bool) bool {
	if cfg == nil {
		return defaultValue
	}

	val := reflect.ValueOf(cfg)
	for _, field := range strings.Split(fieldPath, ".") {
		for val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return defaultValue
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return defaultValue
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	switch {
	case val.Kind() == reflect.Ptr && !val.IsNil() && val.Elem().Kind() == reflect.Bool:
		return val.Elem().Bool()
	case val.Kind() == reflect.Bool:
		return val.Bool()
	}

	return defaultValue
}

// SetThen returns value unless it is the zero value of its type.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(&value).Elem().IsZero() {
		return defaultValue
	}
	return value
}
